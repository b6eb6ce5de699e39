package fordefi_signer

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultPath = "/api/v1/transactions/create-and-wait"

	signerTypeAPISigner        = "api_signer"
	txTypeBlackBoxSignature    = "black_box_signature"
	waitForStateSigned         = "signed"
	headerSignature            = "X-Signature"
	headerTimestamp            = "X-Timestamp"
	headerAuthorization        = "Authorization"
	headerContentType          = "Content-Type"
	contentTypeApplicationJSON = "application/json"
)

type createAndWaitRequest struct {
	VaultID      string         `json:"vault_id"`
	Note         string         `json:"note"`
	SignerType   string         `json:"signer_type"`
	SignMode     string         `json:"sign_mode"`
	Type         string         `json:"type"`
	Details      requestDetails `json:"details"`
	WaitForState string         `json:"wait_for_state,omitempty"`
}

type requestDetails struct {
	Format     string `json:"format"`
	HashBinary string `json:"hash_binary"`
}

type createAndWaitResponse struct {
	ID         string           `json:"id"`
	State      string           `json:"state"`
	Signatures []signatureEntry `json:"signatures"`
	Signature  string           `json:"signature"`
}

// signatureEntry is an element of the signatures list, returned either as
// a plain string or as an object with a data field.
type signatureEntry string

func (e *signatureEntry) UnmarshalJSON(buf []byte) error {
	var str string
	if err := json.Unmarshal(buf, &str); err == nil {
		*e = signatureEntry(str)
		return nil
	}

	var obj struct {
		Data *string `json:"data"`
	}
	if err := json.Unmarshal(buf, &obj); err != nil {
		return fmt.Errorf("unexpected signature entry %s", string(buf))
	}
	if obj.Data != nil {
		*e = signatureEntry(*obj.Data)
	}
	return nil
}

type errorResponse struct {
	Title      string          `json:"title"`
	Detail     string          `json:"detail"`
	RequestID  string          `json:"request_id"`
	Validation json.RawMessage `json:"validation"`
}
