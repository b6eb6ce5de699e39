package domain

import "encoding/base64"

// SignMode is how the remote signer approves a request.
type SignMode string

// SignatureFormat is what the remote signer signs.
type SignatureFormat string

// WaitPolicy tells the remote signer whether to hold the response until the
// request reaches a terminal state.
type WaitPolicy int

const (
	SignModeAuto SignMode = "auto"

	// SignatureFormatHashBinary makes the signer sign the payload bytes as
	// they are, without hashing them again.
	SignatureFormatHashBinary SignatureFormat = "hash_binary"
)

const (
	WaitPolicyNone WaitPolicy = iota
	WaitPolicyUntilSigned
)

// SignRequest is the request for a signature over a payload to the remote
// signer holding the key of the given vault.
type SignRequest struct {
	VaultID    string
	Note       string
	Payload    []byte
	Mode       SignMode
	Format     SignatureFormat
	WaitPolicy WaitPolicy
}

// NewSignRequest returns a request for the payload with the only mode,
// format and wait policy supported by the pipeline.
func NewSignRequest(vaultID, note string, payload []byte) SignRequest {
	return SignRequest{
		VaultID:    vaultID,
		Note:       note,
		Payload:    append([]byte{}, payload...),
		Mode:       SignModeAuto,
		Format:     SignatureFormatHashBinary,
		WaitPolicy: WaitPolicyUntilSigned,
	}
}

func (r SignRequest) Validate() error {
	if r.VaultID == "" {
		return ErrMissingVaultID
	}
	if len(r.Payload) == 0 {
		return ErrMissingPayload
	}
	return nil
}

// PayloadB64 returns the payload in standard base64.
func (r SignRequest) PayloadB64() string {
	return base64.StdEncoding.EncodeToString(r.Payload)
}
