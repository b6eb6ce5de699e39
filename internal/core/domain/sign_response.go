package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// SignResponseKind tells which of the shapes the remote signer used to
// return the signature.
type SignResponseKind int

const (
	SignResponseEmpty SignResponseKind = iota
	SignResponseSignatureList
	SignResponseSingleSignature
)

func (k SignResponseKind) String() string {
	switch k {
	case SignResponseSignatureList:
		return "signature list"
	case SignResponseSingleSignature:
		return "single signature"
	default:
		return "empty"
	}
}

// SignResponse is the signature returned by the remote signer, either as
// first element of a list or as a single field. The list takes precedence.
type SignResponse struct {
	kind      SignResponseKind
	signature string
}

// NewSignResponse classifies the fields of a raw response.
func NewSignResponse(signatures []string, signature string) SignResponse {
	if len(signatures) > 0 && signatures[0] != "" {
		return SignResponse{SignResponseSignatureList, signatures[0]}
	}
	if signature != "" {
		return SignResponse{SignResponseSingleSignature, signature}
	}
	return SignResponse{}
}

func (r SignResponse) Kind() SignResponseKind {
	return r.kind
}

// RawSignature returns the decoded signature bytes. A response without any
// signature, or with one that is not valid base64, is ErrSignatureMissing.
func (r SignResponse) RawSignature() ([]byte, error) {
	if r.kind == SignResponseEmpty {
		return nil, ErrSignatureMissing
	}
	sig, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(r.signature, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 (%s)", ErrSignatureMissing, err)
	}
	if len(sig) == 0 {
		return nil, ErrSignatureMissing
	}
	return sig, nil
}
