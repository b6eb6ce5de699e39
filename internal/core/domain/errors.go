package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSigningKeyUnavailable = errors.New("api signer key unavailable")
	ErrTransport             = errors.New("transport error")
	ErrSignerRejected        = errors.New("remote signer rejected the request")
	ErrSignatureMissing      = errors.New("remote signer returned no usable signature")
	ErrSubmissionRejected    = errors.New("node rejected the transaction")

	ErrMissingVaultID = errors.New("missing vault id")
	ErrMissingPayload = errors.New("missing signing payload")
)

// SignerRejectedError carries the structured error returned by the remote
// signer along with a non-2xx status. It matches ErrSignerRejected.
type SignerRejectedError struct {
	StatusCode int
	Title      string
	Detail     string
	RequestID  string
	Validation string
}

func (e *SignerRejectedError) Error() string {
	msg := fmt.Sprintf("%s (status %d)", ErrSignerRejected, e.StatusCode)
	if e.Title != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Title)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Validation != "" {
		msg = fmt.Sprintf("%s, validation: %s", msg, e.Validation)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("%s [request id %s]", msg, e.RequestID)
	}
	return msg
}

func (e *SignerRejectedError) Is(target error) bool {
	return target == ErrSignerRejected
}
