package fordefi_signer

import "errors"

var (
	ErrMissingAddr          = errors.New("missing remote signer address")
	ErrMissingAccessToken   = errors.New("missing remote signer access token")
	ErrMissingAuthenticator = errors.New("missing request authenticator")
)
