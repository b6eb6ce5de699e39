package application

import "errors"

var (
	ErrMissingOwnerKey   = errors.New("either public key or xpub must be provided")
	ErrAmbiguousOwnerKey = errors.New("public key and xpub are mutually exclusive")
	ErrMissingSigner     = errors.New("missing remote signer")
	ErrMissingNode       = errors.New("missing node")
)
