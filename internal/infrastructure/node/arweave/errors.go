package arweave_node

import "errors"

var (
	ErrMissingAddr         = errors.New("missing node address")
	ErrInvalidAddr         = errors.New("invalid node address")
	ErrMissingAddress      = errors.New("missing wallet address")
	ErrUnsignedTransaction = errors.New("transaction must be signed before submission")
)
