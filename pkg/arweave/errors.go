package arweave

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var (
	ErrMissingOwner          = errors.New("missing owner")
	ErrMissingQuantity       = errors.New("missing quantity")
	ErrMissingReward         = errors.New("missing reward")
	ErrMissingDerivationPath = errors.New("missing derivation path")
	ErrMissingExtendedKey    = errors.New("missing extended public key")

	ErrInvalidKeyEncoding = errors.New("invalid public key encoding")
	ErrDerivation         = errors.New("public key derivation failed")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidOwner       = errors.New(
		"invalid owner: length does not match the signature type public key",
	)
	ErrInvalidTarget = errors.New(
		"invalid target: must be empty or base64url of a 32 bytes address",
	)
	ErrInvalidLastTx           = errors.New("invalid last_tx: must be base64url")
	ErrInvalidTag              = errors.New("invalid tag: name must not be empty")
	ErrInvalidSignatureType    = errors.New("unknown signature type")
	ErrDataTooLarge            = fmt.Errorf("inline data must not exceed %d bytes", MaxInlineDataSize)
	ErrSignatureLengthMismatch = errors.New("signature length does not match signature type")
	ErrAlreadySigned           = errors.New("transaction is already signed")

	ErrMalformedDerivationPath = errors.New(
		"malformed derivation path: expected '/' separated indexes " +
			"optionally starting with 'm/'",
	)
	ErrHardenedDerivation = fmt.Errorf(
		"%w: hardened children (index >= %d) cannot be derived from a public key",
		ErrDerivation, hdkeychain.HardenedKeyStart,
	)
	ErrPrivateExtendedKey = fmt.Errorf(
		"%w: expected an extended public key, got a private one", ErrDerivation,
	)
)
