package application

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

const compressedPubkeyHexLen = 66

// OwnerArgs identifies the public key owning a transfer, either as a
// compressed public key (standard base64 or hex) or as an extended public key
// plus a non-hardened child index or relative path.
type OwnerArgs struct {
	PublicKey      string
	Xpub           string
	Index          uint32
	DerivationPath string
}

func (a OwnerArgs) validate() error {
	if a.PublicKey == "" && a.Xpub == "" {
		return ErrMissingOwnerKey
	}
	if a.PublicKey != "" && a.Xpub != "" {
		return ErrAmbiguousOwnerKey
	}
	return nil
}

func (a OwnerArgs) publicKey() (*arweave.PublicKey, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	if a.Xpub != "" {
		if a.DerivationPath != "" {
			return arweave.DerivePublicKeyFromPath(arweave.DerivePublicKeyFromPathArgs{
				Xpub:           a.Xpub,
				DerivationPath: a.DerivationPath,
			})
		}
		return arweave.DeriveChildPublicKey(arweave.DeriveChildPublicKeyArgs{
			Xpub:  a.Xpub,
			Index: a.Index,
		})
	}

	buf, err := decodePublicKey(a.PublicKey)
	if err != nil {
		return nil, err
	}
	return arweave.ParsePublicKey(buf)
}

func decodePublicKey(key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if len(key) == compressedPubkeyHexLen {
		if buf, err := hex.DecodeString(key); err == nil {
			return buf, nil
		}
	}
	buf, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(key, "="))
	if err != nil {
		return nil, fmt.Errorf(
			"%w: public key is neither base64 nor hex", arweave.ErrInvalidKeyEncoding,
		)
	}
	return buf, nil
}

// TransferArgs are the inputs of a transfer. Reward and LastTx are fetched
// from the node when not set.
type TransferArgs struct {
	Owner    OwnerArgs
	Target   string
	Quantity *big.Int
	Data     []byte
	Tags     []arweave.Tag
	Reward   *big.Int
	LastTx   string
	// DryRun stops the pipeline once the signing payload is computed.
	DryRun bool
}

func (a TransferArgs) validate() error {
	if err := a.Owner.validate(); err != nil {
		return err
	}
	if a.Quantity == nil {
		return arweave.ErrMissingQuantity
	}
	return nil
}

// TransferResult holds what the pipeline produced up to the stage it
// reached. Tx is the signed transaction unless the transfer is a dry run.
type TransferResult struct {
	Tx            *arweave.Transaction
	SignatureData []byte
	Submission    *domain.SubmissionResult
}

type OwnerInfo struct {
	PublicKey string
	Owner     string
	Address   string
	// Balance is nil when not requested.
	Balance *big.Int
}
