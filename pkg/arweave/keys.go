package arweave

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	pubKeyPrefixEven         = 0x02
	pubKeyPrefixOdd          = 0x03
	pubKeyPrefixUncompressed = 0x04

	pubKeyBytesLenUncompressed = 65
)

// PublicKey is a secp256k1 point. Both encodings are derived from the same
// parsed point so they can never disagree.
type PublicKey struct {
	key *btcec.PublicKey
}

// ParsePublicKey accepts either a 33 bytes compressed or a 65 bytes
// uncompressed encoding. Hybrid encodings are refused.
func ParsePublicKey(buf []byte) (*PublicKey, error) {
	switch len(buf) {
	case btcec.PubKeyBytesLenCompressed:
		if buf[0] != pubKeyPrefixEven && buf[0] != pubKeyPrefixOdd {
			return nil, fmt.Errorf(
				"%w: unrecognized prefix 0x%02x for compressed key",
				ErrInvalidKeyEncoding, buf[0],
			)
		}
	case pubKeyBytesLenUncompressed:
		if buf[0] != pubKeyPrefixUncompressed {
			return nil, fmt.Errorf(
				"%w: unrecognized prefix 0x%02x for uncompressed key",
				ErrInvalidKeyEncoding, buf[0],
			)
		}
	default:
		return nil, fmt.Errorf(
			"%w: expected %d or %d bytes, got %d", ErrInvalidKeyEncoding,
			btcec.PubKeyBytesLenCompressed, pubKeyBytesLenUncompressed, len(buf),
		)
	}

	key, err := btcec.ParsePubKey(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyEncoding, err)
	}
	return &PublicKey{key}, nil
}

// Compressed returns the 33 bytes encoding of the key.
func (p *PublicKey) Compressed() []byte {
	return p.key.SerializeCompressed()
}

// Uncompressed returns the 65 bytes encoding of the key, the one required by
// the owner field of a transaction.
func (p *PublicKey) Uncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Owner returns the base64url owner field for the key.
func (p *PublicKey) Owner() string {
	return EncodeB64URL(p.Uncompressed())
}

// Address returns the wallet address owning the key.
func (p *PublicKey) Address() string {
	hash := sha256.Sum256(p.Uncompressed())
	return EncodeB64URL(hash[:])
}

// Decompress returns the uncompressed encoding of the given compressed key.
// It fails if the input is not exactly a compressed point on the curve.
func Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) != btcec.PubKeyBytesLenCompressed {
		return nil, fmt.Errorf(
			"%w: compressed key must be %d bytes, got %d", ErrInvalidKeyEncoding,
			btcec.PubKeyBytesLenCompressed, len(compressed),
		)
	}
	key, err := ParsePublicKey(compressed)
	if err != nil {
		return nil, err
	}
	return key.Uncompressed(), nil
}

// Compress is the inverse of Decompress.
func Compress(uncompressed []byte) ([]byte, error) {
	if len(uncompressed) != pubKeyBytesLenUncompressed {
		return nil, fmt.Errorf(
			"%w: uncompressed key must be %d bytes, got %d", ErrInvalidKeyEncoding,
			pubKeyBytesLenUncompressed, len(uncompressed),
		)
	}
	key, err := ParsePublicKey(uncompressed)
	if err != nil {
		return nil, err
	}
	return key.Compressed(), nil
}

// AddressFromOwner returns the address of the given base64url owner, that is
// the base64url SHA-256 digest of the owner bytes.
func AddressFromOwner(owner string) (string, error) {
	buf, err := DecodeB64URL(owner)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidOwner, err)
	}
	if len(buf) == 0 {
		return "", ErrMissingOwner
	}
	hash := sha256.Sum256(buf)
	return EncodeB64URL(hash[:]), nil
}

type DeriveChildPublicKeyArgs struct {
	Xpub     string
	Index    uint32
	Hardened bool
}

func (a DeriveChildPublicKeyArgs) validate() error {
	if a.Xpub == "" {
		return ErrMissingExtendedKey
	}
	if a.Hardened || a.Index >= hdkeychain.HardenedKeyStart {
		return ErrHardenedDerivation
	}
	return nil
}

// DeriveChildPublicKey derives the non-hardened child at the given index of
// an extended public key. The derivation never involves a private key.
func DeriveChildPublicKey(args DeriveChildPublicKeyArgs) (*PublicKey, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	node, err := parseExtendedPublicKey(args.Xpub)
	if err != nil {
		return nil, err
	}
	return deriveChild(node, DerivationPath{args.Index})
}

type DerivePublicKeyFromPathArgs struct {
	Xpub           string
	DerivationPath string
}

func (a DerivePublicKeyFromPathArgs) validate() error {
	if a.Xpub == "" {
		return ErrMissingExtendedKey
	}
	_, err := ParseDerivationPath(a.DerivationPath)
	return err
}

// DerivePublicKeyFromPath walks a relative, non-hardened derivation path
// (ie. "m/0/1") starting from the given extended public key.
func DerivePublicKeyFromPath(args DerivePublicKeyFromPathArgs) (*PublicKey, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	node, err := parseExtendedPublicKey(args.Xpub)
	if err != nil {
		return nil, err
	}
	path, _ := ParseDerivationPath(args.DerivationPath)
	return deriveChild(node, path)
}

func parseExtendedPublicKey(xpub string) (*hdkeychain.ExtendedKey, error) {
	node, err := hdkeychain.NewKeyFromString(xpub)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDerivation, err)
	}
	if node.IsPrivate() {
		return nil, ErrPrivateExtendedKey
	}
	return node, nil
}

func deriveChild(
	node *hdkeychain.ExtendedKey, path DerivationPath,
) (*PublicKey, error) {
	var err error
	for _, step := range path {
		node, err = node.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDerivation, err)
		}
	}

	key, err := node.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDerivation, err)
	}
	return &PublicKey{key}, nil
}
