package arweave

import (
	"crypto/sha256"
	"fmt"
)

// SignatureType identifies the algorithm a transaction is signed with.
type SignatureType uint8

const (
	SignatureTypeRSA SignatureType = iota + 1
	SignatureTypeED25519
	SignatureTypeSecp256k1
)

var (
	ownerLenBySignatureType = map[SignatureType]int{
		SignatureTypeRSA:       512,
		SignatureTypeED25519:   32,
		SignatureTypeSecp256k1: 65,
	}
	// secp256k1 signatures are accepted both in compact (r||s) and
	// recoverable (r||s||v) form.
	signatureLensBySignatureType = map[SignatureType][]int{
		SignatureTypeRSA:       {512},
		SignatureTypeED25519:   {64},
		SignatureTypeSecp256k1: {64, 65},
	}
)

func (t SignatureType) String() string {
	switch t {
	case SignatureTypeRSA:
		return "rsa"
	case SignatureTypeED25519:
		return "ed25519"
	case SignatureTypeSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// CheckSignatureLength returns an error if the given length is not valid for
// a raw signature of this type.
func (t SignatureType) CheckSignatureLength(sigLen int) error {
	lens, ok := signatureLensBySignatureType[t]
	if !ok {
		return fmt.Errorf("%w %d", ErrInvalidSignatureType, t)
	}
	for _, l := range lens {
		if sigLen == l {
			return nil
		}
	}
	return fmt.Errorf(
		"%w: got %d bytes, %s signatures must be %v bytes",
		ErrSignatureLengthMismatch, sigLen, t, lens,
	)
}

// AttachSignature returns a signed copy of the transaction with the given
// raw signature attached and the id derived from it. The receiver is left
// untouched.
func (tx *Transaction) AttachSignature(rawSig []byte) (*Transaction, error) {
	if tx.IsSigned() {
		return nil, ErrAlreadySigned
	}
	if err := tx.SignatureType.CheckSignatureLength(len(rawSig)); err != nil {
		return nil, err
	}
	if err := tx.validate(); err != nil {
		return nil, err
	}

	signed := tx.copy()
	signed.Signature = EncodeB64URL(rawSig)
	signed.ID = ComputeID(rawSig)
	return signed, nil
}

// ComputeID returns the transaction id for the given raw signature, that is
// the base64url SHA-256 digest of the signature bytes. It depends on nothing
// else.
func ComputeID(rawSig []byte) string {
	hash := sha256.Sum256(rawSig)
	return EncodeB64URL(hash[:])
}
