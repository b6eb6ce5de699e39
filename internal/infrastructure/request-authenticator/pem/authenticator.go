package pem_authenticator

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"

	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/internal/core/ports"
)

// PemAuthenticator signs the requests to the remote signer with a private key
// loaded from a PEM file. The key is never modified after loading.
type PemAuthenticator struct {
	key crypto.Signer
}

func NewAuthenticator(path string) (ports.RequestAuthenticator, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigningKeyUnavailable, err)
	}
	key, err := parsePrivateKey(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigningKeyUnavailable, err)
	}
	return &PemAuthenticator{key}, nil
}

func (a *PemAuthenticator) Sign(
	path string, timestampMillis int64, body []byte,
) (string, error) {
	msg := SigningMessage(path, timestampMillis, body)

	var (
		sig []byte
		err error
	)
	switch key := a.key.(type) {
	case *ecdsa.PrivateKey:
		hash := sha256.Sum256(msg)
		sig, err = ecdsa.SignASN1(rand.Reader, key, hash[:])
	case *rsa.PrivateKey:
		hash := sha256.Sum256(msg)
		sig, err = rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hash[:])
	case ed25519.PrivateKey:
		sig = ed25519.Sign(key, msg)
	default:
		err = fmt.Errorf("unsupported key type %T", key)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrSigningKeyUnavailable, err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// SigningMessage returns the exact bytes signed for a request:
// path|timestamp|body.
func SigningMessage(path string, timestampMillis int64, body []byte) []byte {
	msg := make([]byte, 0, len(path)+len(body)+22)
	msg = append(msg, path...)
	msg = append(msg, '|')
	msg = strconv.AppendInt(msg, timestampMillis, 10)
	msg = append(msg, '|')
	return append(msg, body...)
}

func parsePrivateKey(buf []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(buf)
	if block == nil {
		return nil, fmt.Errorf("no pem block found")
	}

	switch block.Type {
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		switch k := key.(type) {
		case *ecdsa.PrivateKey:
			return k, nil
		case *rsa.PrivateKey:
			return k, nil
		case ed25519.PrivateKey:
			return k, nil
		default:
			return nil, fmt.Errorf("unsupported key type %T", key)
		}
	default:
		return nil, fmt.Errorf("unsupported pem block type %q", block.Type)
	}
}
