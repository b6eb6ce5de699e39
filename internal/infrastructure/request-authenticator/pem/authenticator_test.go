package pem_authenticator_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/arsigner/internal/core/domain"
	pem_authenticator "github.com/vulpemventures/arsigner/internal/infrastructure/request-authenticator/pem"
)

const (
	path      = "/api/v1/transactions/create-and-wait"
	timestamp = int64(1700000000000)
)

var body = []byte(`{"vault_id":"v"}`)

func TestSigningMessage(t *testing.T) {
	msg := pem_authenticator.SigningMessage(path, timestamp, body)
	require.Equal(
		t, `/api/v1/transactions/create-and-wait|1700000000000|{"vault_id":"v"}`,
		string(msg),
	)
}

func TestAuthenticator(t *testing.T) {
	t.Parallel()

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	hash := sha256.Sum256(pem_authenticator.SigningMessage(path, timestamp, body))

	t.Run("ecdsa sec1", func(t *testing.T) {
		der, err := x509.MarshalECPrivateKey(ecKey)
		require.NoError(t, err)
		sig := signWithKeyFile(t, "EC PRIVATE KEY", der)
		require.True(t, ecdsa.VerifyASN1(&ecKey.PublicKey, hash[:], sig))
	})

	t.Run("ecdsa pkcs8", func(t *testing.T) {
		der, err := x509.MarshalPKCS8PrivateKey(ecKey)
		require.NoError(t, err)
		sig := signWithKeyFile(t, "PRIVATE KEY", der)
		require.True(t, ecdsa.VerifyASN1(&ecKey.PublicKey, hash[:], sig))
	})

	t.Run("rsa pkcs1", func(t *testing.T) {
		der := x509.MarshalPKCS1PrivateKey(rsaKey)
		sig := signWithKeyFile(t, "RSA PRIVATE KEY", der)
		err := rsa.VerifyPKCS1v15(&rsaKey.PublicKey, crypto.SHA256, hash[:], sig)
		require.NoError(t, err)
	})

	t.Run("ed25519 pkcs8", func(t *testing.T) {
		der, err := x509.MarshalPKCS8PrivateKey(edKey)
		require.NoError(t, err)
		sig := signWithKeyFile(t, "PRIVATE KEY", der)
		msg := pem_authenticator.SigningMessage(path, timestamp, body)
		require.True(t, ed25519.Verify(edKey.Public().(ed25519.PublicKey), msg, sig))
	})
}

func TestFailingAuthenticator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notPem := filepath.Join(dir, "not-pem")
	require.NoError(t, os.WriteFile(notPem, []byte("not a key"), 0600))
	badDer := filepath.Join(dir, "bad-der")
	require.NoError(t, os.WriteFile(badDer, pem.EncodeToMemory(&pem.Block{
		Type: "EC PRIVATE KEY", Bytes: []byte{0x01, 0x02},
	}), 0600))
	publicKey := filepath.Join(dir, "public")
	require.NoError(t, os.WriteFile(publicKey, pem.EncodeToMemory(&pem.Block{
		Type: "PUBLIC KEY", Bytes: []byte{0x01, 0x02},
	}), 0600))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing")},
		{"not pem", notPem},
		{"malformed key", badDer},
		{"public key", publicKey},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			auth, err := pem_authenticator.NewAuthenticator(tt.path)
			require.ErrorIs(t, err, domain.ErrSigningKeyUnavailable)
			require.Nil(t, auth)
		})
	}
}

func signWithKeyFile(t *testing.T, blockType string, der []byte) []byte {
	t.Helper()

	keyPath := filepath.Join(t.TempDir(), "key.pem")
	buf := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	require.NoError(t, os.WriteFile(keyPath, buf, 0600))

	auth, err := pem_authenticator.NewAuthenticator(keyPath)
	require.NoError(t, err)

	sig, err := auth.Sign(path, timestamp, body)
	require.NoError(t, err)

	rawSig, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)
	return rawSig
}
