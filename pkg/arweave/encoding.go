package arweave

import (
	"encoding/base64"
	"strings"
)

// EncodeB64URL returns the base64url form used by every binary field of a
// transaction: URL alphabet, no padding.
func EncodeB64URL(buf []byte) string {
	return base64.RawURLEncoding.EncodeToString(buf)
}

// DecodeB64URL decodes a base64url string, tolerating trailing padding.
func DecodeB64URL(str string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(str, "="))
}
