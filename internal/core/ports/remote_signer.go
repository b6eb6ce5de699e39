package ports

import (
	"context"

	"github.com/vulpemventures/arsigner/internal/core/domain"
)

// RemoteSigner is the abstraction for a custodial service holding the
// private key of a vault and signing payloads on request.
type RemoteSigner interface {
	// RequestSignature sends the request and blocks until the signer returns
	// a response or the context is done. There are no retries.
	RequestSignature(
		ctx context.Context, req domain.SignRequest,
	) (*domain.SignResponse, error)
}

// RequestAuthenticator signs the requests made to the remote signer API
// with a local credential, distinct from any ledger key.
type RequestAuthenticator interface {
	// Sign returns the base64 signature of "path|timestamp|body". The body
	// must be byte-identical to the one transmitted.
	Sign(path string, timestampMillis int64, body []byte) (string, error)
}
