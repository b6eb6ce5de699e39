package ports

import (
	"context"
	"math/big"

	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

// Node is the abstraction for any kind of service representing an Arweave
// node or gateway.
type Node interface {
	// Price returns the reward, in winston, required by the network to store
	// the given amount of data with a transfer to the given (optional)
	// target.
	Price(ctx context.Context, dataSize int, target string) (*big.Int, error)
	// Anchor returns a recent anchor to be used as last_tx of a new tx.
	Anchor(ctx context.Context) (string, error)
	// Balance returns the balance, in winston, of the given address.
	Balance(ctx context.Context, address string) (*big.Int, error)
	// Submit posts the signed tx. A response from the node, whatever the
	// status, is not an error.
	Submit(
		ctx context.Context, tx *arweave.Transaction,
	) (*domain.SubmissionResult, error)
}
