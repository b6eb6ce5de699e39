package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/internal/core/ports"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

// TransferService is responsible for moving funds (and optionally data) out
// of a custodial vault:
//   - Resolve the owner public key of the vault, either directly or by
//     non-hardened derivation from an extended public key.
//   - Build the unsigned transaction and its signing payload, fetching reward
//     and anchor from the node if not provided.
//   - Request the signature of the payload to the remote signer.
//   - Attach the signature and derive the transaction id.
//   - Submit the signed transaction to the node.
//
// Stages are strictly sequential and fail fast, nothing is retried.
// Every call processes exactly one transaction and the service holds no
// mutable state, so it is safe for concurrent use.
type TransferService struct {
	signer        ports.RemoteSigner
	node          ports.Node
	observer      ports.PipelineObserver
	vaultID       string
	note          string
	signerTimeout time.Duration
	now           func() time.Time

	log func(format string, a ...interface{})
}

type TransferServiceArgs struct {
	// Signer can be nil if the service is used only for dry runs.
	Signer  ports.RemoteSigner
	Node    ports.Node
	VaultID string
	Note    string
	// SignerTimeout bounds the wait for the remote signer, zero means the
	// wait is bounded only by the caller's context.
	SignerTimeout time.Duration
	// Observer is optional.
	Observer ports.PipelineObserver
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a TransferServiceArgs) validate() error {
	if a.Node == nil {
		return ErrMissingNode
	}
	if a.Signer != nil && a.VaultID == "" {
		return domain.ErrMissingVaultID
	}
	if a.SignerTimeout < 0 {
		return fmt.Errorf("signer timeout must not be negative")
	}
	return nil
}

func NewTransferService(args TransferServiceArgs) (*TransferService, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	now := args.Now
	if now == nil {
		now = time.Now
	}
	observer := args.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("transfer service: %s", format)
		log.Debugf(format, a...)
	}

	return &TransferService{
		args.Signer, args.Node, observer, args.VaultID, args.Note,
		args.SignerTimeout, now, logFn,
	}, nil
}

// Transfer runs the whole pipeline for one transaction. If the node rejects
// the transaction the result is returned together with ErrSubmissionRejected.
func (ts *TransferService) Transfer(
	ctx context.Context, args TransferArgs,
) (*TransferResult, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	pubkey, err := args.Owner.publicKey()
	if err != nil {
		return nil, err
	}
	ts.log("resolved owner address %s", pubkey.Address())

	tx, err := ts.buildTransaction(ctx, pubkey, args)
	if err != nil {
		return nil, err
	}
	payload, err := tx.SignatureData()
	if err != nil {
		return nil, err
	}
	ts.log("computed signing payload %s", hex.EncodeToString(payload))

	if args.DryRun {
		return &TransferResult{Tx: tx, SignatureData: payload}, nil
	}
	if ts.signer == nil {
		return nil, ErrMissingSigner
	}

	rawSig, err := ts.requestSignature(ctx, payload)
	if err != nil {
		return nil, err
	}

	signedTx, err := tx.AttachSignature(rawSig)
	if err != nil {
		return nil, err
	}
	ts.log("signed tx %s", signedTx.ID)

	result := &TransferResult{Tx: signedTx, SignatureData: payload}

	submission, err := ts.node.Submit(ctx, signedTx)
	ts.observer.ObserveSubmission(submission != nil && submission.Accepted, err)
	if err != nil {
		return nil, err
	}
	result.Submission = submission

	if !submission.Accepted {
		return result, fmt.Errorf(
			"%w: status %d %s: %s", domain.ErrSubmissionRejected,
			submission.Status, submission.StatusText, submission.Body,
		)
	}
	ts.log("tx %s submitted", signedTx.ID)
	return result, nil
}

func (ts *TransferService) buildTransaction(
	ctx context.Context, pubkey *arweave.PublicKey, args TransferArgs,
) (*arweave.Transaction, error) {
	reward := args.Reward
	if reward == nil {
		price, err := ts.node.Price(ctx, len(args.Data), args.Target)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reward: %w", err)
		}
		reward = price
	}

	lastTx := args.LastTx
	if lastTx == "" {
		anchor, err := ts.node.Anchor(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch anchor: %w", err)
		}
		lastTx = anchor
	}

	return arweave.NewTransaction(arweave.NewTransactionArgs{
		Owner:         pubkey.Owner(),
		Target:        args.Target,
		Quantity:      args.Quantity,
		Reward:        reward,
		LastTx:        lastTx,
		Data:          args.Data,
		Tags:          args.Tags,
		SignatureType: arweave.SignatureTypeSecp256k1,
	})
}

func (ts *TransferService) requestSignature(
	ctx context.Context, payload []byte,
) ([]byte, error) {
	if ts.signerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ts.signerTimeout)
		defer cancel()
	}

	req := domain.NewSignRequest(ts.vaultID, ts.note, payload)

	start := ts.now()
	resp, err := ts.signer.RequestSignature(ctx, req)
	ts.observer.ObserveSignerRoundTrip(ts.now().Sub(start), err)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, domain.ErrSignatureMissing
	}
	ts.log("remote signer returned %s", resp.Kind())

	return resp.RawSignature()
}

type noopObserver struct{}

func (noopObserver) ObserveSignerRoundTrip(time.Duration, error) {}
func (noopObserver) ObserveSubmission(bool, error)               {}
