package application_test

import (
	"context"
	"math/big"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

// ports.RemoteSigner
type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) RequestSignature(
	ctx context.Context, req domain.SignRequest,
) (*domain.SignResponse, error) {
	args := m.Called(ctx, req)

	var res *domain.SignResponse
	if a := args.Get(0); a != nil {
		res = a.(*domain.SignResponse)
	}
	return res, args.Error(1)
}

// ports.Node
type mockNode struct {
	mock.Mock
}

func (m *mockNode) Price(
	ctx context.Context, dataSize int, target string,
) (*big.Int, error) {
	args := m.Called(ctx, dataSize, target)

	var res *big.Int
	if a := args.Get(0); a != nil {
		res = a.(*big.Int)
	}
	return res, args.Error(1)
}

func (m *mockNode) Anchor(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockNode) Balance(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)

	var res *big.Int
	if a := args.Get(0); a != nil {
		res = a.(*big.Int)
	}
	return res, args.Error(1)
}

func (m *mockNode) Submit(
	ctx context.Context, tx *arweave.Transaction,
) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, tx)

	var res *domain.SubmissionResult
	switch a := args.Get(0).(type) {
	case func(context.Context, *arweave.Transaction) *domain.SubmissionResult:
		res = a(ctx, tx)
	case *domain.SubmissionResult:
		res = a
	}
	return res, args.Error(1)
}

// ports.PipelineObserver
type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) ObserveSignerRoundTrip(elapsed time.Duration, err error) {
	m.Called(elapsed, err)
}

func (m *mockObserver) ObserveSubmission(accepted bool, err error) {
	m.Called(accepted, err)
}
