package arweave_node

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/internal/core/ports"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

type ServiceArgs struct {
	Addr string
	// RequestTimeout bounds every single request to the node, zero means no
	// timeout.
	RequestTimeout time.Duration
}

func (a ServiceArgs) validate() error {
	if a.Addr == "" {
		return ErrMissingAddr
	}
	u, err := url.Parse(a.Addr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAddr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unknown protocol %q", ErrInvalidAddr, u.Scheme)
	}
	return nil
}

type service struct {
	client *httpClient

	log func(format string, a ...interface{})
}

func NewService(args ServiceArgs) (ports.Node, error) {
	if err := args.validate(); err != nil {
		return nil, fmt.Errorf("invalid args: %w", err)
	}

	client := newHttpClient(args.Addr, &http.Client{Timeout: args.RequestTimeout})
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("node: %s", format)
		log.Debugf(format, a...)
	}

	return &service{client, logFn}, nil
}

func (s *service) Price(
	ctx context.Context, dataSize int, target string,
) (*big.Int, error) {
	if dataSize < 0 {
		return nil, fmt.Errorf("invalid data size %d", dataSize)
	}

	path := fmt.Sprintf("/price/%d", dataSize)
	if target != "" {
		path = fmt.Sprintf("%s/%s", path, url.PathEscape(target))
	}

	resp, err := s.client.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, unexpectedResponse(path, resp)
	}

	price, err := parseWinston(resp.body)
	if err != nil {
		return nil, fmt.Errorf("invalid price returned by node: %w", err)
	}
	s.log("price for %d bytes is %s winston", dataSize, price)
	return price, nil
}

func (s *service) Anchor(ctx context.Context) (string, error) {
	resp, err := s.client.get(ctx, "/tx_anchor")
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", unexpectedResponse("/tx_anchor", resp)
	}

	anchor := strings.TrimSpace(string(resp.body))
	if _, err := arweave.DecodeB64URL(anchor); err != nil || anchor == "" {
		return "", fmt.Errorf("invalid anchor returned by node: %q", anchor)
	}
	s.log("got anchor %s", anchor)
	return anchor, nil
}

func (s *service) Balance(ctx context.Context, address string) (*big.Int, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}

	path := fmt.Sprintf("/wallet/%s/balance", url.PathEscape(address))
	resp, err := s.client.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, unexpectedResponse(path, resp)
	}

	balance, err := parseWinston(resp.body)
	if err != nil {
		return nil, fmt.Errorf("invalid balance returned by node: %w", err)
	}
	return balance, nil
}

func (s *service) Submit(
	ctx context.Context, tx *arweave.Transaction,
) (*domain.SubmissionResult, error) {
	if tx == nil || !tx.IsSigned() {
		return nil, ErrUnsignedTransaction
	}

	body, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.post(ctx, "/tx", body)
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusOK, http.StatusAccepted:
		s.log("tx %s accepted with status %d", tx.ID, resp.status)
		return &domain.SubmissionResult{
			Accepted: true,
			ID:       tx.ID,
			Status:   resp.status,
		}, nil
	default:
		s.log("tx %s rejected with status %d", tx.ID, resp.status)
		return &domain.SubmissionResult{
			Accepted:   false,
			ID:         tx.ID,
			Status:     resp.status,
			StatusText: resp.statusText,
			Body:       string(resp.body),
		}, nil
	}
}

func parseWinston(body []byte) (*big.Int, error) {
	return arweave.ParseWinston(strings.TrimSpace(string(body)))
}

func unexpectedResponse(path string, resp *httpResponse) error {
	return fmt.Errorf(
		"%w: GET %s returned %d %s", domain.ErrTransport, path,
		resp.status, resp.statusText,
	)
}
