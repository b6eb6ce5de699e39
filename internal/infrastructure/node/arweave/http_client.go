package arweave_node

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/vulpemventures/arsigner/internal/core/domain"
)

// httpClient performs plain HTTP(s) requests against the node API.
type httpClient struct {
	serverAddr string
	client     *http.Client
}

type httpResponse struct {
	status     int
	statusText string
	body       []byte
}

func (r httpResponse) ok() bool {
	return r.status == http.StatusOK
}

func newHttpClient(addr string, client *http.Client) *httpClient {
	if client == nil {
		client = &http.Client{}
	}
	return &httpClient{strings.TrimRight(addr, "/"), client}
}

func (c *httpClient) get(ctx context.Context, path string) (*httpResponse, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *httpClient) post(
	ctx context.Context, path string, body []byte,
) (*httpResponse, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *httpClient) do(
	ctx context.Context, method, path string, body []byte,
) (*httpResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverAddr+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}

	return &httpResponse{
		status:     resp.StatusCode,
		statusText: reasonPhrase(resp),
		body:       data,
	}, nil
}

// reasonPhrase returns the status text sent by the node, falling back to the
// standard one if empty.
func reasonPhrase(resp *http.Response) string {
	text := strings.TrimSpace(
		strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)),
	)
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
