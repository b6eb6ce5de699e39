package fordefi_signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/internal/core/ports"
)

type ServiceArgs struct {
	Addr          string
	Path          string
	AccessToken   string
	Authenticator ports.RequestAuthenticator
	HttpClient    *http.Client
	// Now is used to timestamp requests, defaults to time.Now.
	Now func() time.Time
}

func (a ServiceArgs) validate() error {
	if a.Addr == "" {
		return ErrMissingAddr
	}
	if a.AccessToken == "" {
		return ErrMissingAccessToken
	}
	if a.Authenticator == nil {
		return ErrMissingAuthenticator
	}
	return nil
}

type service struct {
	url           string
	path          string
	accessToken   string
	authenticator ports.RequestAuthenticator
	client        *http.Client
	now           func() time.Time
}

func NewService(args ServiceArgs) (ports.RemoteSigner, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	path := args.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	client := args.HttpClient
	if client == nil {
		client = &http.Client{}
	}
	now := args.Now
	if now == nil {
		now = time.Now
	}

	return &service{
		url:           strings.TrimRight(args.Addr, "/") + path,
		path:          path,
		accessToken:   args.AccessToken,
		authenticator: args.Authenticator,
		client:        client,
		now:           now,
	}, nil
}

func (s *service) RequestSignature(
	ctx context.Context, req domain.SignRequest,
) (*domain.SignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(newCreateAndWaitRequest(req))
	if err != nil {
		return nil, err
	}

	timestamp := s.now().UnixMilli()
	signature, err := s.authenticator.Sign(s.path, timestamp, body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.url, bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	httpReq.Header.Set(headerAuthorization, "Bearer "+s.accessToken)
	httpReq.Header.Set(headerSignature, signature)
	httpReq.Header.Set(headerTimestamp, strconv.FormatInt(timestamp, 10))
	httpReq.Header.Set(headerContentType, contentTypeApplicationJSON)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseErrorResponse(resp.StatusCode, data)
	}

	var out createAndWaitResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSignatureMissing, err)
	}

	signatures := make([]string, 0, len(out.Signatures))
	for _, sig := range out.Signatures {
		signatures = append(signatures, string(sig))
	}
	signResponse := domain.NewSignResponse(signatures, out.Signature)
	if signResponse.Kind() == domain.SignResponseEmpty {
		return nil, domain.ErrSignatureMissing
	}
	return &signResponse, nil
}

func newCreateAndWaitRequest(req domain.SignRequest) createAndWaitRequest {
	var waitForState string
	if req.WaitPolicy == domain.WaitPolicyUntilSigned {
		waitForState = waitForStateSigned
	}
	return createAndWaitRequest{
		VaultID:    req.VaultID,
		Note:       req.Note,
		SignerType: signerTypeAPISigner,
		SignMode:   string(req.Mode),
		Type:       txTypeBlackBoxSignature,
		Details: requestDetails{
			Format:     string(req.Format),
			HashBinary: req.PayloadB64(),
		},
		WaitForState: waitForState,
	}
}

func parseErrorResponse(status int, data []byte) error {
	rejected := &domain.SignerRejectedError{StatusCode: status}

	var out errorResponse
	if err := json.Unmarshal(data, &out); err != nil {
		rejected.Detail = strings.TrimSpace(string(data))
		return rejected
	}
	rejected.Title = out.Title
	rejected.Detail = out.Detail
	rejected.RequestID = out.RequestID
	if len(out.Validation) > 0 && string(out.Validation) != "null" {
		rejected.Validation = string(out.Validation)
	}
	return rejected
}
