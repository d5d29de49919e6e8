package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/puma-pay/puma_gateway/internal/signer"
)

// IdempotencyKeyHeader carries the per-attempt token for money-movement
// calls so the partner can de-duplicate transport-level retries.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// ErrMissingCredentials is returned before any signing or network work when
// the partner key pair was not configured for this deployment.
var ErrMissingCredentials = errors.New("partner API credentials are not configured")

// UpstreamError is a non-2xx partner response. The body is surfaced verbatim
// to the caller; it never contains our credential material.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	return fmt.Sprintf("partner returned status %d", e.StatusCode)
}

// BodyKind says how a 2xx partner body was resolved.
type BodyKind int

const (
	// BodyWrapped means the partner nested the useful data under a
	// top-level "payload" field, which Data now holds.
	BodyWrapped BodyKind = iota + 1
	// BodyRaw means Data holds the response body as received.
	BodyRaw
)

// Response is a successful partner call, resolved once at this boundary into
// an explicit wrapped/raw variant so nothing downstream probes fields at
// runtime.
type Response struct {
	Kind       BodyKind
	Data       json.RawMessage
	StatusCode int
}

// Caller is the outbound partner surface the gateway composes against.
// *Client is the production implementation; tests substitute fakes.
type Caller interface {
	Do(ctx context.Context, method, path string, body []byte, idempotencyKey string) (Response, error)
}

// Client issues signed single-shot HTTP calls to the partner REST API. No
// retries; transport failures surface directly to the caller.
type Client struct {
	baseURL string
	creds   signer.Credentials
	signer  *signer.Signer
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient constructs a partner client. The base URL is used as-is apart
// from trailing-slash normalization.
func NewClient(baseURL string, creds signer.Credentials, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		signer:  signer.New(creds),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Do signs and dispatches one request. body must be the exact bytes to
// transmit (nil for body-less requests) and path must start with / and
// include any query string, because both are covered by the signature.
func (c *Client) Do(ctx context.Context, method, path string, body []byte, idempotencyKey string) (Response, error) {
	if !c.creds.Configured() {
		return Response{}, ErrMissingCredentials
	}

	signed := c.signer.Sign(method, path, body)

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response{}, fmt.Errorf("build partner request: %w", err)
	}
	req.Header.Set("Authorization", signed.Header)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}

	c.logger.Info("partner call", "method", method, "path", path, "idempotency_key", idempotencyKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("partner call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read partner response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("partner call rejected", "method", method, "path", path, "status", resp.StatusCode)
		return Response{}, &UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return unwrap(resp.StatusCode, respBody), nil
}

// unwrap resolves the wrapped-vs-raw variant exactly once. A top-level
// "payload" field wins; anything else, including non-object bodies, passes
// through raw.
func unwrap(status int, body []byte) Response {
	var probe struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && len(probe.Payload) > 0 {
		return Response{Kind: BodyWrapped, Data: probe.Payload, StatusCode: status}
	}
	return Response{Kind: BodyRaw, Data: body, StatusCode: status}
}
