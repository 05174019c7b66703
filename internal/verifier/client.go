package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BackendClient performs the raw call to the legacy identity service. The
// service's own wire format is its concern; implementations return either a
// typed Result or one of the typed faults below.
type BackendClient interface {
	Authenticate(ctx context.Context, username, password string) (Result, error)
}

// BackendFault is an application-level rejection defined by the legacy
// service itself, as opposed to a transport problem reaching it.
type BackendFault struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (f *BackendFault) Error() string {
	return fmt.Sprintf("backend fault: %s: %s", f.Message, f.Detail)
}

// TransportError is a failure at the transport layer: the service could not
// be reached, or answered outside its application protocol.
type TransportError struct {
	StatusCode int // 0 when the call never produced a response
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend transport error: %v", e.Err)
	}
	return fmt.Sprintf("backend transport error: status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Unauthorized reports whether the transport itself rejected the caller's
// credentials, as distinct from the service being unreachable.
func (e *TransportError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// HTTPBackendClient calls the legacy service over HTTP, passing the
// credentials as transport-level basic authentication.
type HTTPBackendClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPBackendClient builds a client for the configured endpoint.
func NewHTTPBackendClient(endpoint string, timeout time.Duration) *HTTPBackendClient {
	return &HTTPBackendClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPBackendClient) Authenticate(ctx context.Context, username, password string) (Result, error) {
	body, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return Result{}, fmt.Errorf("encode backend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(username, password)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var out Result
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return Result{}, fmt.Errorf("decode backend response: %w", err)
		}
		return out, nil

	case resp.StatusCode == http.StatusUnprocessableEntity:
		// The legacy service reports its user-defined faults on 422.
		var fault BackendFault
		if err := json.NewDecoder(resp.Body).Decode(&fault); err != nil {
			return Result{}, &TransportError{StatusCode: resp.StatusCode}
		}
		return Result{}, &fault

	default:
		return Result{}, &TransportError{StatusCode: resp.StatusCode}
	}
}
