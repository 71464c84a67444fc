package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// EndpointPath is where the backend accepts submissions.
const EndpointPath = "/api/contact"

// Client delivers a form to the backend.
//
// Send returns nil on a 2xx answer, a *RejectionError for any other status
// and a *TransportError when the request did not complete.
type Client interface {
	Send(ctx context.Context, f Form) error
}

// APIClient posts forms as JSON to EndpointPath on a base URL.
type APIClient struct {
	endpoint string
	hc       *http.Client
}

// NewAPIClient resolves EndpointPath against baseURL. A nil hc uses
// http.DefaultClient.
func NewAPIClient(baseURL string, hc *http.Client) (*APIClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	ref := &url.URL{Path: EndpointPath}
	return &APIClient{endpoint: base.ResolveReference(ref).String(), hc: hc}, nil
}

// Endpoint returns the absolute URL submissions are posted to.
func (c *APIClient) Endpoint() string { return c.endpoint }

// Send implements Client.
func (c *APIClient) Send(ctx context.Context, f Form) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}

	// Body is diagnostic only; a failed read counts as empty.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		body = nil
	}
	return &RejectionError{StatusCode: resp.StatusCode, Body: string(body)}
}
