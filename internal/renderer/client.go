package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jmercado/resume-tailor/internal/document"
)

const (
	importPath = "/api/resumes/import"

	// defaultTimeout bounds one submission round trip.
	defaultTimeout = 30 * time.Second

	// maxRepairDepth bounds the patch-and-retry loop to a single
	// repair cycle.
	maxRepairDepth = 1
)

// ImportResult is the rendering service's acceptance of a document.
type ImportResult struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Repaired bool   `json:"-"`
}

// validationBody is the service's structured rejection.
type validationBody struct {
	Issues []Issue `json:"issues"`
}

// Client talks to the external document-rendering service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	rules      map[string]*document.Rule
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-submission timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a Client for the rendering service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		rules:      document.DefaultRules(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Import submits a frozen document. On a structured validation
// rejection it patches a working copy at every reported path, re-runs
// schema hardening, and retries exactly once. A second rejection is
// surfaced with the remaining issues attached.
func (c *Client) Import(ctx context.Context, doc *document.WorkingDocument) (*ImportResult, error) {
	root := doc.CloneRoot()

	result, issues, err := c.submit(ctx, root)
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}

	for depth := 0; depth < maxRepairDepth; depth++ {
		for _, patch := range patchesFromIssues(issues) {
			if err := applyPatch(root, patch); err != nil {
				return nil, &APICallError{Message: "applying repair patch", Cause: err}
			}
		}
		document.Harden(root, c.rules)

		result, issues, err = c.submit(ctx, root)
		if err != nil {
			return nil, err
		}
		if result != nil {
			result.Repaired = true
			return result, nil
		}
	}

	return nil, &ImportFailedError{Issues: issues}
}

// submit performs one round trip. It returns exactly one of: a result,
// a validation issue list, or an error.
func (c *Client) submit(ctx context.Context, root map[string]any) (*ImportResult, []Issue, error) {
	payload, err := json.Marshal(root)
	if err != nil {
		return nil, nil, &APICallError{Message: "marshaling document", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+importPath, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, &APICallError{Message: "building request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &APICallError{Message: "sending document", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APICallError{Message: "reading response", StatusCode: resp.StatusCode, Cause: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var result ImportResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, nil, &APICallError{Message: "decoding import result", StatusCode: resp.StatusCode, Cause: err}
		}
		return &result, nil, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var rejection validationBody
		if err := json.Unmarshal(body, &rejection); err == nil && len(rejection.Issues) > 0 {
			return nil, rejection.Issues, nil
		}
		return nil, nil, &APICallError{Message: "document rejected", StatusCode: resp.StatusCode, Body: string(body)}

	default:
		return nil, nil, &APICallError{Message: "unexpected response", StatusCode: resp.StatusCode, Body: string(body)}
	}
}
