package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/clip-to-notion/core"
	"github.com/jomei/notionapi"
	"golang.org/x/net/http/httpguts"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
	defaultTimeout = 30 * time.Second
)

// HeaderError reports a request header value that cannot be sent, such as
// an API key containing control characters.
type HeaderError struct {
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid value for header %s", e.Header)
}

// Publisher creates pages through the Notion REST API.
type Publisher struct {
	httpClient *http.Client
	baseURL    string
}

// NewPublisher creates a Publisher for the public Notion API.
func NewPublisher() *Publisher {
	return &Publisher{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
	}
}

// WithHTTPClient sets a custom HTTP client.
func (p *Publisher) WithHTTPClient(client *http.Client) *Publisher {
	p.httpClient = client
	return p
}

// WithBaseURL sets a custom base URL (useful for testing).
func (p *Publisher) WithBaseURL(baseURL string) *Publisher {
	p.baseURL = baseURL
	return p
}

// Publish POSTs page to the create-page endpoint and returns the response
// body verbatim. Error statuses are returned as a body, not as an error;
// only header and transport failures fail.
func (p *Publisher) Publish(ctx context.Context, apiKey string, page *notionapi.PageCreateRequest) (string, error) {
	headers, err := requestHeaders(apiKey)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("marshaling page: %w", err)
	}

	url := p.baseURL + "/pages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header = headers

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &core.TransportError{Op: http.MethodPost, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.TransportError{Op: http.MethodPost, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode >= 400 {
		slog.Warn("notion API returned an error status", "status", resp.StatusCode)
	} else {
		slog.Debug("page created", "status", resp.StatusCode, "bytes", len(body))
	}

	return string(body), nil
}

func requestHeaders(apiKey string) (http.Header, error) {
	auth := "Bearer " + apiKey
	if !httpguts.ValidHeaderFieldValue(auth) {
		return nil, &HeaderError{Header: "Authorization"}
	}

	h := make(http.Header)
	h.Set("Notion-Version", apiVersion)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", auth)
	return h, nil
}
