// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET, buffers the raw body, and decodes it with
// the charset from the Content-Type header (UTF-8 by default). If the page
// declares Shift_JIS in a meta tag, the same bytes are decoded again with
// that charset.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/clip-to-notion/core"
	"github.com/gaurav-prasanna/clip-to-notion/core/charset"
	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "clip-to-notion/1.0 (https://github.com/gaurav-prasanna/clip-to-notion)"
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient sets a custom HTTP client.
func (f *HTTPFetcher) WithHTTPClient(client *http.Client) *HTTPFetcher {
	f.client = client
	return f
}

// Fetch retrieves the HTML content of the given URL.
// Any HTTP status is accepted; only transport failures are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.TransportError{Op: http.MethodGet, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("unexpected status fetching page", "url", url, "status", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransportError{Op: http.MethodGet, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	html, cs, err := decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	slog.Debug("fetched page", "url", url, "status", resp.StatusCode, "bytes", len(raw), "charset", cs)

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Charset:    cs,
		HTML:       html,
	}, nil
}

// decode returns the body as text. The first rendition uses the charset
// from the Content-Type header, or permissive UTF-8 when there is none.
// If the document then declares Shift_JIS in a meta tag, the raw bytes are
// decoded with it instead and the first rendition is discarded.
func decode(raw []byte, contentType string) (string, string, error) {
	name := headerCharset(contentType)
	text, err := decodeAs(raw, name)
	if err != nil {
		return "", "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", "", fmt.Errorf("parsing HTML: %w", err)
	}
	label, ok := charset.Detect(doc)
	if !ok {
		return text, name, nil
	}

	_, detected := htmlcharset.Lookup(label)
	if detected == "" {
		return "", "", fmt.Errorf("unsupported charset %q", label)
	}
	if detected == name {
		return text, name, nil
	}
	text, err = decodeAs(raw, detected)
	if err != nil {
		return "", "", err
	}
	return text, detected, nil
}

// headerCharset returns the canonical name of the charset parameter of a
// Content-Type value. Missing, unknown and UTF-8 charsets yield "".
func headerCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	enc, name := htmlcharset.Lookup(params["charset"])
	if enc == nil || name == "utf-8" {
		return ""
	}
	return name
}

// decodeAs decodes raw with the named charset, or as UTF-8 replacing each
// invalid sequence with U+FFFD when name is empty.
func decodeAs(raw []byte, name string) (string, error) {
	var enc encoding.Encoding = unicode.UTF8
	if name != "" {
		enc, _ = htmlcharset.Lookup(name)
		if enc == nil {
			return "", fmt.Errorf("unsupported charset %q", name)
		}
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding body as %s: %w", displayName(name), err)
	}
	return string(decoded), nil
}

func displayName(name string) string {
	if name == "" {
		return "utf-8"
	}
	return name
}
