// Package core defines the pipeline types and interfaces for clip-to-notion.
// Each stage of the pipeline is a small, testable interface.
package core

import (
	"context"

	"github.com/jomei/notionapi"
)

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	// Charset is the canonical name of the non-UTF-8 encoding the body was
	// decoded with (e.g. "shift_jis"), or empty for UTF-8.
	Charset string
	HTML    string
}

// OgpData maps an Open Graph property name (e.g. "og:title") to its content.
type OgpData map[string]string

// ExtractedPage is the title and Open Graph metadata of a single page.
type ExtractedPage struct {
	Title string
	OGP   OgpData
}

// Config is the user configuration for a single run. It is loaded once
// and passed down by value.
type Config struct {
	APIKey     string
	DatabaseID string
}

// Fetcher retrieves and decodes HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// MetadataExtractor pulls the title and Open Graph properties from HTML.
type MetadataExtractor interface {
	Extract(html string) (*ExtractedPage, error)
}

// ContentExtractor pulls the main content fragment from a full HTML page.
type ContentExtractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Publisher sends a page-creation request and returns the raw response body.
type Publisher interface {
	Publish(ctx context.Context, apiKey string, page *notionapi.PageCreateRequest) (string, error)
}
