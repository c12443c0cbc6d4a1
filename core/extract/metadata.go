package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/clip-to-notion/core"
)

// MetadataExtractor reads the document title and Open Graph properties.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// Extract parses html once and returns the text of the first <title> and
// every og:* meta property that carries a content attribute. A repeated
// property keeps its last value.
func (e *MetadataExtractor) Extract(html string) (*core.ExtractedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	ogp := make(core.OgpData)
	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		content, ok := s.Attr("content")
		if !ok {
			return
		}
		ogp[property] = content
	})

	return &core.ExtractedPage{
		Title: doc.Find("title").First().Text(),
		OGP:   ogp,
	}, nil
}
