// Package clip runs the clip pipeline:
// fetch → extract → map → publish.
//
// Every stage failure is returned as a *core.StageError naming the stage;
// nothing here retries or recovers.
package clip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/clip-to-notion/core"
	"github.com/gaurav-prasanna/clip-to-notion/core/notion"
	"github.com/jomei/notionapi"
)

// Request is a single clip invocation.
type Request struct {
	URL    string
	Tags   []string
	Config core.Config
}

// Result is the outcome of a published clip.
type Result struct {
	Page     *notionapi.PageCreateRequest
	Response string
}

// Body isolates and converts page content for the optional page body.
// Both fields must be set for it to be used.
type Body struct {
	Extractor  core.ContentExtractor
	Normalizer core.Normalizer
}

// Pipeline wires the clip stages together.
type Pipeline struct {
	Fetcher   core.Fetcher
	Extractor core.MetadataExtractor
	Publisher core.Publisher
	// Body is nil unless page content should be appended as blocks.
	Body *Body
}

// Build fetches and extracts the page and assembles the create-page
// payload without publishing it.
func (p *Pipeline) Build(ctx context.Context, req Request) (*notionapi.PageCreateRequest, error) {
	result, err := p.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, &core.StageError{Stage: "fetch", Err: err}
	}

	extracted, err := p.Extractor.Extract(result.HTML)
	if err != nil {
		return nil, &core.StageError{Stage: "extract", Err: err}
	}
	slog.Debug("extracted metadata", "title", extracted.Title, "ogp", len(extracted.OGP))

	page := notion.BuildPage(extracted.Title, req.URL, req.Tags, req.Config.DatabaseID, extracted.OGP)

	if p.Body != nil && p.Body.Extractor != nil && p.Body.Normalizer != nil {
		children, err := p.body(result.HTML)
		if err != nil {
			return nil, &core.StageError{Stage: "extract", Err: err}
		}
		page.Children = children
	}

	return page, nil
}

// Run builds the payload and publishes it, returning the raw API response.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	page, err := p.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.Publisher.Publish(ctx, req.Config.APIKey, page)
	if err != nil {
		return nil, &core.StageError{Stage: "publish", Err: err}
	}

	return &Result{Page: page, Response: resp}, nil
}

func (p *Pipeline) body(html string) ([]notionapi.Block, error) {
	content, err := p.Body.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("isolating content: %w", err)
	}
	markdown, err := p.Body.Normalizer.Normalize(content)
	if err != nil {
		return nil, err
	}
	blocks, truncated := notion.BodyBlocks(markdown)
	if truncated {
		slog.Warn("page body truncated", "blocks", len(blocks))
	}
	return blocks, nil
}
