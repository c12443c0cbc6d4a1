// Package cmd — run command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → map → publish.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gaurav-prasanna/clip-to-notion/core/clip"
	"github.com/gaurav-prasanna/clip-to-notion/core/extract"
	"github.com/gaurav-prasanna/clip-to-notion/core/fetch"
	"github.com/gaurav-prasanna/clip-to-notion/core/normalize"
	"github.com/gaurav-prasanna/clip-to-notion/core/notion"
	"github.com/gaurav-prasanna/clip-to-notion/core/output"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagTags      []string
	flagBody      bool
	flagDryRun    bool
	flagOutputDir string
)

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Clip a URL into the configured Notion database",
	Long: `Run fetches a web page, extracts its title and Open Graph metadata, and
creates a page for it in the configured Notion database. The Notion API
response is printed as-is.

Examples:
  clip-to-notion run https://example.com
  clip-to-notion run https://example.com --tags go,reading
  clip-to-notion run https://example.com --body
  clip-to-notion run https://example.com --dry-run --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runClip,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&flagTags, "tags", "t", nil, "Comma-separated tags for the Tags property")
	runCmd.Flags().BoolVar(&flagBody, "body", false, "Append the page's main content as paragraph blocks")
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the request payload instead of creating the page")
	runCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write the dry-run payload to this directory instead of stdout")
}

func runClip(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline := &clip.Pipeline{
		Fetcher:   fetch.New(),
		Extractor: extract.NewMetadataExtractor(),
		Publisher: notion.NewPublisher(),
	}
	if flagBody {
		pipeline.Body = &clip.Body{
			Extractor:  extract.New(),
			Normalizer: normalize.New(),
		}
	}

	req := clip.Request{
		URL:    rawURL,
		Tags:   splitTags(flagTags),
		Config: cfg.Core(),
	}
	ctx := context.Background()

	if flagDryRun {
		return dryRun(ctx, cmd, pipeline, req)
	}

	result, err := pipeline.Run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Response)
	return nil
}

// splitTags splits each --tags value on commas. Quotes and surrounding
// spaces are part of the tag.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		tags = append(tags, strings.Split(v, ",")...)
	}
	return tags
}

// dryRun builds the payload and prints or writes it without publishing.
func dryRun(ctx context.Context, cmd *cobra.Command, pipeline *clip.Pipeline, req clip.Request) error {
	page, err := pipeline.Build(ctx, req)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	if flagOutputDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(req.URL, data, ".json")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}
