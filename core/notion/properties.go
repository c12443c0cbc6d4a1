// Package notion maps extracted page metadata onto a Notion database page
// and talks to the Notion API.
package notion

import (
	"github.com/gaurav-prasanna/clip-to-notion/core"
	"github.com/gaurav-prasanna/clip-to-notion/core/chunk"
	"github.com/jomei/notionapi"
)

// Property names of the target database.
const (
	PropName        = "Name"
	PropURL         = "URL"
	PropTags        = "Tags"
	PropDescription = "Description"
)

// maxChildren is the number of blocks Notion accepts in one create request.
const maxChildren = 100

// BuildPage assembles the page-creation payload for databaseID.
// og:url and og:description take precedence over sourceURL and the empty
// description; the cover is set only when og:image is present.
func BuildPage(title, sourceURL string, tags []string, databaseID string, ogp core.OgpData) *notionapi.PageCreateRequest {
	pageURL := sourceURL
	if v, ok := ogp["og:url"]; ok {
		pageURL = v
	}

	options := make([]notionapi.Option, 0, len(tags))
	for _, tag := range tags {
		options = append(options, notionapi.Option{Name: tag})
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: notionapi.Properties{
			PropName: notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{textItem(title)},
			},
			PropURL: notionapi.URLProperty{
				Type: notionapi.PropertyTypeURL,
				URL:  pageURL,
			},
			PropTags: notionapi.MultiSelectProperty{
				Type:        notionapi.PropertyTypeMultiSelect,
				MultiSelect: options,
			},
			PropDescription: notionapi.RichTextProperty{
				Type:     notionapi.PropertyTypeRichText,
				RichText: []notionapi.RichText{textItem(ogp["og:description"])},
			},
		},
	}

	if image, ok := ogp["og:image"]; ok {
		req.Cover = &notionapi.Image{
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: image},
		}
	}

	return req
}

// BodyBlocks turns Markdown text into paragraph blocks that respect
// Notion's rich-text and children limits. Text past the last block is
// dropped; the second return value reports whether that happened.
func BodyBlocks(markdown string) ([]notionapi.Block, bool) {
	chunks := chunk.New(chunk.DefaultMaxRunes).Chunk(markdown)
	truncated := false
	if len(chunks) > maxChildren {
		chunks = chunks[:maxChildren]
		truncated = true
	}

	blocks := make([]notionapi.Block, 0, len(chunks))
	for _, c := range chunks {
		blocks = append(blocks, notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: []notionapi.RichText{textItem(c)},
			},
		})
	}
	return blocks, truncated
}

func textItem(content string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: content},
	}
}
