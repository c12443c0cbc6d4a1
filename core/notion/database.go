package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// DefaultDatabaseTitle is used when no title is given to CreateDatabase.
const DefaultDatabaseTitle = "Clippings"

// DatabaseCreator creates clipping databases with the schema BuildPage
// writes to.
type DatabaseCreator struct {
	client *notionapi.Client
}

// NewDatabaseCreator creates a DatabaseCreator authenticated with apiKey.
// httpClient may be nil.
func NewDatabaseCreator(apiKey string, httpClient *http.Client) *DatabaseCreator {
	var opts []notionapi.ClientOption
	if httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(httpClient))
	}
	return &DatabaseCreator{
		client: notionapi.NewClient(notionapi.Token(apiKey), opts...),
	}
}

// Schema returns the property configuration of a clipping database.
func Schema() notionapi.PropertyConfigs {
	return notionapi.PropertyConfigs{
		PropName: notionapi.TitlePropertyConfig{
			Type: notionapi.PropertyConfigTypeTitle,
		},
		PropURL: notionapi.URLPropertyConfig{
			Type: notionapi.PropertyConfigTypeURL,
		},
		PropTags: notionapi.MultiSelectPropertyConfig{
			Type: notionapi.PropertyConfigTypeMultiSelect,
			MultiSelect: notionapi.Select{
				Options: []notionapi.Option{},
			},
		},
		PropDescription: notionapi.RichTextPropertyConfig{
			Type: notionapi.PropertyConfigTypeRichText,
		},
	}
}

// CreateDatabase creates a clipping database under parentPageID and
// returns its ID.
func (d *DatabaseCreator) CreateDatabase(ctx context.Context, parentPageID, title string) (string, error) {
	if parentPageID == "" {
		return "", fmt.Errorf("parent page ID is required")
	}
	if title == "" {
		title = DefaultDatabaseTitle
	}

	db, err := d.client.Database.Create(ctx, &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(parentPageID),
		},
		Title:      []notionapi.RichText{textItem(title)},
		Properties: Schema(),
	})
	if err != nil {
		return "", fmt.Errorf("creating database: %w", err)
	}
	return string(db.ID), nil
}
