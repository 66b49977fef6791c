package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// Store defines the page-store operations the ledger needs from Notion.
// This interface enables mocking and testing of Notion operations.
type Store interface {
	// GetPage retrieves a page with all of its properties.
	GetPage(ctx context.Context, pageID string) (*notionapi.Page, error)

	// CreatePage creates a new page in a Notion database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// UpdatePage updates an existing Notion page with the given properties.
	UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error)

	// QueryDatabase queries a Notion database with the given filter.
	QueryDatabase(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)

	// CreateComment appends a plain-text comment to a page.
	CreateComment(ctx context.Context, pageID string, text string) error
}
