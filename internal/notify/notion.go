package notify

import (
	"context"

	"github.com/codenuga/ledger-api/internal/notion"
)

// NotionCommentSink delivers notifications as comments on a dedicated alert
// page in the workspace.
type NotionCommentSink struct {
	store       notion.Store
	alertPageID string
}

// NewNotionCommentSink creates a sink posting to the given alert page.
func NewNotionCommentSink(store notion.Store, alertPageID string) *NotionCommentSink {
	return &NotionCommentSink{
		store:       store,
		alertPageID: alertPageID,
	}
}

func (s *NotionCommentSink) Name() string {
	return "notion_comment"
}

func (s *NotionCommentSink) Send(ctx context.Context, message string) error {
	return s.store.CreateComment(ctx, s.alertPageID, message)
}

var _ Sink = (*NotionCommentSink)(nil)
