package ledger

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/codenuga/ledger-api/internal/logger"
	"github.com/codenuga/ledger-api/internal/notion"
)

// periodTokenPattern is the only accepted shape for caller-supplied
// year-month tokens.
var periodTokenPattern = regexp.MustCompile(`^\d{4}_\d{2}$`)

// CurrentToken derives the year-month token for the given time.
func CurrentToken(now time.Time) string {
	return fmt.Sprintf("%04d_%02d", now.Year(), int(now.Month()))
}

// MonthTitle builds the canonical monthly page title for a token. The month
// is un-padded in the title even though the token zero-pads it.
func MonthTitle(token string) string {
	parts := strings.SplitN(token, "_", 2)
	if len(parts) != 2 {
		return token
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return token
	}
	return fmt.Sprintf("%s년 %d월", parts[0], month)
}

// PeriodResolver maps year-month tokens to the Notion page holding that
// month's aggregates.
type PeriodResolver struct {
	store     notion.Store
	monthlyDB string
}

// NewPeriodResolver creates a resolver against the monthly aggregate database.
func NewPeriodResolver(store notion.Store, monthlyDBID string) *PeriodResolver {
	return &PeriodResolver{
		store:     store,
		monthlyDB: monthlyDBID,
	}
}

// ResolveToken validates a caller-supplied token and resolves it to the
// month page ID. Validation happens before any store access.
func (r *PeriodResolver) ResolveToken(ctx context.Context, token string) (string, error) {
	if !periodTokenPattern.MatchString(token) {
		return "", &InvalidPeriodTokenError{Token: token}
	}
	return r.resolveTitle(ctx, MonthTitle(token))
}

// ResolveCurrent resolves the month page for the given time. The token is
// derived internally, so no shape validation is needed.
func (r *PeriodResolver) ResolveCurrent(ctx context.Context, now time.Time) (string, error) {
	return r.resolveTitle(ctx, MonthTitle(CurrentToken(now)))
}

func (r *PeriodResolver) resolveTitle(ctx context.Context, title string) (string, error) {
	req := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: propMonthTitle,
			RichText: &notionapi.TextFilterCondition{
				Equals: title,
			},
		},
	}

	resp, err := r.store.QueryDatabase(ctx, r.monthlyDB, req)
	if err != nil {
		return "", fmt.Errorf("query monthly database: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", &PeriodNotFoundError{Title: title}
	}
	if len(resp.Results) > 1 {
		// Duplicate month pages are a workspace defect; first match wins.
		log := logger.FromContext(ctx)
		log.Warn().
			Str("month_title", title).
			Int("matches", len(resp.Results)).
			Msg("Multiple monthly pages match title, using first")
	}

	return string(resp.Results[0].ID), nil
}
