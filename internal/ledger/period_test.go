package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jomei/notionapi"
)

func TestCurrentToken(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	if got := CurrentToken(now); got != "2024_03" {
		t.Errorf("CurrentToken() = %q, want %q", got, "2024_03")
	}
}

func TestMonthTitle(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"2024_03", "2024년 3월"},
		{"2024_12", "2024년 12월"},
		{"2025_01", "2025년 1월"},
	}

	for _, tt := range tests {
		if got := MonthTitle(tt.token); got != tt.want {
			t.Errorf("MonthTitle(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestResolveTokenInvalidShape(t *testing.T) {
	store := newMockStore()
	r := NewPeriodResolver(store, "monthly-db")

	for _, token := range []string{"", "2024-03", "2024_3", "202403", "abcd_ef"} {
		_, err := r.ResolveToken(context.Background(), token)
		var tokenErr *InvalidPeriodTokenError
		if !errors.As(err, &tokenErr) {
			t.Errorf("ResolveToken(%q) error = %v, want *InvalidPeriodTokenError", token, err)
		}
	}

	if store.totalCalls() != 0 {
		t.Errorf("store calls = %d, want 0 for rejected tokens", store.totalCalls())
	}
}

func TestResolveTokenFound(t *testing.T) {
	store := newMockStore()
	store.queryFn = func(databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
		if databaseID != "monthly-db" {
			t.Errorf("databaseID = %q, want %q", databaseID, "monthly-db")
		}
		filter, ok := req.Filter.(notionapi.PropertyFilter)
		if !ok {
			t.Fatalf("filter type = %T, want PropertyFilter", req.Filter)
		}
		if filter.Property != "연월구분" {
			t.Errorf("filter property = %q, want %q", filter.Property, "연월구분")
		}
		if filter.RichText == nil || filter.RichText.Equals != "2024년 3월" {
			t.Errorf("title filter = %+v, want equals %q", filter.RichText, "2024년 3월")
		}
		return &notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{{ID: "month-page-id"}},
		}, nil
	}

	r := NewPeriodResolver(store, "monthly-db")
	got, err := r.ResolveToken(context.Background(), "2024_03")
	if err != nil {
		t.Fatalf("ResolveToken() error = %v", err)
	}
	if got != "month-page-id" {
		t.Errorf("ResolveToken() = %q, want %q", got, "month-page-id")
	}
}

func TestResolveTokenNotFound(t *testing.T) {
	store := newMockStore()
	r := NewPeriodResolver(store, "monthly-db")

	_, err := r.ResolveToken(context.Background(), "2024_03")
	var notFoundErr *PeriodNotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("ResolveToken() error = %v, want *PeriodNotFoundError", err)
	}
	if notFoundErr.Title != "2024년 3월" {
		t.Errorf("Title = %q, want %q", notFoundErr.Title, "2024년 3월")
	}
}

func TestResolveTokenDuplicatesUseFirst(t *testing.T) {
	store := newMockStore()
	store.queryResults = []notionapi.Page{{ID: "first"}, {ID: "second"}}
	r := NewPeriodResolver(store, "monthly-db")

	got, err := r.ResolveToken(context.Background(), "2024_03")
	if err != nil {
		t.Fatalf("ResolveToken() error = %v", err)
	}
	if got != "first" {
		t.Errorf("ResolveToken() = %q, want %q", got, "first")
	}
}

func TestResolveCurrent(t *testing.T) {
	store := newMockStore()
	store.queryFn = func(databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
		filter := req.Filter.(notionapi.PropertyFilter)
		if filter.RichText == nil || filter.RichText.Equals != "2025년 1월" {
			t.Errorf("title filter = %+v, want equals %q", filter.RichText, "2025년 1월")
		}
		return &notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{{ID: "jan-page"}},
		}, nil
	}

	r := NewPeriodResolver(store, "monthly-db")
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	got, err := r.ResolveCurrent(context.Background(), now)
	if err != nil {
		t.Fatalf("ResolveCurrent() error = %v", err)
	}
	if got != "jan-page" {
		t.Errorf("ResolveCurrent() = %q, want %q", got, "jan-page")
	}
}

func TestResolveTokenQueryError(t *testing.T) {
	store := newMockStore()
	store.queryErr = errors.New("boom")
	r := NewPeriodResolver(store, "monthly-db")

	if _, err := r.ResolveToken(context.Background(), "2024_03"); err == nil {
		t.Fatal("ResolveToken() error = nil, want query error")
	}
}
