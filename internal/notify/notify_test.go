package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/codenuga/ledger-api/internal/ledger"
)

// mockStore serves the month page and expense rows the budget reporter needs.
type mockStore struct {
	mu       sync.Mutex
	comments []string
	queryErr error
}

func (m *mockStore) GetPage(ctx context.Context, pageID string) (*notionapi.Page, error) {
	return &notionapi.Page{
		ID: notionapi.ObjectID(pageID),
		Properties: notionapi.Properties{
			"수입":    notionapi.RollupProperty{Rollup: notionapi.Rollup{Number: 3_000_000}},
			"지출":    notionapi.RollupProperty{Rollup: notionapi.Rollup{Number: 2_000_000}},
			"잔액":    notionapi.FormulaProperty{Formula: notionapi.Formula{Number: 1_000_000}},
			"지출 예산": notionapi.NumberProperty{Number: 500_000},
		},
	}, nil
}

func (m *mockStore) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return &notionapi.Page{}, nil
}

func (m *mockStore) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return &notionapi.Page{}, nil
}

func (m *mockStore) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if databaseID == "monthly-db" {
		return &notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{{ID: "month-page"}},
		}, nil
	}
	return &notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{
			{Properties: notionapi.Properties{"금액": notionapi.NumberProperty{Number: 200_000}}},
		},
	}, nil
}

func (m *mockStore) CreateComment(ctx context.Context, pageID string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, text)
	return nil
}

// mockSink records deliveries and signals each one.
type mockSink struct {
	mu       sync.Mutex
	messages []string
	sendErr  error
	received chan struct{}
}

func newMockSink() *mockSink {
	return &mockSink{received: make(chan struct{}, 16)}
}

func (s *mockSink) Name() string { return "mock" }

func (s *mockSink) Send(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.messages = append(s.messages, message)
	s.received <- struct{}{}
	return nil
}

func testNotification() ledger.ExpenseNotification {
	return ledger.ExpenseNotification{
		Title:      "점심",
		Category:   "식비",
		Amount:     12_000,
		Payer:      "본인",
		RecordedAt: time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC),
	}
}

func TestBuildMessage(t *testing.T) {
	budget := &ledger.MonthlyBudget{
		ExtraExpense:  200_000,
		Budget:        500_000,
		BudgetBalance: 300_000,
		Income:        3_000_000,
		Expense:       2_000_000,
		Balance:       1_000_000,
	}

	n := testNotification()
	n.Note = "회식"

	got := BuildMessage(n, budget)
	want := strings.Join([]string{
		"🔔 [본인]의 지출내역 추가",
		"💬 지출내역 : 식비/점심 (회식)",
		"💸 지출금액 : 12,000원",
		"📅 지출일시 : 2024-03-15 12:30",
		"-------------------------------",
		"#️⃣ 추가지출 합계 : 200,000원",
		"⏸️ 추가지출 예산잔액 : 500,000원 중 300,000원",
		"-------------------------------",
		"➕ 금월 수입 예상 : 3,000,000원",
		"➖ 금월 지출 예상 : 2,000,000원",
		"🟰 금월 잔액 예상 : 1,000,000원",
	}, "\n")
	if got != want {
		t.Errorf("BuildMessage() = %q, want %q", got, want)
	}
}

func TestBuildMessageWithoutNote(t *testing.T) {
	got := BuildMessage(testNotification(), &ledger.MonthlyBudget{})
	if !strings.Contains(got, "💬 지출내역 : 식비/점심\n") {
		t.Errorf("detail line = %q, want no note suffix", got)
	}
}

func testComposer(store *mockStore) *Composer {
	periods := ledger.NewPeriodResolver(store, "monthly-db")
	return NewComposer(ledger.NewBudgetReporter(store, periods, "expense-db"))
}

func TestComposerReadsSnapshot(t *testing.T) {
	message, err := testComposer(&mockStore{}).Compose(context.Background(), testNotification())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !strings.Contains(message, "#️⃣ 추가지출 합계 : 200,000원") {
		t.Errorf("message = %q, want extra-expense sum", message)
	}
	if !strings.Contains(message, "⏸️ 추가지출 예산잔액 : 500,000원 중 300,000원") {
		t.Errorf("message = %q, want budget balance", message)
	}
}

func TestDispatcherDelivers(t *testing.T) {
	sink := newMockSink()
	d := NewDispatcher(testComposer(&mockStore{}), []Sink{sink}, 4, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop(context.Background())

	d.NotifyExpense(context.Background(), testNotification())

	select {
	case <-sink.received:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.messages) != 1 || !strings.Contains(sink.messages[0], "🔔 [본인]의 지출내역 추가") {
		t.Errorf("messages = %q", sink.messages)
	}
}

func TestDispatcherStopDeliversQueued(t *testing.T) {
	sink := newMockSink()
	d := NewDispatcher(testComposer(&mockStore{}), []Sink{sink}, 4, zerolog.Nop())

	// Queue before the workers exist, so shutdown races the buffered items.
	d.NotifyExpense(context.Background(), testNotification())
	d.NotifyExpense(context.Background(), testNotification())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := d.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.messages) != 2 {
		t.Errorf("delivered = %d, want 2 queued notifications flushed on stop", len(sink.messages))
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := newMockSink()
	// No workers started, so the queue fills up and overflow is dropped.
	d := NewDispatcher(testComposer(&mockStore{}), []Sink{sink}, 1, zerolog.Nop())

	d.NotifyExpense(context.Background(), testNotification())
	d.NotifyExpense(context.Background(), testNotification())

	if got := len(d.queue); got != 1 {
		t.Errorf("queued = %d, want 1", got)
	}
}

func TestDispatcherDropsAfterStop(t *testing.T) {
	sink := newMockSink()
	d := NewDispatcher(testComposer(&mockStore{}), []Sink{sink}, 4, zerolog.Nop())

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	d.NotifyExpense(context.Background(), testNotification())
	if got := len(d.queue); got != 0 {
		t.Errorf("queued = %d, want 0 after stop", got)
	}
}

func TestDispatcherStopIdempotent(t *testing.T) {
	d := NewDispatcher(testComposer(&mockStore{}), nil, 1, zerolog.Nop())
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("first Stop() error = %v", err)
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}

func TestNotionCommentSink(t *testing.T) {
	store := &mockStore{}
	sink := NewNotionCommentSink(store, "alert-page")

	if err := sink.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(store.comments) != 1 || store.comments[0] != "hello" {
		t.Errorf("comments = %q", store.comments)
	}
	if sink.Name() != "notion_comment" {
		t.Errorf("Name() = %q", sink.Name())
	}
}

func TestComposeError(t *testing.T) {
	store := &mockStore{queryErr: errors.New("boom")}
	if _, err := testComposer(store).Compose(context.Background(), testNotification()); err == nil {
		t.Fatal("Compose() error = nil, want query error")
	}
}
