// Package notify builds and delivers expense notifications. A recorded
// transaction is summarized together with the month's budget picture and
// pushed to every configured sink through an asynchronous dispatcher.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codenuga/ledger-api/internal/ledger"
)

// Sink delivers a rendered notification message to one destination.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Send delivers the message. Errors are retried by the dispatcher.
	Send(ctx context.Context, message string) error
}

// Composer renders one transaction plus the current budget figures into the
// notification message.
type Composer struct {
	budget *ledger.BudgetReporter
}

// NewComposer creates a composer backed by the given budget reporter.
func NewComposer(budget *ledger.BudgetReporter) *Composer {
	return &Composer{budget: budget}
}

// Compose reads the month's budget snapshot and renders the full message.
// The snapshot read happens at delivery time, so the figures include the
// transaction that triggered the notification.
func (c *Composer) Compose(ctx context.Context, n ledger.ExpenseNotification) (string, error) {
	budget, err := c.budget.Snapshot(ctx, n.RecordedAt)
	if err != nil {
		return "", fmt.Errorf("budget snapshot: %w", err)
	}
	return BuildMessage(n, budget), nil
}

// BuildMessage renders the notification text for one transaction and the
// month's budget figures.
func BuildMessage(n ledger.ExpenseNotification, budget *ledger.MonthlyBudget) string {
	detail := n.Category + "/" + n.Title
	if n.Note != "" {
		detail += " (" + n.Note + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔔 [%s]의 지출내역 추가\n", n.Payer)
	fmt.Fprintf(&b, "💬 지출내역 : %s\n", detail)
	fmt.Fprintf(&b, "💸 지출금액 : %s\n", ledger.FormatWon(n.Amount))
	fmt.Fprintf(&b, "📅 지출일시 : %s\n", n.RecordedAt.Format("2006-01-02 15:04"))
	b.WriteString("-------------------------------\n")
	fmt.Fprintf(&b, "#️⃣ 추가지출 합계 : %s\n", ledger.FormatWon(budget.ExtraExpense))
	fmt.Fprintf(&b, "⏸️ 추가지출 예산잔액 : %s 중 %s\n", ledger.FormatWon(budget.Budget), ledger.FormatWon(budget.BudgetBalance))
	b.WriteString("-------------------------------\n")
	fmt.Fprintf(&b, "➕ 금월 수입 예상 : %s\n", ledger.FormatWon(budget.Income))
	fmt.Fprintf(&b, "➖ 금월 지출 예상 : %s\n", ledger.FormatWon(budget.Expense))
	fmt.Fprintf(&b, "🟰 금월 잔액 예상 : %s", ledger.FormatWon(budget.Balance))
	return b.String()
}

// delivery is one queued notification awaiting dispatch.
type delivery struct {
	notification ledger.ExpenseNotification
	enqueuedAt   time.Time
}
