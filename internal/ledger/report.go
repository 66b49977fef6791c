package ledger

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Result is a response variant that knows its own plain-text rendering. The
// JSON rendering is the struct itself; the plain rendering is a fixed,
// per-variant choice instead of field sniffing.
type Result interface {
	PlainText() string
}

// AckResult acknowledges an operation with no payload.
type AckResult struct {
	Success bool `json:"success"`
}

func (r AckResult) PlainText() string {
	if r.Success {
		return "success"
	}
	return "failed"
}

// ErrorResult carries a failed operation's message.
type ErrorResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResult wraps an error into the uniform failure shape.
func NewErrorResult(err error) ErrorResult {
	return ErrorResult{Success: false, Error: err.Error()}
}

func (r ErrorResult) PlainText() string {
	if r.Error == "" {
		return "failed"
	}
	return "failed: " + r.Error
}

// MessageResult acknowledges an operation with a human-readable note.
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r MessageResult) PlainText() string {
	if r.Success {
		return "success"
	}
	return "failed"
}

// ExpenseResult carries a card's current running total.
type ExpenseResult struct {
	Success bool  `json:"success"`
	Expense int64 `json:"expense"`
}

func (r ExpenseResult) PlainText() string {
	return strconv.FormatInt(r.Expense, 10)
}

// PerformanceResult carries a card's prior-cycle target in both stored and
// parsed form.
type PerformanceResult struct {
	Success                  bool   `json:"success"`
	FormattedLastPerformance string `json:"formattedLastPerformance"`
	LastPerformance          int64  `json:"lastPerformance"`
}

func (r PerformanceResult) PlainText() string {
	return r.FormattedLastPerformance
}

// StatusCheckResult carries the full achievement state of one card.
type StatusCheckResult struct {
	Success        bool   `json:"success"`
	Status         string `json:"status"`
	IsAchieved     bool   `json:"isAchieved"`
	LastMonth      int64  `json:"lastMonth"`
	CurrentExpense int64  `json:"currentExpense"`
	Remaining      int64  `json:"remaining"`
}

// NewStatusCheckResult builds the check variant from a computed status.
func NewStatusCheckResult(s *Status) StatusCheckResult {
	return StatusCheckResult{
		Success:        true,
		Status:         s.Label,
		IsAchieved:     s.Achieved,
		LastMonth:      s.LastMonth,
		CurrentExpense: s.CurrentExpense,
		Remaining:      s.Remaining,
	}
}

func (r StatusCheckResult) PlainText() string {
	return r.Status
}

// RemainingResult carries the clamped amount still owed toward the target.
type RemainingResult struct {
	Success            bool   `json:"success"`
	Remaining          int64  `json:"remaining"`
	FormattedRemaining string `json:"formattedRemaining"`
}

// NewRemainingResult builds the remaining variant from a computed status.
func NewRemainingResult(s *Status) RemainingResult {
	owed := s.Owed()
	return RemainingResult{
		Success:            true,
		Remaining:          owed,
		FormattedRemaining: FormatWon(owed),
	}
}

func (r RemainingResult) PlainText() string {
	return r.FormattedRemaining
}

// CardStatusView is the JSON shape of one card's status.
type CardStatusView struct {
	CardID          string `json:"cardId,omitempty"`
	CardName        string `json:"cardName"`
	CurrentExpense  int64  `json:"currentExpense"`
	LastMonthText   string `json:"lastMonthText"`
	LastMonthAmount int64  `json:"lastMonthAmount"`
	Status          string `json:"status"`
	Remaining       int64  `json:"remaining"`
	StatusText      string `json:"statusText"`
}

// CardStatusResult carries one card's status with its rendered line.
type CardStatusResult struct {
	Success bool `json:"success"`
	CardStatusView
}

// NewCardStatusResult builds the single-card variant from a computed status.
func NewCardStatusResult(s *Status) CardStatusResult {
	return CardStatusResult{
		Success: true,
		CardStatusView: CardStatusView{
			CardName:        s.CardName,
			CurrentExpense:  s.CurrentExpense,
			LastMonthText:   s.LastMonthText,
			LastMonthAmount: s.LastMonth,
			Status:          s.Label,
			Remaining:       s.Owed(),
			StatusText:      s.StatusText(),
		},
	}
}

func (r CardStatusResult) PlainText() string {
	return r.StatusText
}

// AllCardStatusResult carries every card's status plus the spend total.
type AllCardStatusResult struct {
	Success               bool             `json:"success"`
	CardStatuses          []CardStatusView `json:"cardStatuses"`
	TotalExpense          int64            `json:"totalExpense"`
	FormattedTotalExpense string           `json:"formattedTotalExpense"`
}

// NewAllCardStatusResult builds the aggregate variant. The rendered lines
// use the multi-card emoji prefix.
func NewAllCardStatusResult(all *AllStatuses) AllCardStatusResult {
	views := make([]CardStatusView, 0, len(all.Statuses))
	for _, s := range all.Statuses {
		views = append(views, CardStatusView{
			CardID:          s.CardID,
			CardName:        s.CardName,
			CurrentExpense:  s.CurrentExpense,
			LastMonthText:   s.LastMonthText,
			LastMonthAmount: s.LastMonth,
			Status:          s.Label,
			Remaining:       s.Owed(),
			StatusText:      s.StatusTextEmoji(),
		})
	}
	return AllCardStatusResult{
		Success:               true,
		CardStatuses:          views,
		TotalExpense:          all.TotalExpense,
		FormattedTotalExpense: FormatWon(all.TotalExpense),
	}
}

func (r AllCardStatusResult) PlainText() string {
	var b strings.Builder
	for i, view := range r.CardStatuses {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(view.StatusText)
	}
	b.WriteString("\n-------------")
	b.WriteString("\n✳️ 합계 : " + FormatWon(r.TotalExpense))
	return b.String()
}

// AddExpenseResult carries a newly recorded transaction's page ID.
type AddExpenseResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PageID  string `json:"pageId"`
}

func (r AddExpenseResult) PlainText() string {
	return r.PageID
}

// PageIDResult carries a page ID extracted from a Notion URL.
type PageIDResult struct {
	Success bool   `json:"success"`
	PageID  string `json:"pageId"`
}

func (r PageIDResult) PlainText() string {
	return r.PageID
}

// MonthPageResult carries the link to a monthly aggregate page.
type MonthPageResult struct {
	Success    bool   `json:"success"`
	PageURL    string `json:"pageUrl"`
	MonthTitle string `json:"monthTitle"`
	YearMonth  string `json:"yearmonth"`
}

func (r MonthPageResult) PlainText() string {
	return r.PageURL
}

// PropertyResult carries one typed page-property payload.
type PropertyResult struct {
	Success bool        `json:"success"`
	Type    string      `json:"type"`
	Value   interface{} `json:"value"`
}

func (r PropertyResult) PlainText() string {
	switch r.Type {
	case "number":
		if f, ok := r.Value.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case "checkbox":
		if v, ok := r.Value.(bool); ok {
			return strconv.FormatBool(v)
		}
	case "rich_text", "title":
		if s, ok := r.Value.(string); ok {
			return s
		}
	}
	raw, err := json.Marshal(r.Value)
	if err != nil {
		return ""
	}
	return string(raw)
}
