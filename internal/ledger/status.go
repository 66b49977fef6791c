package ledger

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/codenuga/ledger-api/internal/notion"
)

// Status labels, fixed by the workspace conventions.
const (
	StatusAchieved     = "충족"
	StatusInsufficient = "부족"
)

// Status is the derived achievement state of one credit card: current-period
// spend measured against the prior-cycle target.
type Status struct {
	CardID         string
	CardName       string
	LastMonthText  string
	LastMonth      int64
	CurrentExpense int64
	Achieved       bool
	Label          string
	Remaining      int64
}

// Owed clamps the signed remaining amount at zero for display.
func (s *Status) Owed() int64 {
	if s.Remaining < 0 {
		return 0
	}
	return s.Remaining
}

// StatusText renders the one-line card summary.
func (s *Status) StatusText() string {
	text := fmt.Sprintf("%s : %s원 / %s", s.CardName, FormatNumber(s.CurrentExpense), s.LastMonthText)
	if s.Achieved {
		return text + fmt.Sprintf(" (%s)", s.Label)
	}
	return text + fmt.Sprintf(" (%s, %s원 남음)", s.Label, FormatNumber(s.Owed()))
}

// StatusTextEmoji renders the card summary with the card marker used in
// multi-card reports.
func (s *Status) StatusTextEmoji() string {
	return "💳 " + s.StatusText()
}

// AllStatuses is the aggregate over every credit card.
type AllStatuses struct {
	Statuses     []*Status
	TotalExpense int64
}

// StatusEngine computes achievement state from the payment directory and the
// backing card pages.
type StatusEngine struct {
	directory *Directory
	store     notion.Store
}

// NewStatusEngine creates a status engine.
func NewStatusEngine(directory *Directory, store notion.Store) *StatusEngine {
	return &StatusEngine{
		directory: directory,
		store:     store,
	}
}

// CurrentExpense reads the running current-period spend of any payment
// method. Absent values default to 0.
func (e *StatusEngine) CurrentExpense(ctx context.Context, alias string) (int64, error) {
	pageID, err := e.directory.PageID(alias)
	if err != nil {
		return 0, err
	}

	page, err := e.store.GetPage(ctx, pageID)
	if err != nil {
		return 0, fmt.Errorf("get card page: %w", err)
	}

	current, _ := notion.NumberValue(page.Properties, propCurrentExpense)
	return int64(current), nil
}

// LastPerformance reads the prior-cycle target of a credit card, both as the
// stored localized text and as its parsed amount. Absent text defaults to "0".
func (e *StatusEngine) LastPerformance(ctx context.Context, alias string) (string, int64, error) {
	m, err := e.creditCard(alias)
	if err != nil {
		return "", 0, err
	}

	page, err := e.store.GetPage(ctx, m.PageID)
	if err != nil {
		return "", 0, fmt.Errorf("get card page: %w", err)
	}

	text, ok := notion.RichTextValue(page.Properties, propLastPerformance)
	if !ok {
		text = "0"
	}
	return text, ParseKoreanAmount(text), nil
}

// ComputeStatus resolves one credit card and derives its achievement state.
func (e *StatusEngine) ComputeStatus(ctx context.Context, alias string) (*Status, error) {
	m, err := e.creditCard(alias)
	if err != nil {
		return nil, err
	}

	page, err := e.store.GetPage(ctx, m.PageID)
	if err != nil {
		return nil, fmt.Errorf("get card page: %w", err)
	}

	lastText, ok := notion.RichTextValue(page.Properties, propLastPerformance)
	if !ok {
		lastText = "0"
	}
	last := ParseKoreanAmount(lastText)
	currentF, _ := notion.NumberValue(page.Properties, propCurrentExpense)
	current := int64(currentF)

	achieved := current >= last
	label := StatusInsufficient
	if achieved {
		label = StatusAchieved
	}

	return &Status{
		CardID:         m.Alias,
		CardName:       m.Name,
		LastMonthText:  lastText,
		LastMonth:      last,
		CurrentExpense: current,
		Achieved:       achieved,
		Label:          label,
		Remaining:      last - current,
	}, nil
}

// ComputeAll computes the status of every credit card and the total spend.
// Card reads fan out concurrently; the first failure aborts the whole
// aggregate.
func (e *StatusEngine) ComputeAll(ctx context.Context) (*AllStatuses, error) {
	aliases := e.directory.CreditCards()
	statuses := make([]*Status, len(aliases))

	g, gctx := errgroup.WithContext(ctx)
	for i, alias := range aliases {
		i, alias := i, alias
		g.Go(func() error {
			status, err := e.ComputeStatus(gctx, alias)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int64
	for _, status := range statuses {
		total += status.CurrentExpense
	}

	return &AllStatuses{
		Statuses:     statuses,
		TotalExpense: total,
	}, nil
}

func (e *StatusEngine) creditCard(alias string) (PaymentMethod, error) {
	m, err := e.directory.Resolve(alias)
	if err != nil {
		return PaymentMethod{}, err
	}
	if !m.IsCreditCard() {
		return PaymentMethod{}, &UnsupportedOperationError{Alias: alias}
	}
	return m, nil
}
