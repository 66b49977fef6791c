package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/codenuga/ledger-api/internal/logger"
	"github.com/codenuga/ledger-api/internal/notion"
)

// ExpenseNotification summarizes one recorded transaction for downstream
// notification sinks.
type ExpenseNotification struct {
	Title      string
	Category   string
	Amount     int64
	Payer      string
	Note       string
	RecordedAt time.Time
}

// ExpenseNotifier delivers transaction notifications. Implementations are
// fire-and-forget: a failing notifier never affects the recorder's result.
type ExpenseNotifier interface {
	NotifyExpense(ctx context.Context, n ExpenseNotification)
}

// ExpenseInput carries one transaction to record.
type ExpenseInput struct {
	Title     string
	Category  string
	Amount    int64
	Payer     string
	YearMonth string
	Card      string
	Note      string
	Date      string
}

// missingFields returns the request-field names of every absent required
// field, in a fixed order.
func (in ExpenseInput) missingFields() []string {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if in.Payer == "" {
		missing = append(missing, "payer")
	}
	if in.YearMonth == "" {
		missing = append(missing, "yearmonth")
	}
	if in.Card == "" {
		missing = append(missing, "cardId")
	}
	return missing
}

// Recorder appends transaction records and maintains the per-card running
// total.
type Recorder struct {
	store     notion.Store
	directory *Directory
	periods   *PeriodResolver
	expenseDB string
	notifier  ExpenseNotifier
	now       func() time.Time
}

// NewRecorder creates a transaction recorder. notifier may be nil to disable
// notifications.
func NewRecorder(store notion.Store, directory *Directory, periods *PeriodResolver, expenseDBID string, notifier ExpenseNotifier) *Recorder {
	return &Recorder{
		store:     store,
		directory: directory,
		periods:   periods,
		expenseDB: expenseDBID,
		notifier:  notifier,
		now:       time.Now,
	}
}

// AddExpense validates the input, creates the transaction page linked to the
// resolved month and payment method, and rolls the amount into the card's
// running total. The operation succeeds once the transaction page exists;
// the running-total update is best effort only. The two writes share no
// transaction boundary, so concurrent calls against one card can lose
// updates.
func (r *Recorder) AddExpense(ctx context.Context, in ExpenseInput) (string, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return "", &MissingRequiredFieldsError{Fields: missing}
	}

	monthID, err := r.periods.ResolveToken(ctx, in.YearMonth)
	if err != nil {
		return "", err
	}

	cardPageID, err := r.directory.PageID(in.Card)
	if err != nil {
		return "", err
	}
	cardType, err := r.directory.Type(in.Card)
	if err != nil {
		return "", err
	}

	props := notionapi.Properties{
		propDetail:          notion.TitleProp(in.Title),
		propKind:            notion.SelectProp(kindExpense),
		propCategory:        notion.SelectProp(in.Category),
		propAmount:          notion.NumberProp(float64(in.Amount)),
		propPayer:           notion.SelectProp(in.Payer),
		propMonthRelation:   notion.RelationProp(monthID),
		propPaymentRelation: notion.RelationProp(cardPageID),
	}
	if date, ok := ParseDottedDate(in.Date); ok {
		props[propTxDate] = notion.DateProp(date)
	}
	if in.Note != "" {
		props[propNote] = notion.RichTextProp(in.Note)
	}

	page, err := r.store.CreatePage(ctx, r.expenseDB, props)
	if err != nil {
		return "", fmt.Errorf("create expense page: %w", err)
	}

	if cardType == TypeCreditCard {
		r.rollUpRunningTotal(ctx, in.Card, cardPageID, in.Amount)
	}

	if r.notifier != nil {
		r.notifier.NotifyExpense(ctx, ExpenseNotification{
			Title:      in.Title,
			Category:   in.Category,
			Amount:     in.Amount,
			Payer:      in.Payer,
			Note:       in.Note,
			RecordedAt: r.now(),
		})
	}

	return string(page.ID), nil
}

// rollUpRunningTotal re-reads the card's running total and writes back the
// sum. Failures are logged and swallowed: the transaction page already
// exists and is never rolled back.
func (r *Recorder) rollUpRunningTotal(ctx context.Context, alias, cardPageID string, amount int64) {
	log := logger.FromContext(ctx)

	page, err := r.store.GetPage(ctx, cardPageID)
	if err != nil {
		log.Error().Err(err).Str("card", alias).Msg("Failed to read running total, card page left stale")
		return
	}

	current, _ := notion.NumberValue(page.Properties, propCurrentExpense)
	total := int64(current) + amount

	_, err = r.store.UpdatePage(ctx, cardPageID, notionapi.Properties{
		propCurrentExpense: notion.NumberProp(float64(total)),
	})
	if err != nil {
		log.Error().Err(err).Str("card", alias).Int64("total", total).Msg("Failed to update running total, card page left stale")
		return
	}

	log.Debug().Str("card", alias).Int64("total", total).Msg("Running total updated")
}

// SetCurrentExpense overwrites a payment method's running total with a
// caller-supplied value. Strings are coerced the same way the raw property
// endpoint coerces them.
func (r *Recorder) SetCurrentExpense(ctx context.Context, alias string, value interface{}) error {
	pageID, err := r.directory.PageID(alias)
	if err != nil {
		return err
	}

	prop := notion.CoerceValue(value)
	if prop == nil {
		return fmt.Errorf("unsupported value type %T", value)
	}

	if _, err := r.store.UpdatePage(ctx, pageID, notionapi.Properties{
		propCurrentExpense: prop,
	}); err != nil {
		return fmt.Errorf("update running total: %w", err)
	}
	return nil
}
