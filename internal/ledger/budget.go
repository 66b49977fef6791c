package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/codenuga/ledger-api/internal/notion"
)

// MonthlyBudget is the current month's budget picture, assembled from the
// monthly aggregate page and the extra-expense rows of the expense database.
type MonthlyBudget struct {
	ExtraExpense  int64
	Budget        int64
	BudgetBalance int64
	Income        int64
	Expense       int64
	Balance       int64
}

// BudgetReporter reads the monthly budget figures used in expense
// notifications.
type BudgetReporter struct {
	store     notion.Store
	periods   *PeriodResolver
	expenseDB string
}

// NewBudgetReporter creates a budget reporter against the expense database.
func NewBudgetReporter(store notion.Store, periods *PeriodResolver, expenseDBID string) *BudgetReporter {
	return &BudgetReporter{
		store:     store,
		periods:   periods,
		expenseDB: expenseDBID,
	}
}

// Snapshot resolves the month page for the given time and assembles the
// budget figures. Income and expense projections are rollups on the month
// page, the balance is a formula, and the extra-expense sum is computed from
// the expense rows.
func (b *BudgetReporter) Snapshot(ctx context.Context, now time.Time) (*MonthlyBudget, error) {
	monthID, err := b.periods.ResolveCurrent(ctx, now)
	if err != nil {
		return nil, err
	}

	page, err := b.store.GetPage(ctx, monthID)
	if err != nil {
		return nil, fmt.Errorf("get month page: %w", err)
	}

	income, _ := notion.RollupNumber(page.Properties, propMonthIncome)
	expense, _ := notion.RollupNumber(page.Properties, propMonthExpense)
	balance, _ := notion.FormulaNumber(page.Properties, propMonthBalance)
	budget, _ := notion.NumberValue(page.Properties, propMonthBudget)

	extra, err := b.extraExpenseSum(ctx, monthID)
	if err != nil {
		return nil, err
	}

	return &MonthlyBudget{
		ExtraExpense:  extra,
		Budget:        int64(budget),
		BudgetBalance: int64(budget) - extra,
		Income:        int64(income),
		Expense:       int64(expense),
		Balance:       int64(balance),
	}, nil
}

// extraExpenseSum totals the non-fixed expense rows linked to the month
// page. Handles pagination automatically.
func (b *BudgetReporter) extraExpenseSum(ctx context.Context, monthID string) (int64, error) {
	var sum int64
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
			Filter: notionapi.AndCompoundFilter{
				notionapi.PropertyFilter{
					Property: propKind,
					Select: &notionapi.SelectFilterCondition{
						Equals: kindExpense,
					},
				},
				notionapi.PropertyFilter{
					Property: propFixedExpense,
					Checkbox: &notionapi.CheckboxFilterCondition{
						DoesNotEqual: true,
					},
				},
				notionapi.PropertyFilter{
					Property: propMonthRelation,
					Relation: &notionapi.RelationFilterCondition{
						Contains: monthID,
					},
				},
			},
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := b.store.QueryDatabase(ctx, b.expenseDB, req)
		if err != nil {
			return 0, fmt.Errorf("query expense database: %w", err)
		}

		for _, page := range resp.Results {
			amount, _ := notion.NumberValue(page.Properties, propAmount)
			sum += int64(amount)
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return sum, nil
}
