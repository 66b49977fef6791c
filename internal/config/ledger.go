package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// PaymentEntry is one payment method in the ledger configuration file.
// Fields are validated at use time, matching the per-field error reporting
// of the payment directory.
type PaymentEntry struct {
	Name   string `yaml:"name"`
	PageID string `yaml:"page_id"`
	Type   string `yaml:"type"`
}

// DatabaseRef points at a Notion database.
type DatabaseRef struct {
	ID string `yaml:"id"`
}

// PageRef points at a Notion page.
type PageRef struct {
	ID string `yaml:"id"`
}

// Ledger mirrors the ledger YAML file: the payment-method directory plus the
// Notion databases and pages the service operates on.
type Ledger struct {
	Payment map[string]PaymentEntry `yaml:"payment"`

	Database struct {
		Expense        DatabaseRef `yaml:"expense"`
		MonthlyExpense DatabaseRef `yaml:"monthly_expense"`
	} `yaml:"database"`

	Page struct {
		ExpenseAlert PageRef `yaml:"expense_alert"`
	} `yaml:"page"`
}

// LoadLedger reads and parses the ledger configuration file.
func LoadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger config: %w", err)
	}
	return ParseLedger(data)
}

// ParseLedger parses ledger configuration from YAML bytes.
func ParseLedger(data []byte) (*Ledger, error) {
	var l Ledger
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse ledger config: %w", err)
	}
	return &l, nil
}

// Validate checks the parts of the ledger configuration that every request
// depends on. Per-entry payment fields are checked lazily by the directory.
func (l *Ledger) Validate() error {
	var errs []string

	if len(l.Payment) == 0 {
		errs = append(errs, "at least one payment method must be configured")
	}
	if l.Database.Expense.ID == "" {
		errs = append(errs, "database.expense.id is required")
	}
	if l.Database.MonthlyExpense.ID == "" {
		errs = append(errs, "database.monthly_expense.id is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("ledger config validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
