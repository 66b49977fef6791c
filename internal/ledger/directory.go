package ledger

import (
	"sort"
	"strings"

	"github.com/codenuga/ledger-api/internal/config"
)

// TypeCreditCard marks payment methods eligible for the performance and
// status operations.
const TypeCreditCard = "credit_card"

// PaymentMethod is one resolved entry of the payment directory.
type PaymentMethod struct {
	Alias  string
	Name   string
	PageID string
	Type   string
}

// IsCreditCard reports whether performance operations apply to this method.
func (m PaymentMethod) IsCreditCard() bool {
	return m.Type == TypeCreditCard
}

// Directory resolves payment-method aliases to their backing Notion pages.
// It is built once from configuration at startup and never mutated, so it is
// safe for unlimited concurrent use.
type Directory struct {
	entries map[string]config.PaymentEntry
}

// NewDirectory builds a directory from the configured payment map. Aliases
// are lower-cased for case-insensitive lookup.
func NewDirectory(payment map[string]config.PaymentEntry) *Directory {
	entries := make(map[string]config.PaymentEntry, len(payment))
	for alias, entry := range payment {
		entries[strings.ToLower(alias)] = entry
	}
	return &Directory{entries: entries}
}

func (d *Directory) entry(alias string) (config.PaymentEntry, error) {
	entry, ok := d.entries[strings.ToLower(alias)]
	if !ok {
		return config.PaymentEntry{}, &UnknownPaymentMethodError{Alias: alias}
	}
	return entry, nil
}

// PageID returns the backing-page reference for the alias.
func (d *Directory) PageID(alias string) (string, error) {
	entry, err := d.entry(alias)
	if err != nil {
		return "", err
	}
	if entry.PageID == "" {
		return "", &MissingFieldError{Alias: alias, Field: "page_id"}
	}
	return entry.PageID, nil
}

// Name returns the display name for the alias.
func (d *Directory) Name(alias string) (string, error) {
	entry, err := d.entry(alias)
	if err != nil {
		return "", err
	}
	if entry.Name == "" {
		return "", &MissingFieldError{Alias: alias, Field: "name"}
	}
	return entry.Name, nil
}

// Type returns the payment-method category for the alias.
func (d *Directory) Type(alias string) (string, error) {
	entry, err := d.entry(alias)
	if err != nil {
		return "", err
	}
	if entry.Type == "" {
		return "", &MissingFieldError{Alias: alias, Field: "type"}
	}
	return entry.Type, nil
}

// Resolve returns the fully validated payment method for the alias. Each
// required field is checked independently.
func (d *Directory) Resolve(alias string) (PaymentMethod, error) {
	pageID, err := d.PageID(alias)
	if err != nil {
		return PaymentMethod{}, err
	}
	name, err := d.Name(alias)
	if err != nil {
		return PaymentMethod{}, err
	}
	typ, err := d.Type(alias)
	if err != nil {
		return PaymentMethod{}, err
	}

	return PaymentMethod{
		Alias:  strings.ToUpper(alias),
		Name:   name,
		PageID: pageID,
		Type:   typ,
	}, nil
}

// CreditCards returns the aliases of every credit-card method, upper-cased
// and sorted for deterministic iteration.
func (d *Directory) CreditCards() []string {
	var aliases []string
	for alias, entry := range d.entries {
		if entry.Type == TypeCreditCard {
			aliases = append(aliases, strings.ToUpper(alias))
		}
	}
	sort.Strings(aliases)
	return aliases
}

// Aliases returns every configured alias, upper-cased and sorted.
func (d *Directory) Aliases() []string {
	aliases := make([]string, 0, len(d.entries))
	for alias := range d.entries {
		aliases = append(aliases, strings.ToUpper(alias))
	}
	sort.Strings(aliases)
	return aliases
}
