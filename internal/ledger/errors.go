package ledger

import (
	"fmt"
	"strings"
)

// UnknownPaymentMethodError is returned when an alias is not present in the
// payment directory at all.
type UnknownPaymentMethodError struct {
	Alias string
}

func (e *UnknownPaymentMethodError) Error() string {
	return fmt.Sprintf("unknown payment method %q", e.Alias)
}

// MissingFieldError is returned when a payment method exists in the
// configuration but one of its required fields is absent. Each field is
// validated independently so the message names the exact gap.
type MissingFieldError struct {
	Alias string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("payment method %q has no %s configured", e.Alias, e.Field)
}

// UnsupportedOperationError is returned when a status or performance
// operation is attempted on a payment method that is not a credit card.
type UnsupportedOperationError struct {
	Alias string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("payment method %q is not a credit card; performance operations require a credit card", e.Alias)
}

// InvalidPeriodTokenError is returned for year-month tokens that do not match
// the YYYY_MM shape. The token is rejected before any store access.
type InvalidPeriodTokenError struct {
	Token string
}

func (e *InvalidPeriodTokenError) Error() string {
	return fmt.Sprintf("invalid year-month token %q (expected YYYY_MM, e.g. 2024_03)", e.Token)
}

// PeriodNotFoundError is returned when no monthly aggregate page matches the
// resolved period title.
type PeriodNotFoundError struct {
	Title string
}

func (e *PeriodNotFoundError) Error() string {
	return fmt.Sprintf("no monthly page found for %s", e.Title)
}

// MissingRequiredFieldsError aggregates every required expense field that was
// absent from a request.
type MissingRequiredFieldsError struct {
	Fields []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
