package cashflowr

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type is a typed string for the direction of a transaction's flow.
type Type string

// Flow directions a transaction can have.
const (
	Income  Type = "income"
	Expense Type = "expense"
)

// ParseType parses a string into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is the atomic ledger record. Amount is always positive and
// expressed in Currency; the direction of the flow is carried by Type.
// Amount, Type and Currency are immutable once recorded: conversion happens
// at read time and never mutates the stored amount.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Category    string          `json:"category,omitempty"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
}

// NewTransaction builds an unvalidated transaction dated now. The ID is
// assigned by the ledger on Add.
func NewTransaction(desc string, amount decimal.Decimal, typ Type, category, currency string) Transaction {
	return Transaction{
		Description: desc,
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Currency:    currency,
		Date:        time.Now(),
	}
}

// ValidationError reports a malformed transaction. It is recoverable: the
// record is skipped and the caller receives the reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid transaction: " + e.Reason }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a transaction for correctness and applies quick fixes
// where applicable (zero date becomes now, empty currency becomes the
// default). It returns the validated (and potentially modified) transaction
// or a *ValidationError.
func (t Transaction) Validate() (Transaction, error) {
	if strings.TrimSpace(t.Description) == "" {
		return t, validationErrorf("description is missing")
	}
	if !t.Amount.IsPositive() {
		return t, validationErrorf("amount must be positive, got %s", t.Amount)
	}
	if t.Type != Income && t.Type != Expense {
		return t, validationErrorf("type must be %q or %q, got %q", Income, Expense, t.Type)
	}
	if t.Currency == "" {
		t.Currency = DefaultCurrency
	}
	if !KnownCurrency(t.Currency) {
		return t, validationErrorf("unknown currency %q", t.Currency)
	}
	if t.Type == Expense && t.Category == "" {
		t.Category = "other-expense"
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	return t, nil
}

// Money returns the transaction amount paired with its currency.
func (t Transaction) Money() Money {
	return M(t.Amount, t.Currency)
}

// Equal reports whether two transactions carry the same data, ignoring IDs.
func (t Transaction) Equal(o Transaction) bool {
	return t.Description == o.Description &&
		t.Amount.Equal(o.Amount) &&
		t.Type == o.Type &&
		t.Category == o.Category &&
		t.Currency == o.Currency &&
		t.Date.Equal(o.Date)
}
