package cashflowr

import (
	"errors"
	"testing"
	"time"
)

func TestLedger_Add(t *testing.T) {
	l := NewLedger()

	recorded, err := l.Add(NewTransaction("salary", d("50000"), Income, "salary", "PHP"))
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if recorded.ID == 0 {
		t.Error("Add() did not assign an ID")
	}
	if l.Len() != 1 {
		t.Errorf("ledger has %d transactions, want 1", l.Len())
	}

	second, err := l.Add(NewTransaction("lunch", d("150"), Expense, "food", "PHP"))
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if second.ID <= recorded.ID {
		t.Errorf("IDs not monotonic: %d then %d", recorded.ID, second.ID)
	}
}

func TestLedger_AddQuickFixes(t *testing.T) {
	l := NewLedger()

	// empty currency becomes the default
	recorded, err := l.Add(NewTransaction("salary", d("100"), Income, "", ""))
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if recorded.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want default %q", recorded.Currency, DefaultCurrency)
	}

	// uncategorized expenses land in other-expense
	recorded, err = l.Add(NewTransaction("misc", d("10"), Expense, "", "PHP"))
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if recorded.Category != "other-expense" {
		t.Errorf("Category = %q, want %q", recorded.Category, "other-expense")
	}

	// zero date becomes now
	transaction := NewTransaction("backfill", d("10"), Income, "", "PHP")
	transaction.Date = time.Time{}
	recorded, err = l.Add(transaction)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if recorded.Date.IsZero() {
		t.Error("zero date was not defaulted")
	}
}

func TestLedger_AddRejections(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{"missing description", NewTransaction("  ", d("10"), Income, "", "PHP")},
		{"zero amount", NewTransaction("x", d("0"), Income, "", "PHP")},
		{"negative amount", NewTransaction("x", d("-5"), Expense, "food", "PHP")},
		{"unknown type", NewTransaction("x", d("10"), Type("transfer"), "", "PHP")},
		{"unknown currency", NewTransaction("x", d("10"), Income, "", "XAU")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			_, err := l.Add(tc.tx)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Add() error = %v, want a *ValidationError", err)
			}
			if l.Len() != 0 {
				t.Errorf("rejected transaction was appended, ledger has %d", l.Len())
			}
		})
	}
}

func TestLedger_RemoveAbsentIsNoOp(t *testing.T) {
	l := NewLedger()
	l.Add(NewTransaction("a", d("1"), Income, "", "PHP"))
	l.Add(NewTransaction("b", d("2"), Expense, "food", "PHP"))

	l.Remove(99999)
	if l.Len() != 2 {
		t.Errorf("removing an absent id changed the ledger: %d transactions", l.Len())
	}

	first, _ := l.Add(NewTransaction("c", d("3"), Income, "", "PHP"))
	l.Remove(first.ID)
	if l.Len() != 2 {
		t.Errorf("remove by id failed, ledger has %d transactions", l.Len())
	}
	if _, ok := l.Get(first.ID); ok {
		t.Errorf("transaction %d still present after Remove", first.ID)
	}
}

func TestLedger_BulkAppendPartialSuccess(t *testing.T) {
	l := NewLedger()
	l.Add(NewTransaction("existing", d("10"), Income, "", "PHP"))
	before := l.Len()

	batch := []Transaction{
		NewTransaction("ok one", d("100"), Income, "", "PHP"),
		NewTransaction("", d("100"), Income, "", "PHP"),          // invalid: no description
		NewTransaction("ok two", d("55"), Expense, "food", "PHP"),
		NewTransaction("bad", d("-3"), Expense, "food", "PHP"),   // invalid: negative
		NewTransaction("ok three", d("7"), Expense, "", "USD"),
	}

	res := l.BulkAppend(batch)
	if res.Added != 3 {
		t.Errorf("Added = %d, want 3", res.Added)
	}
	if len(res.Errors) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(res.Errors), res.Errors)
	}
	if l.Len() != before+3 {
		t.Errorf("ledger grew by %d, want exactly 3", l.Len()-before)
	}
	if res.Err() == nil {
		t.Error("Err() = nil, want joined errors")
	}

	// appended records got fresh, distinct IDs
	seen := make(map[int64]bool)
	for _, tr := range l.Transactions() {
		if tr.ID == 0 || seen[tr.ID] {
			t.Errorf("duplicate or zero ID %d", tr.ID)
		}
		seen[tr.ID] = true
	}
}

func TestLedger_Goal(t *testing.T) {
	l := NewLedger()
	if l.Goal().IsSet() {
		t.Error("fresh ledger has a goal set")
	}
	if err := l.SetGoal(d("500"), "PHP"); err != nil {
		t.Fatalf("SetGoal() error: %v", err)
	}
	// the goal is overwritten, not accumulated
	if err := l.SetGoal(d("800"), "USD"); err != nil {
		t.Fatalf("SetGoal() error: %v", err)
	}
	goal := l.Goal()
	if !goal.Amount.Equal(d("800")) || goal.Currency != "USD" {
		t.Errorf("Goal = %+v, want 800 USD", goal)
	}

	if err := l.SetGoal(d("0"), "PHP"); err == nil {
		t.Error("SetGoal(0) should fail")
	}
	if err := l.SetGoal(d("10"), "XAU"); err == nil {
		t.Error("SetGoal with unknown currency should fail")
	}
}

func TestLedger_Iterators(t *testing.T) {
	on := time.Now()
	l := NewLedger()
	l.Add(tx(0, "a", "1", Expense, "food", "PHP", on))
	l.Add(tx(0, "b", "2", Expense, "housing", "USD", on))
	l.Add(tx(0, "c", "3", Expense, "food", "PHP", on))
	l.Add(tx(0, "d", "4", Income, "salary", "EUR", on))

	var categories []string
	for c := range l.AllCategories() {
		categories = append(categories, c)
	}
	if len(categories) != 2 || categories[0] != "food" || categories[1] != "housing" {
		t.Errorf("AllCategories = %v, want [food housing]", categories)
	}

	var currencies []string
	for c := range l.AllCurrencies() {
		currencies = append(currencies, c)
	}
	if len(currencies) != 3 {
		t.Errorf("AllCurrencies = %v, want 3 distinct", currencies)
	}
}
