package cashflowr

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// categoryNames maps expense category codes to display names.
var categoryNames = map[string]string{
	"food":           "Food & Dining",
	"transportation": "Transportation",
	"housing":        "Housing",
	"utilities":      "Utilities",
	"entertainment":  "Entertainment",
	"shopping":       "Shopping",
	"healthcare":     "Healthcare",
	"education":      "Education",
	"other-expense":  "Other Expense",
	"salary":         "Salary",
	"freelance":      "Freelance",
	"investment":     "Investment",
	"other-income":   "Other Income",
}

// CategoryName returns the display name for a category code, or the code
// itself when no name is registered.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return strings.ReplaceAll(code, "-", " ")
}

// TotalByType sums, in the target currency, the converted amounts of all
// transactions with the given flow type.
func TotalByType(txs []Transaction, typ Type, target string, snap *RateSnapshot) Money {
	total := M(decimal.Zero, target)
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		total = total.Add(Convert(tx.Money(), target, snap))
	}
	return total
}

// Balance returns income minus expense, in the target currency.
func Balance(txs []Transaction, target string, snap *RateSnapshot) Money {
	income := TotalByType(txs, Income, target, snap)
	expense := TotalByType(txs, Expense, target, snap)
	return income.Sub(expense)
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    Money
}

// CategoryBreakdown sums expenses per category in the target currency,
// sorted by total descending. Ties are broken lexically by category code so
// the order is deterministic.
func CategoryBreakdown(txs []Transaction, target string, snap *RateSnapshot) []CategoryTotal {
	totals := make(map[string]Money)
	for _, tx := range txs {
		if tx.Type != Expense {
			continue
		}
		category := tx.Category
		if category == "" {
			category = "other-expense"
		}
		converted := Convert(tx.Money(), target, snap)
		if prev, ok := totals[category]; ok {
			totals[category] = prev.Add(converted)
		} else {
			totals[category] = converted
		}
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Total.Amount().Cmp(a.Total.Amount()); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

// GoalProgress is the reconciliation of the savings goal against the running
// balance.
type GoalProgress struct {
	Percent   Percent
	Saved     Money // running balance, floored at zero
	Goal      Money // the goal, converted to the reporting currency
	Remaining Money // what is left to save, floored at zero
	Achieved  bool  // true once the goal is reached
}

// ProgressTowards reconciles a balance against the savings goal, in the
// balance's currency. The goal keeps the currency it was set in and is
// converted here; with no snapshot the conversion degrades to identity like
// everywhere else. An unset goal yields the zero state.
func ProgressTowards(balance Money, goal SavingsGoal, snap *RateSnapshot) GoalProgress {
	target := balance.Currency()
	zero := M(decimal.Zero, target)
	if !goal.IsSet() {
		return GoalProgress{Percent: 0, Saved: maxMoney(balance, zero), Goal: zero, Remaining: zero}
	}

	converted := Convert(goal.Money(), target, snap)
	ratio := balance.Amount().Div(converted.Amount())
	percent := Percent(ratio.InexactFloat64() * 100)
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return GoalProgress{
		Percent:   percent,
		Saved:     maxMoney(balance, zero),
		Goal:      converted,
		Remaining: maxMoney(converted.Sub(balance), zero),
		Achieved:  percent >= 100,
	}
}

func maxMoney(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
