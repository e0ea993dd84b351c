package renderer

import (
	"strings"
	"testing"
	"time"

	cashflowr "github.com/JulianVillete/Cashflowr"
	"github.com/shopspring/decimal"
)

func php(v int64) cashflowr.Money { return cashflowr.M(v, "PHP") }

func TestSummaryMarkdown(t *testing.T) {
	out := SummaryMarkdown(Summary{
		ReportingCurrency: "PHP",
		Income:            php(50000),
		Expense:           php(13500),
		Balance:           php(36500),
		Transactions:      3,
	})

	for _, want := range []string{
		"# Financial Summary (PHP)",
		"Total Income",
		"Total Expenses",
		"Transactions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Savings Goal") {
		t.Error("goal section rendered without a goal")
	}
	if strings.Contains(out, "Rates as of") {
		t.Error("rates footer rendered without a snapshot")
	}
}

func TestSummaryMarkdown_GoalAndRates(t *testing.T) {
	snap := &cashflowr.RateSnapshot{
		Rates:     map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)},
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	out := SummaryMarkdown(Summary{
		ReportingCurrency: "PHP",
		Balance:           php(10000),
		Rates:             snap,
		HasGoal:           true,
		Progress: cashflowr.GoalProgress{
			Percent:   50,
			Saved:     php(10000),
			Goal:      php(20000),
			Remaining: php(10000),
		},
	})
	for _, want := range []string{"Savings Goal", "50.00%", "to go", "Rates as of 2025-06-01 12:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestGoalMarkdown_Celebration(t *testing.T) {
	out := GoalMarkdown(cashflowr.GoalProgress{
		Percent:   100,
		Saved:     php(25000),
		Goal:      php(20000),
		Remaining: php(0),
		Achieved:  true,
	})
	if !strings.Contains(out, "🎉") {
		t.Errorf("achieved goal missing celebration:\n%s", out)
	}
	if strings.Contains(out, "to go") {
		t.Errorf("achieved goal still shows a remainder:\n%s", out)
	}
}

func TestProgressBar(t *testing.T) {
	testCases := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10}, // clamped
		{-10, 0},  // clamped
	}
	for _, tc := range testCases {
		bar := progressBar(tc.percent, 10)
		if got := strings.Count(bar, "█"); got != tc.filled {
			t.Errorf("progressBar(%v) has %d filled cells, want %d", tc.percent, got, tc.filled)
		}
		if n := len([]rune(bar)); n != 10 {
			t.Errorf("progressBar(%v) is %d cells wide, want 10", tc.percent, n)
		}
	}
}

func TestBreakdownMarkdown(t *testing.T) {
	out := BreakdownMarkdown([]cashflowr.CategoryTotal{
		{Category: "housing", Total: php(12000)},
		{Category: "food", Total: php(4000)},
	}, php(16000))

	for _, want := range []string{"# Expenses by Category", "Housing", "Food & Dining", "75.00%", "25.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("breakdown missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Housing") > strings.Index(out, "Food & Dining") {
		t.Error("breakdown rows not in the given order")
	}
}

func TestBreakdownMarkdown_Empty(t *testing.T) {
	out := BreakdownMarkdown(nil, php(0))
	if !strings.Contains(out, "No expenses recorded yet.") {
		t.Errorf("empty breakdown:\n%s", out)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	on := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	txs := []cashflowr.Transaction{
		{ID: 1, Description: "Salary", Amount: decimal.NewFromInt(50000), Type: cashflowr.Income, Currency: "PHP", Date: on},
		{ID: 2, Description: "Rent", Amount: decimal.NewFromInt(12000), Type: cashflowr.Expense, Category: "housing", Currency: "PHP", Date: on},
	}
	out := TransactionsMarkdown(txs)
	for _, want := range []string{"2025-06-15", "Salary", "Rent", "Housing"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}

	if out := TransactionsMarkdown(nil); !strings.Contains(out, "No transactions match.") {
		t.Errorf("empty listing:\n%s", out)
	}
}

func TestTransaction(t *testing.T) {
	on := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	income := cashflowr.Transaction{Description: "Salary", Amount: decimal.NewFromInt(100), Type: cashflowr.Income, Currency: "USD", Date: on}
	if got := Transaction(income); !strings.Contains(got, "Received") || !strings.Contains(got, "Salary") {
		t.Errorf("Transaction(income) = %q", got)
	}
	expense := cashflowr.Transaction{Description: "Rent", Amount: decimal.NewFromInt(100), Type: cashflowr.Expense, Category: "housing", Currency: "USD", Date: on}
	if got := Transaction(expense); !strings.Contains(got, "Spent") || !strings.Contains(got, "Housing") {
		t.Errorf("Transaction(expense) = %q", got)
	}
}

func TestRatesMarkdown(t *testing.T) {
	snap := &cashflowr.RateSnapshot{
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"PHP": decimal.RequireFromString("56.04"),
		},
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	out := RatesMarkdown(snap)
	for _, want := range []string{"Philippine Peso", "56.04", "Per USD", "Fetched at 2025-06-01 12:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("rates missing %q:\n%s", want, out)
		}
	}

	if out := RatesMarkdown(nil); !strings.Contains(out, "No rates fetched yet") {
		t.Errorf("empty rates:\n%s", out)
	}
}
