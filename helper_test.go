package cashflowr

import (
	"time"

	"github.com/shopspring/decimal"
)

// PHP is a helper for tests to create peso money from const.
func PHP(v float64) Money { return M(v, "PHP") }

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for tests to create euro money from const.
func EUR(v float64) Money { return M(v, "EUR") }

// d is a helper for tests to build exact decimals from string literals.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testSnapshot returns a full USD-pivot snapshot with plausible rates.
func testSnapshot() *RateSnapshot {
	return &RateSnapshot{
		Rates: map[string]decimal.Decimal{
			"USD": d("1"),
			"PHP": d("56"),
			"EUR": d("0.92"),
			"JPY": d("150"),
		},
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tx is a helper for tests to build a validated-shape transaction.
func tx(id int64, desc string, amount string, typ Type, category, currency string, date time.Time) Transaction {
	return Transaction{
		ID:          id,
		Description: desc,
		Amount:      d(amount),
		Type:        typ,
		Category:    category,
		Currency:    currency,
		Date:        date,
	}
}
