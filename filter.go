package cashflowr

import (
	"fmt"
	"time"
)

// Window is a relative date window for filtering, evaluated against "now"
// at call time, never stored.
type Window string

// Supported date windows.
const (
	WindowAll       Window = ""
	WindowToday     Window = "today"
	WindowThisWeek  Window = "this_week"
	WindowThisMonth Window = "this_month"
	WindowThisYear  Window = "this_year"
)

// ParseWindow parses a string into a Window. Short aliases (week, month,
// year) are accepted.
func ParseWindow(s string) (Window, error) {
	switch s {
	case "":
		return WindowAll, nil
	case "today":
		return WindowToday, nil
	case "week", "this_week":
		return WindowThisWeek, nil
	case "month", "this_month":
		return WindowThisMonth, nil
	case "year", "this_year":
		return WindowThisYear, nil
	default:
		return "", fmt.Errorf("unknown date window: %q", s)
	}
}

// contains reports whether t falls in the window relative to now.
// this_week is a trailing 7x24h window ending now, not calendar-aligned;
// the other windows are calendar-aligned to now's day, month or year.
func (w Window) contains(t, now time.Time) bool {
	switch w {
	case WindowAll:
		return true
	case WindowToday:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowThisWeek:
		weekAgo := now.Add(-7 * 24 * time.Hour)
		return !t.Before(weekAgo) && !t.After(now)
	case WindowThisMonth:
		return t.Month() == now.Month() && t.Year() == now.Year()
	case WindowThisYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}

// Criteria is a conjunctive set of optional transaction predicates. The zero
// value matches every transaction.
type Criteria struct {
	Type     Type   // empty matches both flows
	Category string // empty matches all categories
	Window   Window // empty matches all dates
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Type == "" && c.Category == "" && c.Window == WindowAll
}

// match applies all set criteria (AND) to a transaction at a given now.
func (c Criteria) match(tx Transaction, now time.Time) bool {
	if c.Type != "" && tx.Type != c.Type {
		return false
	}
	if c.Category != "" && tx.Category != c.Category {
		return false
	}
	return c.Window.contains(tx.Date, now)
}

// Filter returns the subset of transactions matching the criteria,
// preserving input order. It is a pure function over its inputs; date
// windows are evaluated against the current time.
func Filter(txs []Transaction, c Criteria) []Transaction {
	return filterAt(txs, c, time.Now())
}

func filterAt(txs []Transaction, c Criteria, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if c.match(tx, now) {
			out = append(out, tx)
		}
	}
	return out
}
