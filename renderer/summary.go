package renderer

import (
	"bytes"
	"fmt"
	"io"

	cashflowr "github.com/JulianVillete/Cashflowr"
	md "github.com/nao1215/markdown"
)

// Summary is everything the summary report displays.
type Summary struct {
	Identity          string
	ReportingCurrency string
	Income            cashflowr.Money
	Expense           cashflowr.Money
	Balance           cashflowr.Money
	Transactions      int
	Rates             *cashflowr.RateSnapshot
	Progress          cashflowr.GoalProgress
	HasGoal           bool
}

// SummaryMarkdown renders the financial summary report.
func SummaryMarkdown(s Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Financial Summary (%s)", s.ReportingCurrency))
	if s.Identity != "" {
		doc.PlainText(fmt.Sprintf("Ledger: %s", s.Identity))
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Balance"), md.Bold(s.Balance.String())},
		Rows: [][]string{
			{"Total Income", s.Income.String()},
			{"Total Expenses", s.Expense.String()},
			{"Transactions", fmt.Sprintf("%d", s.Transactions)},
		},
	})
	doc.Build()

	ConditionalBlock(&buf, func(w io.Writer) bool {
		if !s.HasGoal {
			return false
		}
		io.WriteString(w, GoalMarkdown(s.Progress))
		return true
	})

	ConditionalBlock(&buf, func(w io.Writer) bool {
		if s.Rates == nil {
			return false
		}
		fmt.Fprintf(w, "\nRates as of %s. Missing rates fall back to face value.\n",
			s.Rates.FetchedAt.Format("2006-01-02 15:04"))
		return true
	})

	return buf.String()
}

// GoalMarkdown renders the savings goal progress with a text progress bar.
func GoalMarkdown(p cashflowr.GoalProgress) string {
	var b bytes.Buffer
	fmt.Fprint(&b, "\n## Savings Goal\n\n")
	fmt.Fprintf(&b, "%s of %s (%s)\n\n", p.Saved, p.Goal, p.Percent)
	fmt.Fprintf(&b, "`%s`\n", progressBar(float64(p.Percent), 30))
	if p.Achieved {
		fmt.Fprint(&b, "\n🎉 Goal achieved, congratulations!\n")
	} else {
		fmt.Fprintf(&b, "\n%s to go.\n", p.Remaining)
	}
	return b.String()
}

// progressBar renders percent as a fixed-width bar of filled and empty cells.
func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
