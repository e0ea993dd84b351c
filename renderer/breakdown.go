package renderer

import (
	"bytes"
	"fmt"

	cashflowr "github.com/JulianVillete/Cashflowr"
	md "github.com/nao1215/markdown"
)

// BreakdownMarkdown renders the expense-by-category breakdown, largest
// category first, with each category's share of the total.
func BreakdownMarkdown(breakdown []cashflowr.CategoryTotal, total cashflowr.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Expenses by Category")
	if len(breakdown) == 0 {
		doc.PlainText("No expenses recorded yet.")
		doc.Build()
		return buf.String()
	}

	rows := make([][]string, 0, len(breakdown))
	for _, ct := range breakdown {
		rows = append(rows, []string{
			cashflowr.CategoryName(ct.Category),
			ct.Total.String(),
			share(ct.Total, total).String(),
		})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Category", "Total", "Share"},
		Rows:      rows,
	})
	doc.PlainText(fmt.Sprintf("Total: %s", total.String()))
	doc.Build()
	return buf.String()
}

// share returns the part's percentage of the whole, or zero for an empty whole.
func share(part, whole cashflowr.Money) cashflowr.Percent {
	if !whole.Amount().IsPositive() {
		return 0
	}
	return cashflowr.Percent(part.Amount().Div(whole.Amount()).InexactFloat64() * 100)
}
