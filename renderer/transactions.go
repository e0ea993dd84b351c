package renderer

import (
	"bytes"
	"fmt"

	cashflowr "github.com/JulianVillete/Cashflowr"
	md "github.com/nao1215/markdown"
)

// Transaction renders a single transaction as a one-line description.
func Transaction(tx cashflowr.Transaction) string {
	switch tx.Type {
	case cashflowr.Income:
		return fmt.Sprintf("Received %s for %s", tx.Money(), tx.Description)
	case cashflowr.Expense:
		return fmt.Sprintf("Spent %s on %s (%s)", tx.Money(), tx.Description, cashflowr.CategoryName(tx.Category))
	default:
		return tx.Description
	}
}

// TransactionsMarkdown renders a transaction listing, one row per record.
func TransactionsMarkdown(txs []cashflowr.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions match.")
		doc.Build()
		return buf.String()
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		category := ""
		if tx.Type == cashflowr.Expense {
			category = cashflowr.CategoryName(tx.Category)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", tx.ID),
			tx.Date.Format("2006-01-02"),
			tx.Description,
			string(tx.Type),
			category,
			tx.Money().String(),
		})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight,
		},
		Header: []string{"ID", "Date", "Description", "Type", "Category", "Amount"},
		Rows:   rows,
	})
	doc.Build()
	return buf.String()
}

// RatesMarkdown renders the cached exchange-rate snapshot.
func RatesMarkdown(snap *cashflowr.RateSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Exchange Rates")
	if snap == nil {
		doc.PlainText("No rates fetched yet. Conversions fall back to face value.")
		doc.Build()
		return buf.String()
	}

	rows := make([][]string, 0, len(snap.Rates))
	for _, code := range cashflowr.Currencies() {
		rate, ok := snap.Rate(code)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s (%s)", code, cashflowr.NameOf(code)),
			rate.String(),
		})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", fmt.Sprintf("Per %s", cashflowr.PivotCurrency)},
		Rows:      rows,
	})
	doc.PlainText(fmt.Sprintf("Fetched at %s.", snap.FetchedAt.Format("2006-01-02 15:04")))
	doc.Build()
	return buf.String()
}
