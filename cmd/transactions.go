package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	cashflowr "github.com/JulianVillete/Cashflowr"
	"github.com/JulianVillete/Cashflowr/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// --- Add Command ---

type addCmd struct {
	typ      string
	desc     string
	amount   string
	category string
	currency string
	date     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or an expense" }
func (*addCmd) Usage() string {
	return `add -type <income|expense> -desc <description> -amount <amount> [-category <category>] [-currency <code>] [-d <date>]

  Records a transaction. The amount is always positive; -type carries the
  direction. Expenses without a category land in other-expense.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "expense", "Transaction type (income, expense)")
	f.StringVar(&c.desc, "desc", "", "Description of the transaction")
	f.StringVar(&c.amount, "amount", "", "Amount, always positive")
	f.StringVar(&c.category, "category", "", "Expense category")
	f.StringVar(&c.currency, "currency", "", "Currency code; defaults to your default currency")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD); defaults to now")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.desc == "" || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	typ, err := cashflowr.ParseType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}

	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	currency := c.currency
	if currency == "" {
		currency = session.DefaultCurrency()
	}
	tx := cashflowr.NewTransaction(c.desc, amount, typ, c.category, currency)
	if c.date != "" {
		day, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.Date = day
	}

	recorded, err := session.Ledger().Add(tx)
	if err != nil {
		return fail(err)
	}
	if err := session.Save(); err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded #%d: %s\n", recorded.ID, renderer.Transaction(recorded))
	return subcommands.ExitSuccess
}

// --- Delete Command ---

type deleteCmd struct {
	id int64
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a transaction by its ID" }
func (*deleteCmd) Usage() string {
	return `delete -id <id>

  Removes a transaction. Removing an ID that does not exist is a no-op.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "ID of the transaction to remove (see list)")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	tx, found := session.Ledger().Get(c.id)
	session.Ledger().Remove(c.id)
	if err := session.Save(); err != nil {
		return fail(err)
	}

	if found {
		fmt.Printf("Removed #%d: %s\n", tx.ID, renderer.Transaction(tx))
	} else {
		fmt.Printf("No transaction #%d; nothing removed.\n", c.id)
	}
	return subcommands.ExitSuccess
}

// --- List Command ---

type listCmd struct {
	typ      string
	category string
	window   string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions, optionally filtered" }
func (*listCmd) Usage() string {
	return `list [-type <income|expense>] [-category <category>] [-window <today|this_week|this_month|this_year>]

  Lists transactions in recording order. Filters combine: a transaction must
  match all of them. this_week is the trailing seven days.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Only transactions of this type")
	f.StringVar(&c.category, "category", "", "Only expenses in this category")
	f.StringVar(&c.window, "window", "", "Only transactions in this time window")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var criteria cashflowr.Criteria
	if c.typ != "" {
		typ, err := cashflowr.ParseType(c.typ)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		criteria.Type = typ
	}
	if c.window != "" {
		window, err := cashflowr.ParseWindow(c.window)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		criteria.Window = window
	}
	criteria.Category = c.category

	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.TransactionsMarkdown(session.Filtered(criteria)))
	return subcommands.ExitSuccess
}
