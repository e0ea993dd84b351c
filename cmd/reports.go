package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	cashflowr "github.com/JulianVillete/Cashflowr"
	"github.com/JulianVillete/Cashflowr/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// --- Summary Command ---

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals, balance, and goal progress" }
func (*summaryCmd) Usage() string {
	return `summary

  Displays total income, total expenses and the balance in your reporting
  currency, plus savings goal progress when a goal is set.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.SummaryMarkdown(renderer.Summary{
		Identity:          session.Identity(),
		ReportingCurrency: session.DefaultCurrency(),
		Income:            session.TotalIncome(),
		Expense:           session.TotalExpense(),
		Balance:           session.Balance(),
		Transactions:      session.Ledger().Len(),
		Rates:             session.Snapshot(),
		Progress:          session.Progress(),
		HasGoal:           session.Ledger().Goal().IsSet(),
	}))
	return subcommands.ExitSuccess
}

// --- Breakdown Command ---

type breakdownCmd struct{}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "display expenses grouped by category" }
func (*breakdownCmd) Usage() string {
	return `breakdown

  Displays expense totals per category, largest first, in your reporting
  currency.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {}

func (c *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.BreakdownMarkdown(session.Breakdown(), session.TotalExpense()))
	return subcommands.ExitSuccess
}

// --- Goal Command ---

type goalCmd struct {
	amount string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "show or set the savings goal" }
func (*goalCmd) Usage() string {
	return `goal [-amount <amount>]

  Without -amount, shows the goal progress. With -amount, sets the goal in
  your current default currency, replacing any previous goal.
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "New goal amount, in your default currency")
}

func (c *goalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	if c.amount != "" {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
			return subcommands.ExitUsageError
		}
		if err := session.Ledger().SetGoal(amount, session.DefaultCurrency()); err != nil {
			return fail(err)
		}
		if err := session.Save(); err != nil {
			return fail(err)
		}
		fmt.Printf("Savings goal set to %s.\n", session.Ledger().Goal().Money())
	}

	if !session.Ledger().Goal().IsSet() {
		fmt.Println("No savings goal set. Set one with: goal -amount <amount>")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.GoalMarkdown(session.Progress()))
	return subcommands.ExitSuccess
}

// --- Currency Command ---

type currencyCmd struct{}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "show or switch the reporting currency" }
func (*currencyCmd) Usage() string {
	return `currency [<code>]

  Without an argument, lists the supported currencies and marks the current
  one. With a code, switches the reporting currency. Stored amounts are never
  changed; reports simply convert into the new currency.
`
}

func (c *currencyCmd) SetFlags(f *flag.FlagSet) {}

func (c *currencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	if f.NArg() == 0 {
		for _, code := range cashflowr.Currencies() {
			marker := " "
			if code == session.DefaultCurrency() {
				marker = "*"
			}
			fmt.Printf("%s %s  %s (%s)\n", marker, code, cashflowr.NameOf(code), cashflowr.SymbolOf(code))
		}
		return subcommands.ExitSuccess
	}

	if err := session.SetDefaultCurrency(f.Arg(0)); err != nil {
		return fail(err)
	}
	if err := session.Save(); err != nil {
		return fail(err)
	}
	fmt.Printf("Reporting currency is now %s.\n", session.DefaultCurrency())
	return subcommands.ExitSuccess
}

// --- Rates Command ---

type ratesCmd struct {
	refresh bool
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show or refresh the cached exchange rates" }
func (*ratesCmd) Usage() string {
	return `rates [-refresh]

  Shows the cached exchange-rate snapshot. With -refresh, fetches a fresh
  snapshot first; on failure the cached one is kept.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "Fetch a fresh snapshot before showing it")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	if c.refresh {
		if _, err := session.RefreshRates(ctx); err != nil {
			return fail(err)
		}
	}

	printMarkdown(renderer.RatesMarkdown(session.Snapshot()))
	return subcommands.ExitSuccess
}
