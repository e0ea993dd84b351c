package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	cashflowr "github.com/JulianVillete/Cashflowr"
	"github.com/google/subcommands"
)

// --- Import Command ---

type importCmd struct {
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV or JSON file" }
func (*importCmd) Usage() string {
	return `import -format <csv|json> [<file>]

  Appends transactions from a file (or stdin) to your ledger. Valid records
  are appended and invalid ones are skipped and reported; only a file whose
  structure cannot be read is rejected as a whole. Imported records get fresh
  IDs.

  A JSON file may also carry a savings goal, a default currency and exchange
  rates; they are applied too.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "File format (csv, json)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := os.Stdin
	if f.NArg() > 0 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		in = file
	}

	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	var result cashflowr.ImportResult
	switch c.format {
	case "csv":
		result, err = cashflowr.ImportCSV(session.Ledger(), in, session.DefaultCurrency())
		if err != nil {
			return fail(err)
		}
	case "json":
		imported, err := cashflowr.ImportJSON(session.Ledger(), in)
		if err != nil {
			return fail(err)
		}
		result = imported.ImportResult
		if imported.DefaultCurrency != "" {
			if err := session.SetDefaultCurrency(imported.DefaultCurrency); err != nil {
				fmt.Fprintf(os.Stderr, "Ignoring imported default currency: %v\n", err)
			}
		}
		if imported.Rates != nil {
			session.RestoreRates(imported.Rates)
			if err := cashflowr.SaveRates(dataDir(), imported.Rates); err != nil {
				fmt.Fprintf(os.Stderr, "Could not persist imported rates: %v\n", err)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q, want csv or json.\n", c.format)
		return subcommands.ExitUsageError
	}

	if err := session.Save(); err != nil {
		return fail(err)
	}

	fmt.Printf("Imported %d transactions, skipped %d.\n", result.Added, result.Skipped())
	for _, recordErr := range result.Errors {
		fmt.Fprintln(os.Stderr, " -", recordErr)
	}
	return subcommands.ExitSuccess
}

// --- Export Command ---

type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export your data as CSV or JSON" }
func (*exportCmd) Usage() string {
	return `export -format <csv|json> [-o <file>]

  Writes your transactions to a file (or stdout). CSV carries only the
  transactions; JSON is a full backup including the savings goal, default
  currency and cached rates.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Output format (csv, json)")
	f.StringVar(&c.output, "o", "", "Output file; stdout when omitted")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var out io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		out = file
	}

	session, err := openSession()
	if err != nil {
		return fail(err)
	}

	switch c.format {
	case "csv":
		err = cashflowr.ExportCSV(out, session.Ledger())
	case "json":
		err = cashflowr.ExportJSON(out, session.Ledger(), session.DefaultCurrency(), session.Snapshot())
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q, want csv or json.\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail(err)
	}

	if c.output != "" {
		fmt.Printf("Exported %d transactions to %s.\n", session.Ledger().Len(), c.output)
	}
	return subcommands.ExitSuccess
}
