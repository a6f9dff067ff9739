package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerbook"
	"github.com/etnz/ledgerbook/date"
	"github.com/google/subcommands"
)

// newCmd holds the flags for the 'new' subcommand.
type newCmd struct {
	company string
	from    string
	to      string
	force   bool
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a new workbook" }
func (*newCmd) Usage() string {
	return `lbk new [-company <name>] [-from <date> -to <date>] [-force]

  Creates a workbook with one bank ledger (HSBC-USD) and every aggregate view.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.company, "company", "", "Company name")
	f.StringVar(&c.from, "from", "", "First day of the accounting period")
	f.StringVar(&c.to, "to", "", "Last day of the accounting period")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing workbook")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*workbookFile); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: workbook %q already exists, use -force to overwrite it\n", *workbookFile)
		return subcommands.ExitFailure
	}
	period, err := date.ParseRange(c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	opts, err := options()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	w := ledgerbook.NewDefault(opts)
	w.SetCompany(c.company)
	w.SetPeriod(period)
	if err := SaveWorkbook(w); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Created workbook %s\n", *workbookFile)
	return subcommands.ExitSuccess
}

// setCmd holds the flags for the 'set' subcommand.
type setCmd struct {
	company string
	from    string
	to      string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "change the company name or the accounting period" }
func (*setCmd) Usage() string {
	return `lbk set [-company <name>] [-from <date> -to <date>]

  Changes the company name or the accounting period. Bank rows dated outside
  the period are reported by 'lbk rebuild'.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.company, "company", "", "Company name")
	f.StringVar(&c.from, "from", "", "First day of the accounting period")
	f.StringVar(&c.to, "to", "", "Last day of the accounting period")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period date.Range
	if c.from != "" || c.to != "" {
		var err error
		if period, err = date.ParseRange(c.from, c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return update(func(w *ledgerbook.Workbook) error {
		if c.company != "" {
			w.SetCompany(c.company)
		}
		if !period.IsZero() {
			w.SetPeriod(period)
			w.Rebuild()
		}
		return nil
	})
}
