package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/ledgerbook"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addBankCmd struct {
	currency string
}

func (*addBankCmd) Name() string     { return "add-bank" }
func (*addBankCmd) Synopsis() string { return "add a bank ledger" }
func (*addBankCmd) Usage() string {
	return `lbk add-bank [-c <currency>] <name>

  Adds a bank ledger. The currency is the suffix of the name after the last
  "-" (HSBC-USD is in USD) unless -c is given.
`
}

func (c *addBankCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Currency of the ledger")
}

func (c *addBankCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: add-bank takes exactly one ledger name")
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error {
		return w.AddBankLedger(f.Arg(0), c.currency)
	})
}

type addLedgerCmd struct {
	role string
}

func (*addLedgerCmd) Name() string     { return "add-ledger" }
func (*addLedgerCmd) Synopsis() string { return "add a non bank ledger" }
func (*addLedgerCmd) Usage() string {
	return `lbk add-ledger [-role nonbank|payable|regular] <name>

  Adds a free-form ledger. Without -role the role is guessed from the name.
`
}

func (c *addLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.role, "role", "", "Role of the ledger: nonbank, payable or regular")
}

func (c *addLedgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: add-ledger takes exactly one ledger name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	role := ledgerbook.ClassifyRole(name)
	if c.role != "" {
		var err error
		if role, err = ledgerbook.ParseRole(c.role); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	return update(func(w *ledgerbook.Workbook) error {
		switch role {
		case ledgerbook.NonBank:
			return w.AddNonBankLedger(name)
		case ledgerbook.PayableDetail:
			return w.AddPayableLedger(name)
		case ledgerbook.Regular:
			return w.AddRegularLedger(name)
		default:
			return fmt.Errorf("%q would be a %s ledger, use add-bank or add-view", name, role)
		}
	})
}

type addViewCmd struct{}

func (*addViewCmd) Name() string     { return "add-view" }
func (*addViewCmd) Synopsis() string { return "add an aggregate view" }
func (*addViewCmd) Usage() string {
	return `lbk add-view <kind>

  Adds an aggregate view and builds it. Kinds are sales, cost, bankfees,
  interest, payables and director, or the sheet names of the views.
`
}

func (*addViewCmd) SetFlags(f *flag.FlagSet) {}

func (*addViewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: add-view takes exactly one view kind")
		return subcommands.ExitUsageError
	}
	kind, err := ledgerbook.ParseViewKind(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error {
		report, err := w.AddAggregateView(kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %d rows generated\n", report.View, report.Generated)
		return nil
	})
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a ledger" }
func (*removeCmd) Usage() string {
	return `lbk remove <name>

  Removes a ledger. Removing a bank ledger removes its rows from the views.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (*removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: remove takes exactly one ledger name")
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error { return w.RemoveLedger(f.Arg(0)) })
}

type renameCmd struct {
	bank     string
	currency string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a ledger" }
func (*renameCmd) Usage() string {
	return `lbk rename <old> <new>
lbk rename -bank <bank> -currency <currency> <old>

  Renames a ledger. The second form renames a bank ledger to <bank>-<currency>
  and changes its currency.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "bank", "", "New bank name of a bank ledger")
	f.StringVar(&c.currency, "currency", "", "New currency of a bank ledger")
}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.bank != "" || c.currency != "" {
		if f.NArg() != 1 || c.bank == "" || c.currency == "" {
			fmt.Fprintln(os.Stderr, "Error: rename -bank -currency takes both flags and one ledger name")
			return subcommands.ExitUsageError
		}
		return update(func(w *ledgerbook.Workbook) error {
			return w.RenameBankLedger(f.Arg(0), c.bank, c.currency)
		})
	}
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: rename takes the old and the new name")
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error { return w.RenameLedger(f.Arg(0), f.Arg(1)) })
}

type moveCmd struct{}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "move a ledger to another tab" }
func (*moveCmd) Usage() string {
	return `lbk move <name> <tab>

  Moves a ledger to a tab, 1 being the first one. Bank ledgers are scanned in
  tab order when building the views.
`
}

func (*moveCmd) SetFlags(f *flag.FlagSet) {}

func (*moveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: move takes a ledger name and a tab")
		return subcommands.ExitUsageError
	}
	tab, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing tab: %v\n", err)
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error { return w.MoveLedger(f.Arg(0), tab-1) })
}

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "set the exchange rate of a ledger" }
func (*rateCmd) Usage() string {
	return `lbk rate <name> <rate>

  Sets the rate converting the ledger currency into the home currency.
`
}

func (*rateCmd) SetFlags(f *flag.FlagSet) {}

func (*rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: rate takes a ledger name and a rate")
		return subcommands.ExitUsageError
	}
	rate, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing rate: %v\n", err)
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error { return w.SetExchangeRate(f.Arg(0), rate) })
}
