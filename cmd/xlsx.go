package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerbook"
	"github.com/google/subcommands"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the workbook as an xlsx spreadsheet" }
func (*exportCmd) Usage() string {
	return `lbk export <file.xlsx>

  Writes one sheet per ledger, in tab order, with the two total rows.
`
}

func (*exportCmd) SetFlags(f *flag.FlagSet) {}

func (*exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: export takes the spreadsheet file name")
		return subcommands.ExitUsageError
	}
	w, err := OpenWorkbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	out, err := os.Create(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := w.ExportXLSX(out); err != nil {
		out.Close()
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Exported %d sheets to %s\n", len(w.Names()), f.Arg(0))
	return subcommands.ExitSuccess
}

type importCmd struct {
	sheet string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "append the rows of an xlsx statement to a ledger" }
func (*importCmd) Usage() string {
	return `lbk import [-sheet <name>] <file.xlsx> <ledger>

  Appends the rows of a spreadsheet after the last row of a ledger. The first
  row holds the column labels, matched against the ledger header. Balances
  are recomputed, not imported.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "", "Sheet to import, the first one by default")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: import takes a spreadsheet and a ledger")
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error {
		n, err := w.ImportXLSXFile(f.Arg(0), c.sheet, f.Arg(1))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %d rows into %s\n", n, f.Arg(1))
		return nil
	})
}
