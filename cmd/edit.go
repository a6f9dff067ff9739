package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/ledgerbook"
	"github.com/google/subcommands"
)

type editCmd struct{}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "write a cell" }
func (*editCmd) Usage() string {
	return `lbk edit <ledger> <row> <column> [<text>]

  Writes text into a cell, rows and columns count from 1. The column is a
  number or a header label such as 日期 or 借方. Without text the cell is
  cleared. Balances and views are updated.
`
}

func (*editCmd) SetFlags(f *flag.FlagSet) {}

func (*editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 && f.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "Error: edit takes a ledger, a row, a column and the text")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	row, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing row: %v\n", err)
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error {
		l, err := w.Ledger(name)
		if err != nil {
			return err
		}
		col, err := columnIndex(l, f.Arg(2))
		if err != nil {
			return err
		}
		return w.EditCell(name, row-1, col, f.Arg(3))
	})
}

// columnIndex resolves a 1-based column number or a header label into a
// column index.
func columnIndex(l *ledgerbook.Ledger, s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, nil
	}
	for i, c := range l.Columns() {
		if c.Label == s || strings.EqualFold(c.Role.String(), s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%q has no column %q", l.Name(), s)
}
