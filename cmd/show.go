package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerbook"
	"github.com/etnz/ledgerbook/renderer"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the workbook or a ledger" }
func (*showCmd) Usage() string {
	return `lbk show [<ledger>...]

  Without argument, lists the sheets with their totals. Otherwise displays
  the rows and the totals of each ledger.
`
}

func (*showCmd) SetFlags(f *flag.FlagSet) {}

func (*showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWorkbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if f.NArg() == 0 {
		o, err := renderer.NewOverview(w)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RenderOverview(o))
		return subcommands.ExitSuccess
	}
	for _, name := range f.Args() {
		l, err := w.Ledger(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		s, err := w.Summary(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.LedgerMarkdown(l, s))
	}
	return subcommands.ExitSuccess
}

type rebuildCmd struct{}

func (*rebuildCmd) Name() string     { return "rebuild" }
func (*rebuildCmd) Synopsis() string { return "rebuild the aggregate views" }
func (*rebuildCmd) Usage() string {
	return `lbk rebuild [<view>]

  Rebuilds one or every aggregate view from the bank ledgers and counts
  the matched rows, the undated ones and those outside the period.
`
}

func (*rebuildCmd) SetFlags(f *flag.FlagSet) {}

func (*rebuildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var reports []ledgerbook.RebuildReport
	status := update(func(w *ledgerbook.Workbook) error {
		if f.NArg() == 0 {
			reports = w.Rebuild()
			return nil
		}
		for _, name := range f.Args() {
			r, err := w.ActivateView(name)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}
		return nil
	})
	if status != subcommands.ExitSuccess {
		return status
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Rebuild")
	rows := [][]string{}
	for _, r := range reports {
		rows = append(rows, []string{r.View,
			fmt.Sprint(r.Matched), fmt.Sprint(r.Generated), fmt.Sprint(r.Preserved), fmt.Sprint(r.Relocated),
			fmt.Sprint(r.UnparsableDates), fmt.Sprint(r.UnparsableAmounts + r.MissingColumns), fmt.Sprint(r.OutOfPeriod),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"View", "Matched", "Generated", "User rows", "Relocated", "Undated", "No amount", "Out of period"},
		Rows:   rows,
	})
	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
