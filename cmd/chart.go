package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerbook/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the running balance of a ledger" }
func (*chartCmd) Usage() string {
	return `lbk chart [-o <file.png>] <ledger>

  Draws the running balance of a ledger as a PNG line chart. Rows without a
  valid date are left out.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, <ledger>.png by default")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: chart takes one ledger name")
		return subcommands.ExitUsageError
	}
	w, err := OpenWorkbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	l, err := w.Ledger(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	png, err := renderer.BalanceChart(l)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	output := c.output
	if output == "" {
		output = l.Name() + ".png"
	}
	if err := os.WriteFile(output, png, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Wrote %s\n", output)
	return subcommands.ExitSuccess
}
