package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerbook"
	"github.com/etnz/ledgerbook/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type exchangeCmd struct {
	date string
}

func (*exchangeCmd) Name() string     { return "exchange" }
func (*exchangeCmd) Synopsis() string { return "record a currency exchange between two bank ledgers" }
func (*exchangeCmd) Usage() string {
	return `lbk exchange [-d <date>] <from> <amount> <to> <amount>

  Records money leaving <from> (a credit) and entering <to> (a debit). Both
  rows share a unique CurrencyEx- description.
`
}

func (c *exchangeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the exchange")
}

func (c *exchangeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "Error: exchange takes <from> <amount> <to> <amount>")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	fromAmount, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	toAmount, err := decimal.NewFromString(f.Arg(3))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	return update(func(w *ledgerbook.Workbook) error {
		res, err := w.Exchange(ledgerbook.ExchangeRequest{
			Date:       on,
			From:       f.Arg(0),
			FromAmount: fromAmount,
			To:         f.Arg(2),
			ToAmount:   toAmount,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s row %d, %s row %d\n", res.Tag, f.Arg(0), res.FromRow+1, f.Arg(2), res.ToRow+1)
		return nil
	})
}
