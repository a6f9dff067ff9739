package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/ledgerbook"
	"github.com/google/subcommands"
)

type queryCmd struct {
	totals bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the workbook" }
func (*queryCmd) Usage() string {
	return `lbk query [-totals] <jsonpath>

  Evaluates a JSONPath expression on the workbook document, as saved in the
  workbook file, and prints the result as JSON. With -totals the expression
  is evaluated on the totals of every ledger, keyed by ledger name.

  Examples:
    lbk query '$.sheets[*].name'
    lbk query -totals '$["HSBC-USD"].home_credit'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.totals, "totals", false, "Query the ledger totals instead of the document")
}

// totals is the JSON form of the summaries of a workbook.
type totals struct {
	Role       string            `json:"role"`
	Currency   string            `json:"currency,omitempty"`
	Rate       string            `json:"rate,omitempty"`
	Debit      string            `json:"debit"`
	Credit     string            `json:"credit"`
	HomeDebit  string            `json:"home_debit"`
	HomeCredit string            `json:"home_credit"`
	ByCurrency map[string]string `json:"by_currency,omitempty"`
	HomeTotal  string            `json:"home_total,omitempty"`
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes one JSONPath expression")
		return subcommands.ExitUsageError
	}
	w, err := OpenWorkbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var src any = w.Document()
	if c.totals {
		src, err = summaries(w)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	// jsonpath walks generic values: round trip through JSON.
	data, err := json.Marshal(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	jval, err := jsonpath.Get(f.Arg(0), jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}

func summaries(w *ledgerbook.Workbook) (map[string]totals, error) {
	m := make(map[string]totals)
	for _, name := range w.Names() {
		s, err := w.Summary(name)
		if err != nil {
			return nil, err
		}
		t := totals{
			Role:       s.Role.String(),
			Currency:   s.Currency,
			Debit:      s.Debit.StringFixed(2),
			Credit:     s.Credit.StringFixed(2),
			HomeDebit:  s.HomeDebit.StringFixed(2),
			HomeCredit: s.HomeCredit.StringFixed(2),
		}
		if s.Role == ledgerbook.Bank {
			t.Rate = s.Rate.String()
		}
		if s.Role == ledgerbook.Aggregate {
			t.HomeTotal = s.HomeTotal.StringFixed(2)
			t.ByCurrency = make(map[string]string)
			for cur, v := range s.ByCurrency {
				t.ByCurrency[cur] = v.StringFixed(2)
			}
		}
		m[name] = t
	}
	return m, nil
}
