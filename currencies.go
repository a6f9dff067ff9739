package ledgerbook

import (
	"slices"
)

// ActiveCurrencies returns the currencies of the bank ledgers, unique and
// sorted. The order is the left to right order of the Sum columns of every
// aggregate view.
func ActiveCurrencies(ledgers []*Ledger) []string {
	var curs []string
	for _, l := range ledgers {
		if l.role == Bank && l.currency != "" {
			curs = append(curs, l.currency)
		}
	}
	slices.Sort(curs)
	return slices.Compact(curs)
}
