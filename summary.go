package ledgerbook

import (
	"slices"

	"github.com/shopspring/decimal"
)

// TotalLabel starts the native summary row.
const TotalLabel = "本期TOTAL"

// TotalHomeLabel starts the summary row converted into currency.
func TotalHomeLabel(currency string) string {
	if currency == "" {
		currency = HomeCurrency
	}
	return TotalLabel + ":" + currency
}

// Sums returns the totals of the Debit and Credit columns over the data rows
// of l. Unparsable and empty cells count as zero.
func Sums(l *Ledger) (debit, credit decimal.Decimal) {
	return columnSum(l, l.Column(ColDebit)), columnSum(l, l.Column(ColCredit))
}

func columnSum(l *Ledger, col int) decimal.Decimal {
	total := decimal.Zero
	if col < 0 {
		return total
	}
	for _, row := range l.rows {
		if row.Kind == SummaryRow {
			continue
		}
		v, _ := cellAmount(row.Cell(col))
		total = total.Add(v)
	}
	return total
}

// SumsByCurrency returns the total of every Sum column of an aggregate view,
// keyed by currency. A single column view reports its total under "".
func SumsByCurrency(l *Ledger) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	if spec, ok := l.View(); ok && !spec.MultiCurrency {
		sums[""] = columnSum(l, l.Column(spec.Amount))
		return sums
	}
	for _, cc := range l.currencyColumns {
		sums[cc.Currency] = columnSum(l, cc.Index)
	}
	return sums
}

// HomeCurrencyEquivalent converts amount at rate.
func HomeCurrencyEquivalent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// Summary holds the two totals of a ledger: in its own currency or
// currencies, and in the home currency.
type Summary struct {
	Ledger   string
	Role     Role
	Currency string          // bank ledgers only
	Rate     decimal.Decimal // bank ledgers only

	Debit  decimal.Decimal
	Credit decimal.Decimal

	// ByCurrency is set for aggregate views.
	ByCurrency map[string]decimal.Decimal

	// HomeCurrency is the currency of the Home totals.
	HomeCurrency string
	HomeDebit    decimal.Decimal
	HomeCredit   decimal.Decimal
	// HomeTotal is the home currency total of an aggregate view.
	HomeTotal decimal.Decimal
}

// Currencies returns the keys of ByCurrency, sorted.
func (s Summary) Currencies() []string {
	var curs []string
	for c := range s.ByCurrency {
		curs = append(curs, c)
	}
	slices.Sort(curs)
	return curs
}

// summarize computes the summary of l. ledgers are the sheets of the
// workbook, used to find the rates of aggregate view rows.
func summarize(l *Ledger, ledgers []*Ledger, home string) Summary {
	s := Summary{Ledger: l.name, Role: l.role, HomeCurrency: home}
	if l.role != Aggregate {
		s.Debit, s.Credit = Sums(l)
		rate := l.rate
		if l.role == Bank {
			s.Currency, s.Rate = l.currency, l.rate
		}
		s.HomeDebit = HomeCurrencyEquivalent(s.Debit, rate)
		s.HomeCredit = HomeCurrencyEquivalent(s.Credit, rate)
		return s
	}

	s.ByCurrency = SumsByCurrency(l)
	s.HomeTotal = aggregateHomeTotal(l, ledgers)
	return s
}

// aggregateHomeTotal converts every amount of a view into the home currency.
// A generated row uses the rate of the ledger it was copied from, a user row
// the rate of the first bank ledger holding the currency of its column.
func aggregateHomeTotal(l *Ledger, ledgers []*Ledger) decimal.Decimal {
	byName := make(map[string]*Ledger, len(ledgers))
	byCurrency := make(map[string]decimal.Decimal)
	for _, x := range ledgers {
		byName[x.name] = x
		if x.role == Bank {
			if _, ok := byCurrency[x.currency]; !ok {
				byCurrency[x.currency] = x.rate
			}
		}
	}
	one := decimal.NewFromInt(1)

	type amountColumn struct {
		index    int
		currency string
	}
	var cols []amountColumn
	if spec, ok := l.View(); ok && !spec.MultiCurrency {
		cols = append(cols, amountColumn{index: l.Column(spec.Amount)})
	} else {
		for _, cc := range l.currencyColumns {
			cols = append(cols, amountColumn{cc.Index, cc.Currency})
		}
	}

	total := decimal.Zero
	for _, row := range l.rows {
		if row.Kind == SummaryRow {
			continue
		}
		for _, c := range cols {
			v, _ := cellAmount(row.Cell(c.index))
			if v.IsZero() {
				continue
			}
			rate := one
			if row.Provenance != nil {
				if src, ok := byName[row.Provenance.Ledger]; ok {
					rate = src.rate
				}
			} else if r, ok := byCurrency[c.currency]; ok {
				rate = r
			}
			total = total.Add(HomeCurrencyEquivalent(v, rate))
		}
	}
	return total
}
