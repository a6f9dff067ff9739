package ledgerbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec is a helper for test to create decimals from const strings.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// bankRow is a row of a bank ledger, in column order.
type bankRow struct {
	date, counter, desc, debit, credit, invoice string
}

// fill writes rows into a bank ledger of w, from row 0.
func fill(t *testing.T, w *Workbook, name string, rows ...bankRow) {
	t.Helper()
	l, err := w.Ledger(name)
	if err != nil {
		t.Fatalf("Ledger(%q) error = %v", name, err)
	}
	for i, r := range rows {
		for role, text := range map[ColumnRole]string{
			ColDate:           r.date,
			ColCounterAccount: r.counter,
			ColDescription:    r.desc,
			ColDebit:          r.debit,
			ColCredit:         r.credit,
			ColInvoiceNo:      r.invoice,
		} {
			if text == "" {
				continue
			}
			if err := w.EditCell(name, i, l.Column(role), text); err != nil {
				t.Fatalf("EditCell(%q, %d, %v, %q) error = %v", name, i, role, text, err)
			}
		}
	}
}

// testWorkbook returns a workbook with small ledgers.
func testWorkbook(t *testing.T) *Workbook {
	t.Helper()
	return New(Options{MinRows: 10})
}

// sumColumn returns the index of the Sum column of currency cur in l.
func sumColumn(t *testing.T, l *Ledger, cur string) int {
	t.Helper()
	for _, cc := range l.CurrencyColumns() {
		if cc.Currency == cur {
			return cc.Index
		}
	}
	t.Fatalf("%s has no %s column", l.Name(), cur)
	return -1
}
