package ledgerbook

import "github.com/shopspring/decimal"

// direction labels of a running balance.
const (
	directionDebit  = "借"
	directionCredit = "貸"
	directionFlat   = "平"
)

// hasData reports whether row i carries data, ignoring the computed columns.
func (l *Ledger) hasData(i int, computed ...int) bool {
	for col, text := range l.rows[i].cells {
		if text == "" {
			continue
		}
		skip := false
		for _, c := range computed {
			if col == c {
				skip = true
				break
			}
		}
		if !skip {
			return true
		}
	}
	return false
}

// recomputeBalances rewrites the Balance column of l with the running balance
// balance[i] = balance[i-1] + debit[i] - credit[i], starting at zero.
//
// When override is true and the ledger has a manual opening balance, row 0
// shows it and the running balance starts from it. Rows without data get their Balance and Direction cells
// cleared. Summary rows are skipped. Ledgers without Debit, Credit and
// Balance columns are left untouched.
func recomputeBalances(l *Ledger, override bool) {
	if l.role == Aggregate {
		return
	}
	debitCol, creditCol, balanceCol := l.Column(ColDebit), l.Column(ColCredit), l.Column(ColBalance)
	if debitCol < 0 || creditCol < 0 || balanceCol < 0 {
		return
	}
	dirCol := l.Column(ColDirection)

	running := decimal.Zero
	for i := range l.rows {
		row := &l.rows[i]
		if row.Kind == SummaryRow {
			continue
		}
		if i == 0 && override && l.opening != nil {
			running = *l.opening
			row.set(balanceCol, FormatAmount(running))
			row.set(dirCol, directionOf(running))
			continue
		}
		if !l.hasData(i, balanceCol, dirCol) {
			row.set(balanceCol, "")
			row.set(dirCol, "")
			continue
		}
		debit, _ := cellAmount(row.Cell(debitCol))
		credit, _ := cellAmount(row.Cell(creditCol))
		running = running.Add(debit).Sub(credit)
		row.set(balanceCol, FormatAmount(running))
		row.set(dirCol, directionOf(running))
	}
}

func directionOf(balance decimal.Decimal) string {
	switch balance.Sign() {
	case 1:
		return directionDebit
	case -1:
		return directionCredit
	default:
		return directionFlat
	}
}

// RunningBalance returns the running balance after each row of l that
// carries data, as written in the Balance column.
func RunningBalance(l *Ledger) []BalancePoint {
	balanceCol, dateCol := l.Column(ColBalance), l.Column(ColDate)
	if balanceCol < 0 {
		return nil
	}
	var points []BalancePoint
	for i, row := range l.rows {
		if row.Kind == SummaryRow || row.Cell(balanceCol) == "" {
			continue
		}
		v, err := ParseAmount(row.Cell(balanceCol))
		if err != nil {
			continue
		}
		points = append(points, BalancePoint{Row: i, Date: row.Cell(dateCol), Balance: v})
	}
	return points
}

// BalancePoint is the running balance after a row.
type BalancePoint struct {
	Row     int
	Date    string // as written in the row
	Balance decimal.Decimal
}
