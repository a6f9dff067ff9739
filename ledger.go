package ledgerbook

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Role classifies a ledger.
type Role int

const (
	// Bank is a bank account register in a single currency.
	Bank Role = iota
	// NonBank is a free-form ledger.
	NonBank
	// Aggregate is a view derived from the bank ledgers.
	Aggregate
	// PayableDetail is a free-form ledger detailing payables.
	PayableDetail
	// Regular is any other sheet.
	Regular
)

func (r Role) String() string {
	switch r {
	case Bank:
		return "bank"
	case NonBank:
		return "nonbank"
	case Aggregate:
		return "aggregate"
	case PayableDetail:
		return "payable"
	case Regular:
		return "regular"
	default:
		return "unknown"
	}
}

// ParseRole parses a role name. "other" is accepted for Regular.
func ParseRole(s string) (Role, error) {
	switch s {
	case "bank":
		return Bank, nil
	case "nonbank":
		return NonBank, nil
	case "aggregate":
		return Aggregate, nil
	case "payable":
		return PayableDetail, nil
	case "regular", "other":
		return Regular, nil
	default:
		return 0, fmt.Errorf("unknown ledger role: %q", s)
	}
}

// ColumnRole identifies what a column holds.
type ColumnRole int

const (
	ColOther ColumnRole = iota
	ColSequence
	ColDate
	ColCounterAccount
	ColSubAccount
	ColDescription
	ColInvoiceNo
	ColDebit
	ColCredit
	ColSum // per currency amount of an aggregate view
	ColBalance
	ColSource
	ColRemark
	ColDirection // 借 / 貸 / 平 sign of the running balance
)

func (c ColumnRole) String() string {
	switch c {
	case ColSequence:
		return "sequence"
	case ColDate:
		return "date"
	case ColCounterAccount:
		return "counter-account"
	case ColSubAccount:
		return "sub-account"
	case ColDescription:
		return "description"
	case ColInvoiceNo:
		return "invoice"
	case ColDebit:
		return "debit"
	case ColCredit:
		return "credit"
	case ColSum:
		return "sum"
	case ColBalance:
		return "balance"
	case ColSource:
		return "source"
	case ColRemark:
		return "remark"
	case ColDirection:
		return "direction"
	default:
		return "other"
	}
}

// ColumnSpec describes a column of a ledger.
type ColumnSpec struct {
	Label    string
	Role     ColumnRole
	Currency string // only for ColSum
	Group    string // shared header label of grouped columns
}

// Origin tells who wrote a row.
type Origin int

const (
	// UserEntered rows are owned by the user and survive rebuilds.
	UserEntered Origin = iota
	// Generated rows are written by the aggregation and replaced on every rebuild.
	Generated
)

// RowKind distinguishes data rows from housekeeping rows.
type RowKind int

const (
	DataRow RowKind = iota
	SummaryRow
)

// Provenance references the bank ledger row a generated row was copied from.
type Provenance struct {
	Ledger string
	Row    int // 0-based
}

// String returns the source label "ledger:row" with a 1-based row.
func (p Provenance) String() string { return fmt.Sprintf("%s:%d", p.Ledger, p.Row+1) }

// Row is a ledger row. Cells are sparse, an absent cell is empty.
type Row struct {
	cells      map[int]string
	Provenance *Provenance
	Origin     Origin
	Kind       RowKind
}

// Cell returns the text in column col.
func (r Row) Cell(col int) string { return r.cells[col] }

// IsEmpty reports whether no cell of the row holds text.
func (r Row) IsEmpty() bool {
	for _, v := range r.cells {
		if v != "" {
			return false
		}
	}
	return true
}

func (r *Row) set(col int, text string) {
	if col < 0 {
		return
	}
	if text == "" {
		delete(r.cells, col)
		return
	}
	if r.cells == nil {
		r.cells = make(map[int]string)
	}
	r.cells[col] = text
}

func (r Row) clone() Row {
	c := r
	c.cells = maps.Clone(r.cells)
	if r.Provenance != nil {
		p := *r.Provenance
		c.Provenance = &p
	}
	return c
}

// CurrencyColumn locates the Sum column of a currency in an aggregate view.
type CurrencyColumn struct {
	Currency string
	Index    int
}

// Ledger is an ordered table of dated transaction rows.
//
// Row indexes are stable: a row keeps its index across edits and rebuilds.
type Ledger struct {
	name     string
	role     Role
	currency string
	rate     decimal.Decimal
	view     *ViewSpec
	columns  []ColumnSpec
	rows     []Row
	minRows  int
	// opening is the manual balance of row 0, nil when the balance is
	// computed.
	opening *decimal.Decimal

	currencyColumns []CurrencyColumn
}

// newLedger creates a ledger with the layout of its role. Aggregate ledgers
// get their layout from the builder.
func newLedger(name string, role Role, currency string, minRows int) *Ledger {
	l := &Ledger{
		name:     name,
		role:     role,
		currency: currency,
		rate:     decimal.NewFromInt(1),
		columns:  columnsFor(role),
		minRows:  minRows,
	}
	l.grow(minRows)
	return l
}

func (l *Ledger) Name() string                  { return l.name }
func (l *Ledger) Role() Role                    { return l.role }
func (l *Ledger) Currency() string              { return l.currency }
func (l *Ledger) ExchangeRate() decimal.Decimal { return l.rate }
func (l *Ledger) RowCount() int                 { return len(l.rows) }
func (l *Ledger) ColumnCount() int              { return len(l.columns) }
func (l *Ledger) Columns() []ColumnSpec         { return slices.Clone(l.columns) }

// View returns the view definition of an aggregate ledger.
func (l *Ledger) View() (ViewSpec, bool) {
	if l.view == nil {
		return ViewSpec{}, false
	}
	return *l.view, true
}

// CurrencyColumns returns the per currency Sum columns, in column order.
func (l *Ledger) CurrencyColumns() []CurrencyColumn { return slices.Clone(l.currencyColumns) }

// Row returns a copy of row i.
func (l *Ledger) Row(i int) Row {
	if i < 0 || i >= len(l.rows) {
		return Row{}
	}
	return l.rows[i].clone()
}

// Cell returns the text at (row, col).
func (l *Ledger) Cell(row, col int) string {
	if row < 0 || row >= len(l.rows) {
		return ""
	}
	return l.rows[row].Cell(col)
}

// Column returns the index of the first column with this role, or -1.
func (l *Ledger) Column(role ColumnRole) int {
	return slices.IndexFunc(l.columns, func(c ColumnSpec) bool { return c.Role == role })
}

// LastDataRow returns the index of the last non empty row, or -1.
func (l *Ledger) LastDataRow() int {
	for i := len(l.rows) - 1; i >= 0; i-- {
		if !l.rows[i].IsEmpty() {
			return i
		}
	}
	return -1
}

// grow extends the ledger to at least n rows.
func (l *Ledger) grow(n int) {
	if n > len(l.rows) {
		l.rows = append(l.rows, make([]Row, n-len(l.rows))...)
	}
}

func (l *Ledger) setCell(row, col int, text string) {
	l.grow(row + 1)
	l.rows[row].set(col, text)
}

// clone returns a deep copy of the ledger.
func (l *Ledger) clone() *Ledger {
	c := *l
	c.columns = slices.Clone(l.columns)
	c.currencyColumns = slices.Clone(l.currencyColumns)
	if l.view != nil {
		v := *l.view
		c.view = &v
	}
	c.rows = make([]Row, len(l.rows))
	for i, r := range l.rows {
		c.rows[i] = r.clone()
	}
	return &c
}
