package ledgerbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/ledgerbook/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// documentVersion is the version of the workbook document written by Encode.
const documentVersion = 1

// Document is the persisted form of a workbook.
type Document struct {
	Version    int             `json:"version"`
	Company    string          `json:"company"`
	PeriodFrom date.Date       `json:"period_from"`
	PeriodTo   date.Date       `json:"period_to"`
	TabOrder   []string        `json:"tab_order"`
	Sheets     []SheetDocument `json:"sheets"`
}

// SheetDocument is the persisted form of a ledger.
type SheetDocument struct {
	Name         string          `json:"name"`
	Role         string          `json:"role,omitempty"`
	Type         string          `json:"type,omitempty"` // older documents
	View         string          `json:"view,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Rows         int             `json:"rows,omitempty"`
	// OpeningBalance is the manual balance of row 0.
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	// CurrencyColumns are the currencies of the Sum columns the user rows
	// are aligned with.
	CurrencyColumns []string          `json:"currency_columns,omitempty"`
	Cells           map[string]string `json:"cells"`
	UserAddedRows   []UserRowDocument `json:"user_added_rows,omitempty"`
	SummaryRows     []int             `json:"summary_rows,omitempty"`
}

// UserRowDocument is a user row of an aggregate view.
type UserRowDocument struct {
	Row   int      `json:"row"`
	Cells []string `json:"cells"`
}

func cellKey(row, col int) string { return strconv.Itoa(row) + "," + strconv.Itoa(col) }

func parseCellKey(key string) (row, col int, err error) {
	r, c, ok := strings.Cut(key, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid cell key %q", key)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
		return 0, 0, fmt.Errorf("invalid cell key %q: %w", key, err)
	}
	if col, err = strconv.Atoi(strings.TrimSpace(c)); err != nil {
		return 0, 0, fmt.Errorf("invalid cell key %q: %w", key, err)
	}
	if row < 0 || col < 0 || row >= MaxRows {
		return 0, 0, fmt.Errorf("%w: cell key %q", ErrOutOfRange, key)
	}
	return row, col, nil
}

// Document returns the persisted form of the workbook.
//
// Aggregate views are saved with no cells, they are rebuilt on load. Their
// user rows are saved with their index.
func (w *Workbook) Document() Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := Document{
		Version:    documentVersion,
		Company:    w.company,
		PeriodFrom: w.period.From,
		PeriodTo:   w.period.To,
	}
	for _, l := range w.ledgers {
		doc.TabOrder = append(doc.TabOrder, l.name)
		doc.Sheets = append(doc.Sheets, encodeSheet(l))
	}
	return doc
}

func encodeSheet(l *Ledger) SheetDocument {
	s := SheetDocument{
		Name:         l.name,
		Role:         l.role.String(),
		Currency:     l.currency,
		ExchangeRate: l.rate,
		Rows:         len(l.rows),
		Cells:        map[string]string{},
	}
	s.OpeningBalance = l.opening
	if l.view != nil {
		s.View = l.view.Kind.String()
		for _, cc := range l.currencyColumns {
			s.CurrencyColumns = append(s.CurrencyColumns, cc.Currency)
		}
		for _, r := range CaptureUserRows(l).Rows {
			s.UserAddedRows = append(s.UserAddedRows, UserRowDocument{Row: r.Index, Cells: r.Cells})
		}
		return s
	}
	for i, row := range l.rows {
		for col, text := range row.cells {
			s.Cells[cellKey(i, col)] = text
		}
		if row.Kind == SummaryRow {
			s.SummaryRows = append(s.SummaryRows, i)
		}
	}
	return s
}

// Encode writes the workbook document as indented JSON.
func (w *Workbook) Encode(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w.Document()); err != nil {
		return fmt.Errorf("could not encode workbook: %w", err)
	}
	return nil
}

// Decode replaces the content of the workbook with the document read from
// r. On error the workbook is left unchanged.
func (w *Workbook) Decode(r io.Reader) error {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("could not decode workbook: %w", err)
	}
	return w.Restore(doc)
}

// Restore replaces the content of the workbook with doc. Columns come from
// the ledger roles, cells are replayed and the views are rebuilt around
// their saved user rows. On error the workbook is left unchanged.
func (w *Workbook) Restore(doc Document) error {
	if doc.Version > documentVersion {
		return fmt.Errorf("unsupported workbook version %d", doc.Version)
	}
	w.mu.Lock()
	opts, log := w.opts, w.log
	w.mu.Unlock()

	// build aside, then swap.
	next := &Workbook{opts: opts, log: log, company: doc.Company}
	next.period = date.Range{From: doc.PeriodFrom, To: doc.PeriodTo}
	if !next.period.From.IsZero() && !next.period.To.IsZero() && next.period.From.After(next.period.To) {
		return fmt.Errorf("invalid period: %s", next.period)
	}

	var errs []error
	for _, s := range orderSheets(doc) {
		l, err := next.decodeSheet(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("sheet %q: %w", s.Name, err))
			continue
		}
		if err := next.checkFree(l.name); err != nil {
			errs = append(errs, err)
			continue
		}
		next.ledgers = append(next.ledgers, l)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("could not load workbook: %w", err)
	}
	for _, l := range next.ledgers {
		recomputeBalances(l, opts.OpeningBalanceOverride)
	}
	next.rebuildViews()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.company, w.period, w.ledgers = next.company, next.period, next.ledgers
	w.log.Info().Str("company", w.company).Int("sheets", len(w.ledgers)).Msg("workbook loaded")
	return nil
}

// orderSheets returns the sheets in tab order, sheets missing from the tab
// order last, in document order.
func orderSheets(doc Document) []SheetDocument {
	var sheets []SheetDocument
	used := make([]bool, len(doc.Sheets))
	for _, name := range doc.TabOrder {
		i := slices.IndexFunc(doc.Sheets, func(s SheetDocument) bool { return s.Name == name })
		if i >= 0 && !used[i] {
			used[i] = true
			sheets = append(sheets, doc.Sheets[i])
		}
	}
	for i, s := range doc.Sheets {
		if !used[i] {
			sheets = append(sheets, s)
		}
	}
	return sheets
}

// sheetRole returns the role of a saved sheet. Older documents only carry a
// type, or nothing.
func (w *Workbook) sheetRole(s SheetDocument) (Role, *ViewSpec, error) {
	name := s.Role
	if name == "" {
		name = s.Type
	}
	role := ClassifyRole(s.Name)
	if name != "" {
		var err error
		if role, err = ParseRole(name); err != nil {
			return 0, nil, err
		}
	}
	if role != Aggregate {
		return role, nil, nil
	}

	kind, err := ParseViewKind(s.View)
	if s.View == "" {
		kind, err = ParseViewKind(s.Name)
	}
	if err != nil {
		// older documents tag some detail sheets as aggregates.
		if s.View == "" {
			return NonBank, nil, nil
		}
		return 0, nil, err
	}
	spec, ok := w.opts.Views[kind]
	if !ok {
		return 0, nil, fmt.Errorf("%w: view %v", ErrNotFound, kind)
	}
	spec.Name = s.Name
	return Aggregate, &spec, nil
}

func (w *Workbook) decodeSheet(s SheetDocument) (*Ledger, error) {
	if s.Name == "" {
		return nil, errors.New("sheet has no name")
	}
	if s.Rows < 0 || s.Rows > MaxRows {
		return nil, fmt.Errorf("%w: %d rows, at most %d", ErrOutOfRange, s.Rows, MaxRows)
	}
	role, spec, err := w.sheetRole(s)
	if err != nil {
		return nil, err
	}

	rate := s.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	if role == Aggregate {
		return w.decodeView(s, spec, rate)
	}

	currency := ""
	if role == Bank {
		currency = s.Currency
		if currency == "" {
			currency = CurrencyFromName(s.Name)
		}
		if err := ValidateCurrency(currency); err != nil {
			return nil, err
		}
	}
	l := newLedger(s.Name, role, currency, w.opts.MinRows)
	l.rate = rate
	l.opening = s.OpeningBalance
	l.grow(s.Rows)
	for key, text := range s.Cells {
		row, col, err := parseCellKey(key)
		if err != nil {
			return nil, err
		}
		if col >= len(l.columns) {
			return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, col, len(l.columns))
		}
		l.setCell(row, col, text)
	}
	for _, i := range s.SummaryRows {
		if i < 0 || i >= MaxRows {
			return nil, fmt.Errorf("%w: summary row %d", ErrOutOfRange, i)
		}
		l.grow(i + 1)
		l.rows[i].Kind = SummaryRow
	}
	return l, nil
}

// decodeView lays the saved user rows out in the columns they were saved
// with. The following rebuild maps them onto the current columns.
func (w *Workbook) decodeView(s SheetDocument, spec *ViewSpec, rate decimal.Decimal) (*Ledger, error) {
	l := &Ledger{
		name:    s.Name,
		role:    Aggregate,
		rate:    rate,
		view:    spec,
		minRows: w.opts.MinRows,
	}
	l.columns, l.currencyColumns = aggregateColumns(*spec, s.CurrencyColumns)
	l.grow(max(l.minRows, s.Rows))
	for _, u := range s.UserAddedRows {
		if u.Row < 0 || u.Row >= MaxRows {
			return nil, fmt.Errorf("%w: user row %d", ErrOutOfRange, u.Row)
		}
		if len(u.Cells) > len(l.columns) {
			return nil, fmt.Errorf("%w: user row %d has %d cells for %d columns", ErrOutOfRange, u.Row, len(u.Cells), len(l.columns))
		}
		l.grow(u.Row + 1)
		row := Row{Origin: UserEntered}
		for c, text := range u.Cells {
			row.set(c, text)
		}
		l.rows[u.Row] = row
	}
	return l, nil
}

// Save writes the workbook to a file.
func (w *Workbook) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create workbook file %q: %w", path, err)
	}
	if err := w.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not write workbook file %q: %w", path, err)
	}
	w.log.Info().Str("path", path).Msg("workbook saved")
	return nil
}

// Load replaces the workbook with the content of a file.
func (w *Workbook) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open workbook file %q: %w", path, err)
	}
	defer f.Close()
	if err := w.Decode(f); err != nil {
		return fmt.Errorf("%q: %w", path, err)
	}
	return nil
}

// Open loads a workbook file.
func Open(path string, opts Options) (*Workbook, error) {
	w := New(opts)
	if err := w.Load(path); err != nil {
		return nil, err
	}
	return w, nil
}
