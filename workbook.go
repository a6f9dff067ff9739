package ledgerbook

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/ledgerbook/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultMinRows is the default working size of a ledger.
const DefaultMinRows = 100

// MaxRows bounds the number of rows of a ledger.
const MaxRows = 100000

// DefaultBankLedger is the bank ledger of a new workbook.
const DefaultBankLedger = "HSBC-USD"

// Options configure a Workbook.
type Options struct {
	// MinRows is the minimum number of rows of every ledger.
	MinRows int
	// OpeningBalanceOverride makes the Balance cell of row 0 editable.
	OpeningBalanceOverride bool
	// Views overrides the default view table.
	Views map[ViewKind]ViewSpec
	// HomeCurrency names the converted totals. The conversion itself uses
	// the ledger exchange rates.
	HomeCurrency string
	// Logger receives rebuild reports. Nil disables logging.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.MinRows <= 0 {
		o.MinRows = DefaultMinRows
	}
	o.MinRows = min(o.MinRows, MaxRows)
	if o.HomeCurrency == "" {
		o.HomeCurrency = HomeCurrency
	}
	views := DefaultViews()
	maps.Copy(views, o.Views)
	o.Views = views
	return o
}

// Workbook is a set of ledgers in tab order, with the aggregate views kept in
// sync with the bank ledgers.
//
// It is safe for concurrent use: operations are serialized and getters
// return copies.
type Workbook struct {
	mu      sync.Mutex
	opts    Options
	log     zerolog.Logger
	company string
	period  date.Range
	ledgers []*Ledger // tab order
}

// New returns an empty workbook.
func New(opts Options) *Workbook {
	opts = opts.withDefaults()
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Workbook{opts: opts, log: log}
}

// NewDefault returns a workbook with the sheets of a new file: one bank
// ledger and every aggregate view.
func NewDefault(opts Options) *Workbook {
	w := New(opts)
	bank := newLedger(DefaultBankLedger, Bank, CurrencyFromName(DefaultBankLedger), w.opts.MinRows)
	recomputeBalances(bank, w.opts.OpeningBalanceOverride)
	w.ledgers = append(w.ledgers, bank)
	for _, k := range ViewKinds() {
		w.ledgers = append(w.ledgers, w.newView(w.opts.Views[k]))
	}
	w.rebuildViews()
	return w
}

// Options returns the options of the workbook.
func (w *Workbook) Options() Options {
	w.mu.Lock()
	defer w.mu.Unlock()
	o := w.opts
	o.Views = maps.Clone(o.Views)
	return o
}

// Company returns the company name.
func (w *Workbook) Company() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.company
}

// SetCompany sets the company name.
func (w *Workbook) SetCompany(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.company = name
}

// Period returns the accounting period.
func (w *Workbook) Period() date.Range {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.period
}

// SetPeriod sets the accounting period.
func (w *Workbook) SetPeriod(r date.Range) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.period = r
}

// Names returns the ledger names in tab order.
func (w *Workbook) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, len(w.ledgers))
	for i, l := range w.ledgers {
		names[i] = l.name
	}
	return names
}

// Ledger returns a copy of the named ledger.
func (w *Workbook) Ledger(name string) (*Ledger, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(name)
	if err != nil {
		return nil, err
	}
	return l.clone(), nil
}

// Ledgers returns a copy of every ledger in tab order.
func (w *Workbook) Ledgers() []*Ledger {
	w.mu.Lock()
	defer w.mu.Unlock()
	ls := make([]*Ledger, len(w.ledgers))
	for i, l := range w.ledgers {
		ls[i] = l.clone()
	}
	return ls
}

func (w *Workbook) find(name string) (*Ledger, int, error) {
	for i, l := range w.ledgers {
		if l.name == name {
			return l, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (w *Workbook) checkFree(name string) error {
	if name == "" {
		return errors.New("ledger name is empty")
	}
	if _, _, err := w.find(name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}

// checkBankName checks that the name suffix, if any, is the currency.
func checkBankName(name, currency string) error {
	if suffix := CurrencyFromName(name); suffix != "" && suffix != currency {
		return fmt.Errorf("%w: %q is not a %s ledger", ErrCurrencyMismatch, name, currency)
	}
	return nil
}

// ClassifyRole guesses the role of a sheet from its name, for documents that
// do not record it.
func ClassifyRole(name string) Role {
	if CurrencyFromName(name) != "" {
		return Bank
	}
	for _, v := range defaultViews {
		if v.Name == name {
			return Aggregate
		}
	}
	switch name {
	case "工資", "商業登記證書", "秘書費", "審計費":
		return NonBank
	}
	return Regular
}

// AddBankLedger adds a bank ledger. An empty currency is read from the name
// suffix. Every aggregate view is rebuilt.
func (w *Workbook) AddBankLedger(name, currency string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkFree(name); err != nil {
		return err
	}
	if currency == "" {
		currency = CurrencyFromName(name)
	}
	if err := ValidateCurrency(currency); err != nil {
		return err
	}
	if err := checkBankName(name, currency); err != nil {
		return err
	}
	l := newLedger(name, Bank, currency, w.opts.MinRows)
	w.ledgers = append(w.ledgers, l)
	w.rebuildViews()
	return nil
}

// AddNonBankLedger adds a free-form ledger.
func (w *Workbook) AddNonBankLedger(name string) error { return w.addPlain(name, NonBank) }

// AddPayableLedger adds a payable detail ledger.
func (w *Workbook) AddPayableLedger(name string) error { return w.addPlain(name, PayableDetail) }

// AddRegularLedger adds a regular sheet.
func (w *Workbook) AddRegularLedger(name string) error { return w.addPlain(name, Regular) }

func (w *Workbook) addPlain(name string, role Role) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkFree(name); err != nil {
		return err
	}
	w.ledgers = append(w.ledgers, newLedger(name, role, "", w.opts.MinRows))
	return nil
}

func (w *Workbook) newView(spec ViewSpec) *Ledger {
	s := spec
	l := &Ledger{
		name:    s.Name,
		role:    Aggregate,
		rate:    decimal.NewFromInt(1),
		view:    &s,
		minRows: w.opts.MinRows,
	}
	l.columns, l.currencyColumns = aggregateColumns(s, ActiveCurrencies(w.ledgers))
	l.grow(l.minRows)
	return l
}

// AddAggregateView adds the view of this kind and builds it.
func (w *Workbook) AddAggregateView(kind ViewKind) (RebuildReport, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	spec, ok := w.opts.Views[kind]
	if !ok {
		return RebuildReport{}, fmt.Errorf("%w: view %v", ErrNotFound, kind)
	}
	if err := spec.Validate(); err != nil {
		return RebuildReport{}, err
	}
	if err := w.checkFree(spec.Name); err != nil {
		return RebuildReport{}, err
	}
	l := w.newView(spec)
	w.ledgers = append(w.ledgers, l)
	return w.rebuild(l)
}

// RemoveLedger removes a ledger. Removing a bank ledger rebuilds the views.
func (w *Workbook) RemoveLedger(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, i, err := w.find(name)
	if err != nil {
		return err
	}
	w.ledgers = slices.Delete(w.ledgers, i, i+1)
	if l.role == Bank {
		w.rebuildViews()
	}
	return nil
}

// RenameLedger renames a ledger. A bank ledger keeps its currency, so its new
// name must not carry another currency suffix.
func (w *Workbook) RenameLedger(oldName, newName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if err := w.checkFree(newName); err != nil {
		return err
	}
	if l.role == Bank {
		if err := checkBankName(newName, l.currency); err != nil {
			return err
		}
	}
	l.name = newName
	if l.view != nil {
		l.view.Name = newName
	}
	if l.role == Bank {
		w.rebuildViews()
	}
	return nil
}

// RenameBankLedger renames a bank ledger to bank-currency and changes its
// currency accordingly.
func (w *Workbook) RenameBankLedger(oldName, bank, currency string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(oldName)
	if err != nil {
		return err
	}
	if l.role != Bank {
		return fmt.Errorf("%w: %q", ErrNotBank, oldName)
	}
	if err := ValidateCurrency(currency); err != nil {
		return err
	}
	newName := BankLedgerName(bank, currency)
	if newName != oldName {
		if err := w.checkFree(newName); err != nil {
			return err
		}
	}
	l.name, l.currency = newName, currency
	w.rebuildViews()
	return nil
}

// MoveLedger moves a ledger to position index in the tab order.
func (w *Workbook) MoveLedger(name string, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, i, err := w.find(name)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(w.ledgers) {
		return fmt.Errorf("%w: tab %d", ErrOutOfRange, index)
	}
	w.ledgers = slices.Delete(w.ledgers, i, i+1)
	w.ledgers = slices.Insert(w.ledgers, index, l)
	// tab order is the scan order of the views.
	w.rebuildViews()
	return nil
}

// SetExchangeRate sets the rate of a ledger, in home currency per unit.
func (w *Workbook) SetExchangeRate(name string, rate decimal.Decimal) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(name)
	if err != nil {
		return err
	}
	if l.role == Aggregate {
		return fmt.Errorf("%w: %q is an aggregate view, its totals use the bank ledger rates", ErrInvalidRate, name)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	l.rate = rate
	return nil
}

// sourceRoles are the bank ledger columns the views read.
var sourceRoles = []ColumnRole{ColDate, ColCounterAccount, ColDescription, ColInvoiceNo, ColDebit, ColCredit}

// EditCell writes text at (row, col) of a ledger.
//
// Generated rows of views are read-only, as are computed Balance and
// Direction cells. Amounts must not be negative. Editing a source cell of a
// bank ledger rebuilds every view.
func (w *Workbook) EditCell(name string, row, col int, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(name)
	if err != nil {
		return err
	}
	if row < 0 || row >= MaxRows || col < 0 || col >= len(l.columns) {
		return fmt.Errorf("%w: %s(%d,%d)", ErrOutOfRange, name, row, col)
	}
	c := l.columns[col]
	if row < len(l.rows) && l.rows[row].Origin == Generated {
		return fmt.Errorf("%w: %s row %d is generated from %v", ErrReadOnlyCell, name, row+1, l.rows[row].Provenance)
	}
	if l.role != Aggregate {
		switch {
		case c.Role == ColDirection:
			return fmt.Errorf("%w: %s direction is computed", ErrReadOnlyCell, name)
		case c.Role == ColBalance && !(row == 0 && w.opts.OpeningBalanceOverride):
			return fmt.Errorf("%w: %s balance is computed", ErrReadOnlyCell, name)
		}
	}
	switch c.Role {
	case ColDebit, ColCredit, ColSum:
		if v, ok := cellAmount(text); ok && v.IsNegative() {
			return fmt.Errorf("%w: %q", ErrSignedAmount, text)
		}
	case ColBalance:
		if l.role != Aggregate {
			// only reachable for the opening balance.
			opening, err := parseOpening(text)
			if err != nil {
				return err
			}
			l.opening = opening
		}
	}

	l.setCell(row, col, text)
	if l.role == Aggregate {
		return nil
	}
	recomputeBalances(l, w.opts.OpeningBalanceOverride)
	if l.role == Bank && slices.Contains(sourceRoles, c.Role) {
		w.rebuildViews()
	}
	return nil
}

// parseOpening reads a manual opening balance, empty text clears it.
func parseOpening(text string) (*decimal.Decimal, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	v, err := ParseAmount(text)
	if err != nil {
		return nil, fmt.Errorf("invalid opening balance %q: %w", text, err)
	}
	return &v, nil
}

// ActivateView rebuilds the named view.
func (w *Workbook) ActivateView(name string) (RebuildReport, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(name)
	if err != nil {
		return RebuildReport{}, err
	}
	if l.role != Aggregate {
		return RebuildReport{}, fmt.Errorf("%q: %w", name, errNotAView)
	}
	return w.rebuild(l)
}

// Rebuild rebuilds every view.
func (w *Workbook) Rebuild() []RebuildReport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rebuildViews()
}

// Summary returns the totals of a ledger.
func (w *Workbook) Summary(name string) (Summary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, _, err := w.find(name)
	if err != nil {
		return Summary{}, err
	}
	return summarize(l, w.ledgers, w.opts.HomeCurrency), nil
}

func (w *Workbook) rebuild(view *Ledger) (RebuildReport, error) {
	report, err := rebuildView(view, w.ledgers, w.period)
	if err != nil {
		w.log.Error().Err(err).Str("view", view.name).Msg("rebuild failed")
		return report, err
	}
	w.log.Debug().EmbedObject(report).Msg("view rebuilt")
	return report, nil
}

// rebuildViews rebuilds every view. Errors are logged and the failing view
// keeps its previous rows.
func (w *Workbook) rebuildViews() []RebuildReport {
	var reports []RebuildReport
	for _, l := range w.ledgers {
		if l.role != Aggregate {
			continue
		}
		if r, err := w.rebuild(l); err == nil {
			reports = append(reports, r)
		}
	}
	return reports
}
