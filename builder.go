package ledgerbook

import (
	"errors"
	"slices"
	"sort"
	"strconv"

	"github.com/etnz/ledgerbook/date"
	"github.com/rs/zerolog"
)

// RebuildReport sums up a rebuild of an aggregate view.
type RebuildReport struct {
	View              string
	Matched           int // bank rows matching the subject filter
	Generated         int // generated rows written
	Preserved         int // user rows restored
	Relocated         int // user rows moved off their index
	UnparsableDates   int // matched rows sorted first for lack of a date
	UnparsableAmounts int // matched rows with an unreadable or signed amount
	MissingColumns    int // matched rows whose ledger lacks the amount column
	OutOfPeriod       int // matched rows dated outside the workbook period
}

// MarshalZerologObject logs the report as a structured event.
func (r RebuildReport) MarshalZerologObject(e *zerolog.Event) {
	e.Str("view", r.View).
		Int("matched", r.Matched).
		Int("generated", r.Generated).
		Int("preserved", r.Preserved).
		Int("relocated", r.Relocated).
		Int("unparsable_dates", r.UnparsableDates).
		Int("unparsable_amounts", r.UnparsableAmounts).
		Int("missing_columns", r.MissingColumns).
		Int("out_of_period", r.OutOfPeriod)
}

var errNotAView = errors.New("ledger is not an aggregate view")

// candidate is a matching bank row waiting to be projected.
type candidate struct {
	on         date.Date
	dateText   string
	counter    string
	desc       string
	invoice    string
	amount     string // canonical amount or ""
	currency   string
	provenance Provenance
}

// collect scans the bank ledgers, in order, for rows matching the view.
func collect(spec ViewSpec, sources []*Ledger, period date.Range, report *RebuildReport) []candidate {
	m := SubjectMatcher{Filter: spec.SubjectFilter}
	var cands []candidate
	for _, l := range sources {
		if l.role != Bank {
			continue
		}
		var (
			dateCol    = l.Column(ColDate)
			counterCol = l.Column(ColCounterAccount)
			descCol    = l.Column(ColDescription)
			invoiceCol = l.Column(ColInvoiceNo)
			amountCol  = l.Column(spec.Amount)
		)
		for i := range l.rows {
			if !m.MatchRow(l, i) {
				continue
			}
			report.Matched++
			row := l.rows[i]
			c := candidate{
				dateText:   row.Cell(dateCol),
				counter:    row.Cell(counterCol),
				desc:       row.Cell(descCol),
				invoice:    row.Cell(invoiceCol),
				currency:   l.currency,
				provenance: Provenance{Ledger: l.name, Row: i},
			}
			on, ok := date.ParseOrMin(c.dateText)
			switch {
			case !ok:
				report.UnparsableDates++
			case !period.Contains(on):
				report.OutOfPeriod++
			}
			c.on = on

			if amountCol < 0 {
				report.MissingColumns++
			} else if text := row.Cell(amountCol); text != "" {
				// signed text can only come from an old document.
				if d, ok := cellAmount(text); ok && !d.IsNegative() {
					c.amount = CanonicalAmount(d)
				} else {
					report.UnparsableAmounts++
				}
			}
			cands = append(cands, c)
		}
	}
	// Stable: equal dates keep the scan order, ledger then row index.
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].on.Before(cands[j].on) })
	return cands
}

// rebuildView replaces the generated rows of view with the rows matching its
// subject filter in sources, and restores the user rows.
//
// The new rows are computed aside and committed at the end: on error the
// view is left untouched.
func rebuildView(view *Ledger, sources []*Ledger, period date.Range) (RebuildReport, error) {
	report := RebuildReport{View: view.name}
	if view.view == nil {
		return report, errNotAView
	}
	spec := *view.view
	if err := spec.Validate(); err != nil {
		return report, err
	}

	user := CaptureUserRows(view)

	// keep a column for every currency still holding user text.
	currencies := append(ActiveCurrencies(sources), user.currencies()...)
	slices.Sort(currencies)
	currencies = slices.Compact(currencies)

	columns, ccols := aggregateColumns(spec, currencies)
	next := &Ledger{
		name:            view.name,
		role:            view.role,
		currency:        view.currency,
		rate:            view.rate,
		view:            view.view,
		columns:         columns,
		minRows:         view.minRows,
		currencyColumns: ccols,
	}

	var (
		seqCol     = next.Column(ColSequence)
		dateCol    = next.Column(ColDate)
		counterCol = next.Column(ColCounterAccount)
		descCol    = next.Column(ColDescription)
		invoiceCol = next.Column(ColInvoiceNo)
		sourceCol  = next.Column(ColSource)
		amountCol  = next.Column(spec.Amount) // legacy single column, -1 otherwise
	)
	sumCol := make(map[string]int, len(ccols))
	for _, cc := range ccols {
		sumCol[cc.Currency] = cc.Index
	}

	cands := collect(spec, sources, period, &report)
	next.rows = make([]Row, len(cands))
	for i, c := range cands {
		p := c.provenance
		row := Row{Origin: Generated, Provenance: &p}
		row.set(seqCol, strconv.Itoa(i+1))
		row.set(dateCol, c.dateText)
		row.set(counterCol, c.counter)
		row.set(descCol, c.desc)
		row.set(invoiceCol, c.invoice)
		if spec.MultiCurrency {
			if col, ok := sumCol[c.currency]; ok {
				row.set(col, c.amount)
			}
		} else {
			row.set(amountCol, c.amount)
		}
		row.set(sourceCol, p.String())
		next.rows[i] = row
	}
	report.Generated = len(cands)
	report.Preserved = len(user.Rows)
	report.Relocated = RestoreUserRows(next, user, len(cands), spec.Preserve)
	next.grow(next.minRows)

	*view = *next
	return report, nil
}
