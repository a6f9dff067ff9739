package ledgerbook

import (
	"errors"
	"fmt"

	"github.com/etnz/ledgerbook/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exchangeTagPrefix starts the description shared by both rows of a currency
// exchange.
const exchangeTagPrefix = "CurrencyEx-"

// transitAccount is the sub-account of exchange rows.
const transitAccount = "中转"

// ExchangeRequest describes a transfer between two bank ledgers in different
// currencies.
type ExchangeRequest struct {
	Date       date.Date
	From       string          // ledger the money leaves
	FromAmount decimal.Decimal // in the From currency
	To         string          // ledger the money enters
	ToAmount   decimal.Decimal // in the To currency
}

// ExchangeResult locates the rows written by Exchange.
type ExchangeResult struct {
	Tag     string
	FromRow int
	ToRow   int
}

func newExchangeTag() string {
	id := uuid.New()
	return exchangeTagPrefix + fmt.Sprintf("%x", id[:4])
}

// Exchange records a currency exchange: a Credit row in the From ledger and
// a Debit row in the To ledger, each naming the other ledger as
// counter-account and sharing a unique description. Rows go into the first
// empty row of each ledger.
func (w *Workbook) Exchange(req ExchangeRequest) (ExchangeResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	from, _, err := w.find(req.From)
	if err != nil {
		errs = append(errs, err)
	} else if from.role != Bank {
		errs = append(errs, fmt.Errorf("%w: %q", ErrNotBank, req.From))
	}
	to, _, err := w.find(req.To)
	if err != nil {
		errs = append(errs, err)
	} else if to.role != Bank {
		errs = append(errs, fmt.Errorf("%w: %q", ErrNotBank, req.To))
	}
	if req.From == req.To {
		errs = append(errs, fmt.Errorf("cannot exchange %q with itself", req.From))
	}
	if !req.FromAmount.IsPositive() {
		errs = append(errs, fmt.Errorf("from amount must be positive: %v", req.FromAmount))
	}
	if !req.ToAmount.IsPositive() {
		errs = append(errs, fmt.Errorf("to amount must be positive: %v", req.ToAmount))
	}
	if req.Date.IsZero() {
		errs = append(errs, errors.New("exchange date is missing"))
	}
	if err := errors.Join(errs...); err != nil {
		return ExchangeResult{}, fmt.Errorf("invalid exchange: %w", err)
	}

	res := ExchangeResult{Tag: newExchangeTag()}
	res.FromRow = writeTransfer(from, req.Date, to.name, res.Tag, ColCredit, req.FromAmount)
	res.ToRow = writeTransfer(to, req.Date, from.name, res.Tag, ColDebit, req.ToAmount)
	recomputeBalances(from, w.opts.OpeningBalanceOverride)
	recomputeBalances(to, w.opts.OpeningBalanceOverride)
	w.rebuildViews()

	w.log.Info().Str("tag", res.Tag).
		Str("from", from.name).Str("from_amount", req.FromAmount.String()).
		Str("to", to.name).Str("to_amount", req.ToAmount.String()).
		Msg("currency exchange recorded")
	return res, nil
}

// writeTransfer writes one side of an exchange and returns its row.
func writeTransfer(l *Ledger, on date.Date, counter, tag string, side ColumnRole, amount decimal.Decimal) int {
	row := firstEmptyRow(l)
	l.setCell(row, l.Column(ColDate), on.String())
	l.setCell(row, l.Column(ColCounterAccount), counter)
	if col := l.Column(ColSubAccount); col >= 0 {
		l.setCell(row, col, transitAccount)
	}
	l.setCell(row, l.Column(ColDescription), tag)
	l.setCell(row, l.Column(side), CanonicalAmount(amount))
	return row
}

// firstEmptyRow returns the first data row without any entered data.
func firstEmptyRow(l *Ledger) int {
	computed := []int{l.Column(ColBalance), l.Column(ColDirection)}
	for i := range l.rows {
		if l.rows[i].Kind != SummaryRow && !l.hasData(i, computed...) {
			return i
		}
	}
	return len(l.rows)
}
