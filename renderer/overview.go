package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/ledgerbook"
)

// Overview lists the sheets of a workbook with their totals.
type Overview struct {
	Company      string
	Period       string
	HomeCurrency string
	Sheets       []OverviewSheet
}

// OverviewSheet is one line of the Overview, with preformatted amounts.
type OverviewSheet struct {
	Tab      int // 1-based
	Name     string
	Role     string
	Currency string
	Rate     string
	Totals   string
	Home     string
}

// NewOverview summarizes every sheet of w.
func NewOverview(w *ledgerbook.Workbook) (*Overview, error) {
	o := &Overview{
		Company:      w.Company(),
		HomeCurrency: w.Options().HomeCurrency,
	}
	if p := w.Period(); !p.IsZero() {
		o.Period = p.String()
	}
	for i, name := range w.Names() {
		s, err := w.Summary(name)
		if err != nil {
			return nil, err
		}
		line := OverviewSheet{Tab: i + 1, Name: name, Role: s.Role.String()}
		if s.Role == ledgerbook.Bank {
			line.Currency = s.Currency
			line.Rate = s.Rate.String()
		}
		if s.Role == ledgerbook.Aggregate {
			var parts []string
			for _, cur := range s.Currencies() {
				label := cur
				if label == "" {
					label = "total"
				}
				parts = append(parts, fmt.Sprintf("%s %s", label, ledgerbook.FormatAmount(s.ByCurrency[cur])))
			}
			line.Totals = strings.Join(parts, ", ")
			line.Home = ledgerbook.FormatAmount(s.HomeTotal)
		} else {
			line.Totals = fmt.Sprintf("D %s / C %s", ledgerbook.FormatAmount(s.Debit), ledgerbook.FormatAmount(s.Credit))
			line.Home = fmt.Sprintf("D %s / C %s", ledgerbook.FormatAmount(s.HomeDebit), ledgerbook.FormatAmount(s.HomeCredit))
		}
		o.Sheets = append(o.Sheets, line)
	}
	return o, nil
}
