package ledgerbook

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"
)

// maxSheetName is the longest sheet name a spreadsheet accepts.
const maxSheetName = 31

// generatedFill is the background of generated rows.
const generatedFill = "FFC6EFCE"

func sheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}

// ExportXLSX writes the workbook as a spreadsheet: one sheet per ledger in
// tab order with a header row, the rows up to the last one holding data and
// the two total rows.
func (w *Workbook) ExportXLSX(out io.Writer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	generated := xlsx.NewStyle()
	generated.Fill = *xlsx.NewFill("solid", generatedFill, generatedFill)
	generated.ApplyFill = true
	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	f := xlsx.NewFile()
	for _, l := range w.ledgers {
		sh, err := f.AddSheet(sheetName(l.name))
		if err != nil {
			return fmt.Errorf("could not add sheet %q: %w", l.name, err)
		}
		header := sh.AddRow()
		for _, c := range l.columns {
			cell := header.AddCell()
			cell.SetString(c.Label)
			cell.SetStyle(bold)
		}
		for i := 0; i <= l.LastDataRow(); i++ {
			row := l.rows[i]
			xr := sh.AddRow()
			for c := range l.columns {
				cell := xr.AddCell()
				cell.SetString(row.Cell(c))
				if row.Origin == Generated {
					cell.SetStyle(generated)
				}
			}
		}
		native, home := TotalRows(l, summarize(l, w.ledgers, w.opts.HomeCurrency))
		for _, cells := range [][]string{native, home} {
			xr := sh.AddRow()
			for _, text := range cells {
				cell := xr.AddCell()
				cell.SetString(text)
				cell.SetStyle(bold)
			}
		}
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("could not write spreadsheet: %w", err)
	}
	return nil
}

// TotalRows lays the totals of l out in its columns: the native totals under
// the amount columns, the home currency totals in the row below.
func TotalRows(l *Ledger, s Summary) (native, home []string) {
	native = make([]string, len(l.columns))
	home = make([]string, len(l.columns))
	native[0], home[0] = TotalLabel, TotalHomeLabel(s.HomeCurrency)

	if l.role != Aggregate {
		if c := l.Column(ColDebit); c >= 0 {
			native[c], home[c] = FormatAmount(s.Debit), FormatAmount(s.HomeDebit)
		}
		if c := l.Column(ColCredit); c >= 0 {
			native[c], home[c] = FormatAmount(s.Credit), FormatAmount(s.HomeCredit)
		}
		return native, home
	}
	if spec, ok := l.View(); ok && !spec.MultiCurrency {
		if c := l.Column(spec.Amount); c >= 0 {
			native[c] = FormatAmount(s.ByCurrency[""])
		}
	}
	for _, cc := range l.currencyColumns {
		native[cc.Index] = FormatAmount(s.ByCurrency[cc.Currency])
	}
	if c := l.Column(ColBalance); c >= 0 {
		home[c] = FormatAmount(s.HomeTotal)
	}
	return native, home
}

// labelAliases maps the simplified spelling of column labels found in
// imported files to the sheet labels.
var labelAliases = map[string]string{
	"序号":   labelSequence,
	"对方科目": labelCounterAccount,
	"摘要":   labelDescription,
	"发票号码": labelInvoiceNo,
	"借方":   labelDebit,
	"贷方":   labelCredit,
	"余额":   labelBalance,
	"备注":   labelRemark,
	"借或贷":  labelDirection,
}

func normalizeLabel(s string) string {
	s = strings.Join(strings.Fields(s), "")
	if alias, ok := labelAliases[s]; ok {
		return alias
	}
	return s
}

// ImportXLSXFile imports a sheet of a spreadsheet file into a ledger, see
// ImportXLSX.
func (w *Workbook) ImportXLSXFile(path, sheet, ledger string) (int, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("could not open spreadsheet %q: %w", path, err)
	}
	return w.importFile(f, sheet, ledger)
}

// ImportXLSX appends the rows of a spreadsheet sheet to a ledger and returns
// the number of rows imported. The first row is the header: columns are
// matched by label, unknown and computed columns are ignored. Rows starting
// with the total label are imported as summary rows. An empty sheet name
// reads the first sheet.
//
// Nothing is imported when a row is invalid.
func (w *Workbook) ImportXLSX(data []byte, sheet, ledger string) (int, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return 0, fmt.Errorf("could not read spreadsheet: %w", err)
	}
	return w.importFile(f, sheet, ledger)
}

func (w *Workbook) importFile(f *xlsx.File, sheet, ledger string) (int, error) {
	var sh *xlsx.Sheet
	switch {
	case sheet == "" && len(f.Sheets) > 0:
		sh = f.Sheets[0]
	case sheet != "":
		sh = f.Sheet[sheet]
	}
	if sh == nil {
		return 0, fmt.Errorf("%w: sheet %q", ErrNotFound, sheet)
	}
	if len(sh.Rows) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	target, i, err := w.find(ledger)
	if err != nil {
		return 0, err
	}
	if target.role == Aggregate {
		return 0, fmt.Errorf("%w: %q is an aggregate view", ErrReadOnlyCell, ledger)
	}

	// column of the ledger for every spreadsheet column, -1 to skip.
	byLabel := make(map[string]int)
	for c, spec := range target.columns {
		if spec.Role != ColBalance && spec.Role != ColDirection {
			byLabel[spec.Label] = c
		}
	}
	var mapping []int
	matched := 0
	for _, cell := range sh.Rows[0].Cells {
		c, ok := byLabel[normalizeLabel(cell.Value)]
		if !ok {
			c = -1
		} else {
			matched++
		}
		mapping = append(mapping, c)
	}
	if matched == 0 {
		return 0, fmt.Errorf("sheet %q: no column of %q in the header row", sh.Name, ledger)
	}

	next := target.clone()
	at := next.LastDataRow() + 1
	var errs []error
	n := 0
	for r, xr := range sh.Rows[1:] {
		row := Row{}
		for j, cell := range xr.Cells {
			text := strings.TrimSpace(cell.Value)
			if j == 0 && strings.HasPrefix(text, TotalLabel) {
				row.Kind = SummaryRow
			}
			if j >= len(mapping) || mapping[j] < 0 || text == "" {
				continue
			}
			switch next.columns[mapping[j]].Role {
			case ColDebit, ColCredit:
				if v, ok := cellAmount(text); ok && v.IsNegative() {
					errs = append(errs, fmt.Errorf("row %d: %w: %q", r+2, ErrSignedAmount, text))
				}
			}
			row.set(mapping[j], text)
		}
		if row.IsEmpty() && row.Kind == DataRow {
			continue
		}
		next.grow(at + 1)
		next.rows[at] = row
		at++
		n++
	}
	if err := errors.Join(errs...); err != nil {
		return 0, fmt.Errorf("could not import sheet %q: %w", sh.Name, err)
	}

	recomputeBalances(next, w.opts.OpeningBalanceOverride)
	w.ledgers[i] = next
	if next.role == Bank {
		w.rebuildViews()
	}
	w.log.Info().Str("sheet", sh.Name).Str("ledger", ledger).Int("rows", n).Msg("spreadsheet imported")
	return n, nil
}

