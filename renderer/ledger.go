package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/ledgerbook"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders the rows of l up to the last one holding data,
// followed by its two total rows.
func LedgerMarkdown(l *ledgerbook.Ledger, s ledgerbook.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(l.Name())
	doc.PlainText(describe(l))

	var header []string
	for _, c := range l.Columns() {
		header = append(header, c.Label)
	}
	rows := [][]string{}
	for i := 0; i <= l.LastDataRow(); i++ {
		row := l.Row(i)
		cells := make([]string, len(header))
		for c := range cells {
			cells[c] = escapeCell(row.Cell(c))
		}
		if row.Origin == ledgerbook.Generated && cells[0] != "" {
			cells[0] = md.Bold(cells[0])
		}
		rows = append(rows, cells)
	}
	native, home := ledgerbook.TotalRows(l, s)
	rows = append(rows, native, home)
	doc.Table(md.TableSet{Header: header, Rows: rows})

	return doc.String()
}

func describe(l *ledgerbook.Ledger) string {
	switch l.Role() {
	case ledgerbook.Bank:
		return fmt.Sprintf("Bank ledger in %s, exchange rate %s.", l.Currency(), l.ExchangeRate())
	case ledgerbook.Aggregate:
		spec, _ := l.View()
		return fmt.Sprintf("Aggregate view of the bank rows on %q, %d user rows.", spec.SubjectFilter, userRows(l))
	default:
		return fmt.Sprintf("Ledger with role %s.", l.Role())
	}
}

func userRows(l *ledgerbook.Ledger) int {
	n := 0
	for i := 0; i < l.RowCount(); i++ {
		if r := l.Row(i); r.Origin == ledgerbook.UserEntered && !r.IsEmpty() {
			n++
		}
	}
	return n
}

func escapeCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
