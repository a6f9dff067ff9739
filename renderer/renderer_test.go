package renderer

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/etnz/ledgerbook"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// sample returns a workbook with two sales on the default bank ledger.
func sample(t *testing.T) *ledgerbook.Workbook {
	t.Helper()
	w := ledgerbook.NewDefault(ledgerbook.Options{MinRows: 5})
	w.SetCompany("ACME Ltd")
	if err := w.SetExchangeRate("HSBC-USD", decimal.RequireFromString("7.8")); err != nil {
		t.Fatal(err)
	}
	bank, err := w.Ledger("HSBC-USD")
	if err != nil {
		t.Fatal(err)
	}
	rows := [][3]string{
		{"2024/01/10", "销售收入-ABC", "1,000.00"},
		{"2024/02/10", "销售收入|XYZ", "250"},
	}
	for i, r := range rows {
		edits := map[ledgerbook.ColumnRole]string{
			ledgerbook.ColDate:           r[0],
			ledgerbook.ColCounterAccount: r[1],
			ledgerbook.ColCredit:         r[2],
		}
		for role, v := range edits {
			if err := w.EditCell("HSBC-USD", i, bank.Column(role), v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return w
}

// walk parses a markdown document and counts its headings and tables.
func walk(t *testing.T, src string) (headings, tables, tableRows int) {
	t.Helper()
	gm := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := gm.Parser().Parse(text.NewReader([]byte(src)))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			headings++
		case extast.KindTable:
			tables++
		case extast.KindTableRow:
			tableRows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return headings, tables, tableRows
}

func TestLedgerMarkdown(t *testing.T) {
	w := sample(t)
	testCases := []struct {
		ledger   string
		wantRows int // data rows and the two total rows
		contains []string
	}{
		{"HSBC-USD", 4, []string{"# HSBC-USD", "exchange rate 7.8", "本期TOTAL:HKD", "1,250.00", "9,750.00", `销售收入\|XYZ`}},
		{"銷售收入", 4, []string{"# 銷售收入", "0 user rows", "HSBC-USD:2", "9,750.00"}},
		{"銀行費用", 2, []string{"本期TOTAL"}},
	}
	for _, tc := range testCases {
		t.Run(tc.ledger, func(t *testing.T) {
			l, err := w.Ledger(tc.ledger)
			if err != nil {
				t.Fatal(err)
			}
			s, err := w.Summary(tc.ledger)
			if err != nil {
				t.Fatal(err)
			}
			got := LedgerMarkdown(l, s)
			headings, tables, rows := walk(t, got)
			if headings != 1 || tables != 1 {
				t.Errorf("got %d headings and %d tables, want 1 and 1:\n%s", headings, tables, got)
			}
			if rows != tc.wantRows {
				t.Errorf("got %d table rows, want %d:\n%s", rows, tc.wantRows, got)
			}
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output does not contain %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderOverview(t *testing.T) {
	w := sample(t)
	o, err := NewOverview(w)
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Sheets) != 7 {
		t.Fatalf("got %d sheets, want 7", len(o.Sheets))
	}
	if got := o.Sheets[1]; got.Name != "銷售收入" || got.Totals != "USD 1,250.00" || got.Home != "9,750.00" {
		t.Errorf("sales line = %+v", got)
	}
	if got := o.Sheets[0]; got.Totals != "D 0.00 / C 1,250.00" || got.Rate != "7.8" {
		t.Errorf("bank line = %+v", got)
	}

	out := RenderOverview(o)
	if strings.HasPrefix(out, "error") {
		t.Fatal(out)
	}
	headings, tables, rows := walk(t, out)
	if headings != 2 || tables != 1 || rows != 7 {
		t.Errorf("got %d headings, %d tables, %d rows:\n%s", headings, tables, rows, out)
	}
	if !strings.Contains(out, "# ACME Ltd") {
		t.Errorf("missing company title:\n%s", out)
	}
}

func TestBalanceChart(t *testing.T) {
	w := sample(t)
	l, _ := w.Ledger("HSBC-USD")
	data, err := BalanceChart(l)
	if err != nil {
		t.Fatalf("BalanceChart() error = %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("not a PNG: %v", err)
	}

	empty, _ := w.Ledger("銀行費用")
	if _, err := BalanceChart(empty); !errors.Is(err, ErrNotEnoughPoints) {
		t.Errorf("BalanceChart(empty) error = %v, want ErrNotEnoughPoints", err)
	}
}
