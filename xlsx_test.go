package ledgerbook

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tealeg/xlsx"
)

// rowValues returns the n first values of r, trailing cells may be absent.
func rowValues(r *xlsx.Row, n int) []string {
	vs := make([]string, n)
	for i := 0; i < n && i < len(r.Cells); i++ {
		vs[i] = r.Cells[i].Value
	}
	return vs
}

func TestExportXLSX(t *testing.T) {
	w := NewDefault(Options{MinRows: 5})
	if err := w.SetExchangeRate("HSBC-USD", dec("7.8")); err != nil {
		t.Fatal(err)
	}
	fill(t, w, "HSBC-USD",
		bankRow{date: "2024/01/10", counter: "销售收入-ABC", credit: "1,000.00"},
		bankRow{date: "2024/01/11", counter: "银行费用", debit: "5"},
	)
	var buf bytes.Buffer
	if err := w.ExportXLSX(&buf); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}
	f, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBinary() error = %v", err)
	}
	if len(f.Sheets) != 7 {
		t.Fatalf("got %d sheets, want 7", len(f.Sheets))
	}

	bank := f.Sheet["HSBC-USD"]
	if bank == nil {
		t.Fatal("no HSBC-USD sheet")
	}
	// header, 2 rows, 2 totals
	if len(bank.Rows) != 5 {
		t.Fatalf("HSBC-USD has %d rows, want 5", len(bank.Rows))
	}
	want := [][]string{
		{"序號", "日期", "對方科目", "摘要", "借方", "貸方", "餘額", "發票號碼"},
		{"", "2024/01/10", "销售收入-ABC", "", "", "1,000.00", "(1,000.00)", ""},
		{"", "2024/01/11", "银行费用", "", "5", "", "(995.00)", ""},
		{"本期TOTAL", "", "", "", "5.00", "1,000.00", "", ""},
		{"本期TOTAL:HKD", "", "", "", "39.00", "7,800.00", "", ""},
	}
	for i, r := range bank.Rows {
		if diff := cmp.Diff(want[i], rowValues(r, len(want[i]))); diff != "" {
			t.Errorf("HSBC-USD row %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	sales := f.Sheet["銷售收入"]
	if sales == nil {
		t.Fatal("no 銷售收入 sheet")
	}
	wantSales := [][]string{
		{"序號", "日期", "對方科目", "摘要", "發票號碼", "原幣(USD)", "餘額", "來源"},
		{"1", "2024/01/10", "销售收入-ABC", "", "", "1000.00", "", "HSBC-USD:1"},
		{"本期TOTAL", "", "", "", "", "1,000.00", "", ""},
		{"本期TOTAL:HKD", "", "", "", "", "", "7,800.00", ""},
	}
	if len(sales.Rows) != len(wantSales) {
		t.Fatalf("銷售收入 has %d rows, want %d", len(sales.Rows), len(wantSales))
	}
	for i, r := range sales.Rows {
		if diff := cmp.Diff(wantSales[i], rowValues(r, len(wantSales[i]))); diff != "" {
			t.Errorf("銷售收入 row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

// statement builds a spreadsheet with one sheet.
func statement(t *testing.T, name string, rows ...[]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	sh, err := f.AddSheet(name)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		xr := sh.AddRow()
		for _, v := range r {
			xr.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImportXLSX(t *testing.T) {
	w := NewDefault(Options{MinRows: 5})
	fill(t, w, "HSBC-USD", bankRow{date: "2024/01/01", counter: "股本", debit: "100"})

	data := statement(t, "Jan",
		[]string{"日期", "对方科目", "摘 要", "借方", "贷方", "余额", "Ignored"},
		[]string{"2024/01/02", "销售收入", "sale", "", "40", "999", "x"},
		[]string{"", "", "", "", "", "", ""},
		[]string{"2024/01/03", "银行费用", "fee", "2", "", "", ""},
		[]string{"本期TOTAL", "", "", "2", "40", "", ""},
	)
	n, err := w.ImportXLSX(data, "Jan", "HSBC-USD")
	if err != nil {
		t.Fatalf("ImportXLSX() error = %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d rows, want 3", n)
	}
	l, _ := w.Ledger("HSBC-USD")
	if got := l.Cell(1, l.Column(ColDescription)); got != "sale" {
		t.Errorf("row 1 description = %q, want sale", got)
	}
	// balances are recomputed, not imported.
	if got := l.Cell(1, l.Column(ColBalance)); got != "60.00" {
		t.Errorf("row 1 balance = %q, want 60.00", got)
	}
	if l.Row(3).Kind != SummaryRow {
		t.Errorf("row 3 kind = %v, want SummaryRow", l.Row(3).Kind)
	}
	debit, credit := Sums(l)
	if !debit.Equal(dec("102")) || !credit.Equal(dec("40")) {
		t.Errorf("Sums() = %v, %v, want 102, 40", debit, credit)
	}
	view, _ := w.Ledger("銷售收入")
	if got := view.Cell(0, view.Column(ColSource)); got != "HSBC-USD:2" {
		t.Errorf("sales view source = %q, want HSBC-USD:2", got)
	}
}

func TestImportXLSX_Rejected(t *testing.T) {
	w := NewDefault(Options{MinRows: 5})
	header := []string{"日期", "對方科目", "借方", "貸方"}
	testCases := []struct {
		name   string
		data   []byte
		sheet  string
		ledger string
		want   error
	}{
		{"aggregate target", statement(t, "S", header), "", "銷售收入", ErrReadOnlyCell},
		{"negative amount", statement(t, "S", header, []string{"2024/01/01", "x", "-5", ""}), "S", "HSBC-USD", ErrSignedAmount},
		{"missing sheet", statement(t, "S", header), "T", "HSBC-USD", ErrNotFound},
		{"missing ledger", statement(t, "S", header), "S", "nope", ErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.ImportXLSX(tc.data, tc.sheet, tc.ledger)
			if !errors.Is(err, tc.want) {
				t.Errorf("ImportXLSX() error = %v, want %v", err, tc.want)
			}
		})
	}
	l, _ := w.Ledger("HSBC-USD")
	if l.LastDataRow() != -1 {
		t.Errorf("a rejected import wrote rows")
	}
}

func TestExportXLSX_HomeCurrency(t *testing.T) {
	w := NewDefault(Options{MinRows: 5, HomeCurrency: "EUR"})
	var buf bytes.Buffer
	if err := w.ExportXLSX(&buf); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}
	f, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"HSBC-USD", "銷售收入"} {
		rows := f.Sheet[name].Rows
		if got := rows[len(rows)-1].Cells[0].Value; got != "本期TOTAL:EUR" {
			t.Errorf("%s home total label = %q, want 本期TOTAL:EUR", name, got)
		}
	}
	s, _ := w.Summary("HSBC-USD")
	if s.HomeCurrency != "EUR" {
		t.Errorf("Summary().HomeCurrency = %q, want EUR", s.HomeCurrency)
	}
}
