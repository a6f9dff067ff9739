package ledgerbook

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/ledgerbook/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// sampleWorkbook returns a workbook using every feature of the document.
func sampleWorkbook(t *testing.T) *Workbook {
	t.Helper()
	w := NewDefault(Options{MinRows: 8})
	w.SetCompany("ACME Ltd")
	period, err := date.ParseRange("2024/01/01", "2024/12/31")
	if err != nil {
		t.Fatal(err)
	}
	w.SetPeriod(period)
	if err := w.AddBankLedger("BOC-EUR", ""); err != nil {
		t.Fatal(err)
	}
	if err := w.SetExchangeRate("BOC-EUR", dec("8.5")); err != nil {
		t.Fatal(err)
	}
	if err := w.AddPayableLedger("應付明細"); err != nil {
		t.Fatal(err)
	}
	fill(t, w, "HSBC-USD",
		bankRow{date: "2024/01/10", counter: "董事往来", credit: "500", invoice: "INV-1"},
		bankRow{date: "2024/01/12", counter: "销售收入-ABC", credit: "1,000.00"},
	)
	fill(t, w, "BOC-EUR", bankRow{date: "2024/01/11", counter: "董事往来", credit: "20"})

	view, _ := w.Ledger("董事往來")
	if err := w.EditCell("董事往來", 5, view.Column(ColDescription), "手動輸入"); err != nil {
		t.Fatal(err)
	}
	if err := w.EditCell("董事往來", 5, sumColumn(t, view, "USD"), "50.00"); err != nil {
		t.Fatal(err)
	}
	payable, _ := w.Ledger("應付明細")
	if err := w.EditCell("應付明細", 0, payable.Column(ColRemark), "to check"); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestEncode_RoundTrip(t *testing.T) {
	w := sampleWorkbook(t)
	path := filepath.Join(t.TempDir(), "workbook.json")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Open(path, Options{MinRows: 8})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if diff := cmp.Diff(w.Document(), loaded.Document(), cmpOpts); diff != "" {
		t.Errorf("document mismatch after round trip (-want +got):\n%s", diff)
	}

	view, _ := loaded.Ledger("董事往來")
	if view.Row(5).Origin != UserEntered || view.Cell(5, view.Column(ColDescription)) != "手動輸入" {
		t.Errorf("user row lost: %v", readRow(view, 5))
	}
	if got := view.Cell(1, view.Column(ColSource)); got != "BOC-EUR:1" {
		t.Errorf("view not rebuilt on load, row 1 source = %q", got)
	}
	if got := loaded.Period().String(); got != "2024/01/01 - 2024/12/31" {
		t.Errorf("Period() = %q", got)
	}
	s, _ := loaded.Summary("BOC-EUR")
	if !s.Rate.Equal(dec("8.5")) {
		t.Errorf("rate = %v, want 8.5", s.Rate)
	}
}

func TestEncode_AggregateCellsAreNotSaved(t *testing.T) {
	doc := sampleWorkbook(t).Document()
	for _, s := range doc.Sheets {
		if s.Role != Aggregate.String() {
			continue
		}
		if len(s.Cells) != 0 {
			t.Errorf("%s saved %d cells", s.Name, len(s.Cells))
		}
		if s.Name == "董事往來" {
			if len(s.UserAddedRows) != 1 || s.UserAddedRows[0].Row != 5 {
				t.Errorf("%s user rows = %+v", s.Name, s.UserAddedRows)
			}
		}
	}
}

func TestDecode_LegacyDocument(t *testing.T) {
	const doc = `{
  "company": "Old Co",
  "period_from": "2023/4/1",
  "period_to": "2024/3/31",
  "tab_order": ["銷售收入"],
  "sheets": [
    {"name": "銷售收入", "cells": {}},
    {"name": "HSBC-USD", "type": "bank", "exchange_rate": 7.8,
     "cells": {"0,1": "2023/05/01", "0,2": "销售收入", "0,5": "10"}},
    {"name": "工資", "type": "aggregate", "cells": {"0,3": "x"}},
    {"name": "Notes", "cells": {}}
  ]
}`
	w := New(Options{MinRows: 5})
	if err := w.Decode(strings.NewReader(doc)); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff([]string{"銷售收入", "HSBC-USD", "工資", "Notes"}, w.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	roles := map[string]Role{"銷售收入": Aggregate, "HSBC-USD": Bank, "工資": NonBank, "Notes": Regular}
	for name, want := range roles {
		l, _ := w.Ledger(name)
		if l.Role() != want {
			t.Errorf("%s role = %v, want %v", name, l.Role(), want)
		}
	}
	s, _ := w.Summary("銷售收入")
	if !s.HomeTotal.Equal(dec("78")) {
		t.Errorf("HomeTotal = %v, want 78", s.HomeTotal)
	}
}

func TestDecode_FailureLeavesWorkbookUnchanged(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"unknown currency", `{"sheets": [{"name": "HSBC-XYZ", "role": "bank", "cells": {}}]}`},
		{"bad cell key", `{"sheets": [{"name": "Notes", "role": "regular", "cells": {"a,b": "x"}}]}`},
		{"column out of range", `{"sheets": [{"name": "Notes", "role": "regular", "cells": {"0,42": "x"}}]}`},
		{"negative rate", `{"sheets": [{"name": "HSBC-USD", "role": "bank", "exchange_rate": -1, "cells": {}}]}`},
		{"duplicate sheets", `{"sheets": [{"name": "N", "role": "regular", "cells": {}}, {"name": "N", "role": "regular", "cells": {}}]}`},
		{"future version", `{"version": 99, "sheets": []}`},
		{"too many rows", `{"sheets": [{"name": "Notes", "role": "regular", "rows": 2000000000, "cells": {}}]}`},
		{"cell row out of range", `{"sheets": [{"name": "Notes", "role": "regular", "cells": {"2000000000,0": "x"}}]}`},
		{"summary row out of range", `{"sheets": [{"name": "Notes", "role": "regular", "cells": {}, "summary_rows": [2000000000]}]}`},
		{"user row out of range", `{"sheets": [{"name": "銷售收入", "cells": {}, "user_added_rows": [{"row": 2000000000, "cells": ["x"]}]}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := sampleWorkbook(t)
			before := w.Document()
			if err := w.Decode(strings.NewReader(tc.doc)); err == nil {
				t.Fatal("Decode() succeeded")
			}
			if diff := cmp.Diff(before, w.Document(), cmpOpts); diff != "" {
				t.Errorf("workbook changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.json"), Options{})
	if err == nil {
		t.Fatal("Open() succeeded on a missing file")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("a missing file is not a missing ledger")
	}
}

func TestDecode_SignedSourceAmount(t *testing.T) {
	const doc = `{
  "sheets": [
    {"name": "HSBC-USD", "role": "bank",
     "cells": {"0,1": "2024/01/02", "0,2": "销售收入", "0,5": "(5.00)",
               "1,1": "2024/01/03", "1,2": "销售收入", "1,5": "7"}},
    {"name": "銷售收入", "cells": {}}
  ]
}`
	w := New(Options{MinRows: 5})
	if err := w.Decode(strings.NewReader(doc)); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	view, _ := w.Ledger("銷售收入")
	usd := sumColumn(t, view, "USD")
	got := []string{view.Cell(0, usd), view.Cell(1, usd)}
	if diff := cmp.Diff([]string{"", "7.00"}, got); diff != "" {
		t.Errorf("USD amounts mismatch (-want +got):\n%s", diff)
	}
	if got := view.Cell(0, view.Column(ColSource)); got != "HSBC-USD:1" {
		t.Errorf("row with a signed amount dropped, source = %q", got)
	}
	reports := w.Rebuild()
	if len(reports) != 1 || reports[0].UnparsableAmounts != 1 {
		t.Errorf("Rebuild() = %+v, want one unparsable amount", reports)
	}
}
