package ledgerbook

import (
	"errors"
	"testing"
)

func TestSums_MatchLastBalance(t *testing.T) {
	testCases := []struct {
		name string
		rows []bankRow
	}{
		{"deposits only", []bankRow{{debit: "100"}, {debit: "1,250.50"}}},
		{"mixed", []bankRow{{debit: "100"}, {credit: "30.25"}, {debit: "5", credit: "2"}}},
		{"overdrawn", []bankRow{{credit: "10"}, {debit: "3"}}},
		{"unparsable counts as zero", []bankRow{{debit: "10"}, {credit: "n/a", desc: "x"}, {credit: "4"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := testWorkbook(t)
			if err := w.AddBankLedger("HSBC-USD", ""); err != nil {
				t.Fatal(err)
			}
			fill(t, w, "HSBC-USD", tc.rows...)
			l, _ := w.Ledger("HSBC-USD")

			debit, credit := Sums(l)
			points := RunningBalance(l)
			if len(points) != len(tc.rows) {
				t.Fatalf("RunningBalance() has %d points, want %d", len(points), len(tc.rows))
			}
			last := points[len(points)-1].Balance
			if !debit.Sub(credit).Equal(last) {
				t.Errorf("debit %v - credit %v != last balance %v", debit, credit, last)
			}
		})
	}
}

func TestSummary_HomeTotalFollowsRate(t *testing.T) {
	w := testWorkbook(t)
	if err := w.AddBankLedger("HSBC-USD", ""); err != nil {
		t.Fatal(err)
	}
	fill(t, w, "HSBC-USD",
		bankRow{date: "2024/01/01", counter: "销售收入", credit: "200"},
		bankRow{date: "2024/01/02", counter: "银行费用", debit: "15"},
	)
	if _, err := w.AddAggregateView(SalesRevenue); err != nil {
		t.Fatal(err)
	}
	if err := w.SetExchangeRate("HSBC-USD", dec("7.8")); err != nil {
		t.Fatal(err)
	}
	before, _ := w.Summary("HSBC-USD")
	beforeView, _ := w.Summary("銷售收入")
	beforeDoc := w.Document()

	if err := w.SetExchangeRate("HSBC-USD", dec("7.75")); err != nil {
		t.Fatal(err)
	}
	after, _ := w.Summary("HSBC-USD")
	afterView, _ := w.Summary("銷售收入")

	if !before.HomeCredit.Equal(dec("1560")) || !after.HomeCredit.Equal(dec("1550")) {
		t.Errorf("HomeCredit = %v then %v, want 1560 then 1550", before.HomeCredit, after.HomeCredit)
	}
	// after / before == r2 / r1
	if !after.HomeCredit.Mul(dec("7.8")).Equal(before.HomeCredit.Mul(dec("7.75"))) {
		t.Errorf("HomeCredit did not scale with the rate")
	}
	if !after.HomeDebit.Equal(dec("116.25")) {
		t.Errorf("HomeDebit = %v, want 116.25", after.HomeDebit)
	}
	if !beforeView.HomeTotal.Equal(dec("1560")) || !afterView.HomeTotal.Equal(dec("1550")) {
		t.Errorf("view HomeTotal = %v then %v, want 1560 then 1550", beforeView.HomeTotal, afterView.HomeTotal)
	}
	if !after.Credit.Equal(before.Credit) || !after.Debit.Equal(before.Debit) {
		t.Errorf("native totals changed with the rate")
	}

	afterDoc := w.Document()
	for i := range beforeDoc.Sheets {
		b, a := beforeDoc.Sheets[i], afterDoc.Sheets[i]
		for k, v := range b.Cells {
			if a.Cells[k] != v {
				t.Errorf("%s cell %s changed from %q to %q", b.Name, k, v, a.Cells[k])
			}
		}
	}
}

func TestSummary_UserRowsUseBankRate(t *testing.T) {
	w := testWorkbook(t)
	for _, name := range []string{"HSBC-USD", "BOC-USD"} {
		if err := w.AddBankLedger(name, ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.SetExchangeRate("HSBC-USD", dec("7.8")); err != nil {
		t.Fatal(err)
	}
	if err := w.SetExchangeRate("BOC-USD", dec("7")); err != nil {
		t.Fatal(err)
	}
	fill(t, w, "BOC-USD", bankRow{date: "2024/01/01", counter: "银行费用", debit: "10"})
	if _, err := w.AddAggregateView(BankFees); err != nil {
		t.Fatal(err)
	}
	view, _ := w.Ledger("銀行費用")
	if err := w.EditCell("銀行費用", 3, sumColumn(t, view, "USD"), "1"); err != nil {
		t.Fatal(err)
	}
	s, _ := w.Summary("銀行費用")
	// 10 at the BOC rate, 1 at the rate of the first USD ledger.
	if !s.HomeTotal.Equal(dec("77.8")) {
		t.Errorf("HomeTotal = %v, want 77.8", s.HomeTotal)
	}
	if !s.ByCurrency["USD"].Equal(dec("11")) {
		t.Errorf("ByCurrency = %v, want USD 11", s.ByCurrency)
	}
}

func TestSetExchangeRate_Invalid(t *testing.T) {
	w := NewDefault(Options{MinRows: 5})
	testCases := []struct {
		name   string
		ledger string
		rate   string
	}{
		{"zero", "HSBC-USD", "0"},
		{"negative", "HSBC-USD", "-1"},
		{"aggregate view", "銷售收入", "7.8"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := w.SetExchangeRate(tc.ledger, dec(tc.rate))
			if !errors.Is(err, ErrInvalidRate) {
				t.Errorf("SetExchangeRate(%q, %s) error = %v, want ErrInvalidRate", tc.ledger, tc.rate, err)
			}
		})
	}
}
