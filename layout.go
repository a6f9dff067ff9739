package ledgerbook

// column labels, as printed on the sheets.
const (
	labelSequence       = "序號"
	labelDate           = "日期"
	labelCounterAccount = "對方科目"
	labelSubAccount     = "子科目"
	labelDescription    = "摘要"
	labelInvoiceNo      = "發票號碼"
	labelDebit          = "借方"
	labelCredit         = "貸方"
	labelBalance        = "餘額"
	labelSource         = "來源"
	labelRemark         = "備註"
	labelDirection      = "借或貸"
	labelAmountGroup    = "原幣"
)

// columnsFor returns the role-determined layout of a non aggregate ledger.
func columnsFor(role Role) []ColumnSpec {
	switch role {
	case Bank:
		return []ColumnSpec{
			{Label: labelSequence, Role: ColSequence},
			{Label: labelDate, Role: ColDate},
			{Label: labelCounterAccount, Role: ColCounterAccount},
			{Label: labelDescription, Role: ColDescription},
			{Label: labelDebit, Role: ColDebit},
			{Label: labelCredit, Role: ColCredit},
			{Label: labelBalance, Role: ColBalance},
			{Label: labelInvoiceNo, Role: ColInvoiceNo},
		}
	case NonBank:
		return []ColumnSpec{
			{Label: labelSequence, Role: ColSequence},
			{Label: labelDate, Role: ColDate},
			{Label: labelCounterAccount, Role: ColCounterAccount},
			{Label: labelSubAccount, Role: ColSubAccount},
			{Label: labelDescription, Role: ColDescription},
			{Label: labelDebit, Role: ColDebit},
			{Label: labelCredit, Role: ColCredit},
			{Label: labelBalance, Role: ColBalance},
			{Label: labelInvoiceNo, Role: ColInvoiceNo},
		}
	case PayableDetail:
		return []ColumnSpec{
			{Label: labelSequence, Role: ColSequence},
			{Label: labelDate, Role: ColDate},
			{Label: labelCounterAccount, Role: ColCounterAccount},
			{Label: labelSubAccount, Role: ColSubAccount},
			{Label: labelDescription, Role: ColDescription},
			{Label: labelInvoiceNo, Role: ColInvoiceNo},
			{Label: labelDebit, Role: ColDebit},
			{Label: labelCredit, Role: ColCredit},
			{Label: labelBalance, Role: ColBalance},
			{Label: labelRemark, Role: ColRemark},
		}
	case Regular:
		return []ColumnSpec{
			{Label: labelSequence, Role: ColSequence},
			{Label: labelDate, Role: ColDate},
			{Label: labelCounterAccount, Role: ColCounterAccount},
			{Label: labelDescription, Role: ColDescription},
			{Label: labelDebit, Role: ColDebit},
			{Label: labelCredit, Role: ColCredit},
			{Label: labelDirection, Role: ColDirection},
			{Label: labelBalance, Role: ColBalance},
			{Label: labelInvoiceNo, Role: ColInvoiceNo},
		}
	default:
		return nil
	}
}

// aggregateColumns returns the layout of an aggregate view: the fixed leading
// columns, one Sum column per currency (or the single legacy amount column),
// then Balance and Source.
func aggregateColumns(spec ViewSpec, currencies []string) ([]ColumnSpec, []CurrencyColumn) {
	cols := []ColumnSpec{
		{Label: labelSequence, Role: ColSequence},
		{Label: labelDate, Role: ColDate},
		{Label: labelCounterAccount, Role: ColCounterAccount},
		{Label: labelDescription, Role: ColDescription},
		{Label: labelInvoiceNo, Role: ColInvoiceNo},
	}
	var ccols []CurrencyColumn
	if spec.MultiCurrency {
		for _, cur := range currencies {
			ccols = append(ccols, CurrencyColumn{Currency: cur, Index: len(cols)})
			cols = append(cols, ColumnSpec{
				Label:    labelAmountGroup + "(" + cur + ")",
				Role:     ColSum,
				Currency: cur,
				Group:    labelAmountGroup,
			})
		}
	} else {
		label := labelCredit
		if spec.Amount == ColDebit {
			label = labelDebit
		}
		cols = append(cols, ColumnSpec{Label: label, Role: spec.Amount})
	}
	cols = append(cols,
		ColumnSpec{Label: labelBalance, Role: ColBalance},
		ColumnSpec{Label: labelSource, Role: ColSource},
	)
	return cols, ccols
}

// sameColumn reports whether two column specs hold the same data.
func sameColumn(a, b ColumnSpec) bool {
	return a.Role == b.Role && a.Currency == b.Currency
}
