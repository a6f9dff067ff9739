package ledgerbook

import (
	"fmt"
	"maps"
)

// ViewKind identifies an aggregate view.
type ViewKind int

const (
	SalesRevenue ViewKind = iota + 1
	CostOfSales
	BankFees
	InterestIncome
	Payables
	DirectorLoan
)

// ViewKinds returns every view kind in display order.
func ViewKinds() []ViewKind {
	return []ViewKind{SalesRevenue, CostOfSales, BankFees, InterestIncome, Payables, DirectorLoan}
}

func (k ViewKind) String() string {
	switch k {
	case SalesRevenue:
		return "sales"
	case CostOfSales:
		return "cost"
	case BankFees:
		return "bankfees"
	case InterestIncome:
		return "interest"
	case Payables:
		return "payables"
	case DirectorLoan:
		return "director"
	default:
		return "unknown"
	}
}

// ParseViewKind parses a view kind from its short name or its sheet name.
func ParseViewKind(s string) (ViewKind, error) {
	for _, k := range ViewKinds() {
		if s == k.String() || s == defaultViews[k].Name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown view kind: %q", s)
}

// PreserveMode tells where user rows go when a view is rebuilt.
type PreserveMode int

const (
	// PreserveAppend packs user rows right after the generated block.
	PreserveAppend PreserveMode = iota
	// PreserveAnchored keeps user rows at their own index when it is free.
	PreserveAnchored
)

func (p PreserveMode) String() string {
	if p == PreserveAnchored {
		return "anchored"
	}
	return "append"
}

// ParsePreserveMode parses "append" or "anchored".
func ParsePreserveMode(s string) (PreserveMode, error) {
	switch s {
	case "append":
		return PreserveAppend, nil
	case "anchored":
		return PreserveAnchored, nil
	default:
		return 0, fmt.Errorf("unknown preserve mode: %q", s)
	}
}

// ViewSpec defines an aggregate view.
type ViewSpec struct {
	Kind          ViewKind
	Name          string     // sheet name
	SubjectFilter string     // substring of the counter-account of matching bank rows
	Amount        ColumnRole // ColDebit or ColCredit of the source bank ledger
	MultiCurrency bool       // one Sum column per currency, or a single legacy amount column
	Preserve      PreserveMode
}

// Validate checks the view definition.
func (v ViewSpec) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("view %v has no name", v.Kind)
	}
	if v.Amount != ColDebit && v.Amount != ColCredit {
		return fmt.Errorf("view %v: amount must be debit or credit, got %v", v.Kind, v.Amount)
	}
	return nil
}

// The subject filters use the labels found in the bank registers, the view
// names the labels of the sheets.
var defaultViews = map[ViewKind]ViewSpec{
	SalesRevenue:   {Kind: SalesRevenue, Name: "銷售收入", SubjectFilter: "销售收入", Amount: ColCredit, MultiCurrency: true},
	CostOfSales:    {Kind: CostOfSales, Name: "銷售成本", SubjectFilter: "销售成本", Amount: ColDebit, MultiCurrency: true},
	BankFees:       {Kind: BankFees, Name: "銀行費用", SubjectFilter: "银行费用", Amount: ColDebit, MultiCurrency: true},
	InterestIncome: {Kind: InterestIncome, Name: "利息收入", SubjectFilter: "利息收入", Amount: ColCredit, MultiCurrency: true},
	Payables:       {Kind: Payables, Name: "應付費用", SubjectFilter: "应付费用", Amount: ColCredit, MultiCurrency: true},
	DirectorLoan:   {Kind: DirectorLoan, Name: "董事往來", SubjectFilter: "董事往来", Amount: ColCredit, MultiCurrency: true, Preserve: PreserveAnchored},
}

// DefaultViews returns the default view table.
func DefaultViews() map[ViewKind]ViewSpec { return maps.Clone(defaultViews) }
