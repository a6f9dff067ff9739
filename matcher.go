package ledgerbook

import "strings"

// SubjectMatcher selects the bank rows that belong to an aggregate view.
//
// The filter is a plain substring of the counter-account: registers store
// composite labels such as "應付賬款-ABC", so callers that need an exact
// match pass a more specific filter.
type SubjectMatcher struct {
	Filter string
}

// Match reports whether counterAccount contains the filter. An empty filter
// never matches.
func (m SubjectMatcher) Match(counterAccount string) bool {
	return m.Filter != "" && strings.Contains(counterAccount, m.Filter)
}

// MatchRow reports whether row i of l matches. Summary rows and ledgers
// without a counter-account column never match.
func (m SubjectMatcher) MatchRow(l *Ledger, i int) bool {
	col := l.Column(ColCounterAccount)
	if col < 0 || i < 0 || i >= len(l.rows) {
		return false
	}
	row := l.rows[i]
	if row.Kind == SummaryRow {
		return false
	}
	return m.Match(row.Cell(col))
}
