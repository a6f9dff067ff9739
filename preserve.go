package ledgerbook

import (
	"slices"
	"sort"
)

// CapturedRow is a user row saved before a rebuild.
type CapturedRow struct {
	Index int      // row index at capture time
	Cells []string // aligned with the columns the rows were captured with
}

// UserRows is the set of user rows of a view together with the columns
// their cells are aligned with.
type UserRows struct {
	Columns []ColumnSpec
	Rows    []CapturedRow
}

// CaptureUserRows records every user entered row of the view that holds at
// least one non empty cell. Generated rows are never captured, whatever
// their content.
func CaptureUserRows(view *Ledger) UserRows {
	ur := UserRows{Columns: slices.Clone(view.columns)}
	for i, row := range view.rows {
		if row.Origin != UserEntered || row.IsEmpty() {
			continue
		}
		cells := make([]string, len(view.columns))
		for c := range cells {
			cells[c] = row.Cell(c)
		}
		ur.Rows = append(ur.Rows, CapturedRow{Index: i, Cells: cells})
	}
	return ur
}

// currencies returns the currencies of the Sum columns holding user text.
func (ur UserRows) currencies() []string {
	var curs []string
	for c, col := range ur.Columns {
		if col.Role != ColSum {
			continue
		}
		for _, r := range ur.Rows {
			if c < len(r.Cells) && r.Cells[c] != "" {
				curs = append(curs, col.Currency)
				break
			}
		}
	}
	return curs
}

// placeUserRows computes the target index of each captured row.
//
// Rows are processed by ascending index with a cursor starting at
// generated, the size of the generated block. Anchored rows go to
// max(index, cursor), appended rows go to the cursor. The cursor then moves
// past the placed row, so a user row never lands on generated content nor on
// another user row, and user rows keep their relative order.
func placeUserRows(rows []CapturedRow, generated int, mode PreserveMode) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rows[order[a]].Index < rows[order[b]].Index })

	targets := make([]int, len(rows))
	cursor := generated
	for _, i := range order {
		t := cursor
		if mode == PreserveAnchored && rows[i].Index > cursor {
			t = rows[i].Index
		}
		targets[i] = t
		cursor = t + 1
	}
	return targets
}

// RestoreUserRows writes the captured rows back into the view, whose first
// generated rows hold generated content. Cells are mapped onto the current
// columns by role and currency. It returns the number of rows that could not
// keep their captured index.
func RestoreUserRows(view *Ledger, ur UserRows, generated int, mode PreserveMode) (relocated int) {
	mapping := make([]int, len(ur.Columns))
	for i, old := range ur.Columns {
		mapping[i] = slices.IndexFunc(view.columns, func(c ColumnSpec) bool { return sameColumn(c, old) })
	}

	targets := placeUserRows(ur.Rows, generated, mode)
	for i, r := range ur.Rows {
		t := targets[i]
		if t != r.Index {
			relocated++
		}
		view.grow(t + 1)
		row := Row{Origin: UserEntered}
		for c, text := range r.Cells {
			if c < len(mapping) && mapping[c] >= 0 {
				row.set(mapping[c], text)
			}
		}
		view.rows[t] = row
	}
	return relocated
}
