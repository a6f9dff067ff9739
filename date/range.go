package date

import "fmt"

// Range represents a range of dates, boundaries included.
//
// A zero boundary is open: a Range with a zero From has no lower bound.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// String returns "from - to".
func (r Range) String() string { return fmt.Sprintf("%s - %s", r.From, r.To) }

// ParseRange parses both boundaries, an empty string leaves the boundary open.
func ParseRange(from, to string) (Range, error) {
	var r Range
	var err error
	if from != "" {
		if r.From, err = Parse(from); err != nil {
			return Range{}, err
		}
	}
	if to != "" {
		if r.To, err = Parse(to); err != nil {
			return Range{}, err
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return Range{}, fmt.Errorf("invalid period: %s is after %s", r.From, r.To)
	}
	return r, nil
}
