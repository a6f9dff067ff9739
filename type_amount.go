package ledgerbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places amounts are rounded to.
//
// Rounding is half away from zero, as implemented by decimal.Round.
const amountPlaces = 2

var thousand = decimal.NewFromInt(1000)

// ParseAmount parses an amount cell. Thousands separators are stripped and a
// value wrapped in parentheses is negative. An empty cell is zero.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// cellAmount returns the amount in text, or zero for unparsable text. ok is
// false only when text is not empty and does not parse.
func cellAmount(text string) (d decimal.Decimal, ok bool) {
	d, err := ParseAmount(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount formats a value for display: two decimal places, thousands
// separators from 1000 up, negative values in parentheses.
func FormatAmount(d decimal.Decimal) string {
	r := d.Round(amountPlaces)
	abs := r.Abs()
	var s string
	if abs.GreaterThanOrEqual(thousand) {
		s = groupThousands(abs.StringFixed(amountPlaces))
	} else {
		s = abs.StringFixed(amountPlaces)
	}
	if r.IsNegative() {
		return "(" + s + ")"
	}
	return s
}

// CanonicalAmount formats a non negative amount the way generated cells
// store it: two decimal places, no separators.
func CanonicalAmount(d decimal.Decimal) string {
	return d.Round(amountPlaces).StringFixed(amountPlaces)
}

// groupThousands inserts a comma every three digits of the integer part of s.
func groupThousands(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
