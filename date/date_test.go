package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024/01/10", want: New(2024, time.January, 10)},
		{in: "2024/1/9", want: New(2024, time.January, 9)},
		{in: "2024-01-10", wantErr: true},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestZeroIsMinimum(t *testing.T) {
	var zero Date
	d := New(1, time.January, 1)
	if !zero.Before(d) {
		t.Errorf("zero date should be before %v", d)
	}
	if d.Before(zero) {
		t.Errorf("%v should not be before the zero date", d)
	}
	if zero.Compare(Date{}) != 0 {
		t.Errorf("zero dates should compare equal")
	}
	if zero.String() != "" {
		t.Errorf("zero.String() = %q, want empty", zero.String())
	}
}

func TestRange(t *testing.T) {
	r, err := ParseRange("2024/01/01", "2024/12/31")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if !r.Contains(MustParse("2024/12/31")) {
		t.Errorf("range should include its upper boundary")
	}
	if r.Contains(MustParse("2025/01/01")) {
		t.Errorf("range should not include 2025/01/01")
	}
	if r.Contains(Date{}) {
		t.Errorf("bounded range should not include the minimum date")
	}
	if !(Range{}).Contains(MustParse("1999/01/01")) {
		t.Errorf("open range should include everything")
	}
	if _, err := ParseRange("2024/12/31", "2024/01/01"); err == nil {
		t.Errorf("ParseRange() should reject an inverted period")
	}
}
