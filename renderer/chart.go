package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/ledgerbook"
	"github.com/etnz/ledgerbook/date"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughPoints is returned when a ledger has less than two dated balances.
var ErrNotEnoughPoints = errors.New("not enough dated balances to draw")

// BalanceChart renders the running balance of l as a PNG line chart. Rows
// without a valid date are skipped.
func BalanceChart(l *ledgerbook.Ledger) ([]byte, error) {
	var xValues []time.Time
	var yValues []float64
	for _, p := range ledgerbook.RunningBalance(l) {
		d, err := date.Parse(p.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, d.Time())
		yValues = append(yValues, p.Balance.InexactFloat64())
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("%w: %q has %d", ErrNotEnoughPoints, l.Name(), len(xValues))
	}

	title := l.Name()
	if l.Currency() != "" {
		title = fmt.Sprintf("%s (%s)", l.Name(), l.Currency())
	}
	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("2006/01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Balance",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"),
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("could not render chart of %q: %w", l.Name(), err)
	}
	return buf.Bytes(), nil
}
