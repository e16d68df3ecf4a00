package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNothingToChart is returned when a breakdown has no positive amounts.
var ErrNothingToChart = errors.New("no amounts to chart")

const (
	chartWidth  = 1200
	chartHeight = 600
)

// WriteCategoryChart renders a PNG pie chart of totals, one slice per category
// in sorted order.
func WriteCategoryChart(w io.Writer, totals CategoryTotals, title string, f Formatter) error {
	values := make([]chart.Value, 0, len(totals))
	for _, ca := range totals.Sorted() {
		if !ca.Amount.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s", ca.Category, f.Format(ca.Amount)),
			Value: ca.Amount.InexactFloat64(),
		})
	}
	if len(values) == 0 {
		return ErrNothingToChart
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
