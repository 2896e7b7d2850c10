package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/tradelab/indicore/pkg/engine"
	"github.com/tradelab/indicore/pkg/types"
)

var ErrNotEnoughBars = errors.New("at least two bars are required to draw a chart")

// Canvas is a price chart with the indicator values laid over it. Price-scaled
// components share the primary axis with the close price, oscillators use the
// secondary axis.
type Canvas struct {
	chart.Chart
}

func NewCanvas(title string, prices *types.PriceSeries) *Canvas {
	valueFormatter := chart.IntValueFormatter
	if len(prices.Time) == prices.Bars() && prices.Bars() > 1 {
		if prices.Time[1].Sub(prices.Time[0]) >= 24*time.Hour {
			valueFormatter = chart.TimeDateValueFormatter
		} else {
			valueFormatter = chart.TimeMinuteValueFormatter
		}
	}

	out := &Canvas{
		Chart: chart.Chart{
			Title: title,
			XAxis: chart.XAxis{
				ValueFormatter: valueFormatter,
			},
			YAxis: chart.YAxis{
				ValueFormatter: floatFormatter,
			},
			YAxisSecondary: chart.YAxis{
				ValueFormatter: floatFormatter,
			},
		},
	}
	out.Chart.Elements = []chart.Renderable{
		chart.LegendLeft(&out.Chart),
	}
	return out
}

func floatFormatter(v interface{}) string {
	if vf, isFloat := v.(float64); isFloat {
		return fmt.Sprintf("%.4f", vf)
	}
	return ""
}

// Plot adds the values from the first bar on.
func (canvas *Canvas) Plot(tag string, prices *types.PriceSeries, values []float64, firstBar int, style chart.Style, axis chart.YAxisType) {
	if firstBar < 0 {
		firstBar = 0
	}
	if firstBar >= len(values) {
		return
	}

	if len(prices.Time) == prices.Bars() {
		canvas.Series = append(canvas.Series, chart.TimeSeries{
			Name:    tag,
			Style:   style,
			YAxis:   axis,
			XValues: prices.Time[firstBar:len(values)],
			YValues: values[firstBar:],
		})
		return
	}

	var x []float64
	for i := firstBar; i < len(values); i++ {
		x = append(x, float64(i))
	}
	canvas.Series = append(canvas.Series, chart.ContinuousSeries{
		Name:    tag,
		Style:   style,
		YAxis:   axis,
		XValues: x,
		YValues: values[firstBar:],
	})
}

func componentStyle(c types.Component) chart.Style {
	switch c.Chart {
	case types.ChartDot:
		return chart.Style{StrokeWidth: chart.Disabled, DotWidth: 2}
	case types.ChartHistogram:
		return chart.Style{StrokeWidth: 1, FillColor: chart.ColorAlternateGray.WithAlpha(64)}
	}
	return chart.Style{StrokeWidth: 1}
}

// DrawResults plots the close price and the value components of every result.
// Signal components are left out.
func DrawResults(title string, prices *types.PriceSeries, results []engine.Result) (*Canvas, error) {
	if prices.Bars() < 2 {
		return nil, ErrNotEnoughBars
	}

	canvas := NewCanvas(title, prices)
	canvas.Plot("Close", prices, prices.Close, 0, chart.Style{StrokeWidth: 1}, chart.YAxisPrimary)

	for _, r := range results {
		for _, c := range r.Components {
			if c.Role.IsSignal() || c.Chart == types.ChartNone || c.FirstBar >= prices.Bars()-1 {
				continue
			}

			axis := chart.YAxisSecondary
			if r.Output.ExitPrice {
				axis = chart.YAxisPrimary
			}
			canvas.Plot(c.Name, prices, c.Values, c.FirstBar, componentStyle(c), axis)
		}
	}

	return canvas, nil
}

func (canvas *Canvas) RenderPNG(w io.Writer) error {
	if err := canvas.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "cannot render chart")
	}
	return nil
}
