package report

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tradelab/indicore/pkg/engine"
	"github.com/tradelab/indicore/pkg/indicator"
	"github.com/tradelab/indicore/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

// column is one component of one result, flattened for tabular output.
type column struct {
	header    string
	component types.Component
}

func columns(results []engine.Result) []column {
	var cols []column
	for _, r := range results {
		for _, c := range r.Components {
			cols = append(cols, column{
				header:    r.Mount.Slot.String() + "/" + c.Name,
				component: c,
			})
		}
	}
	return cols
}

func formatValue(c types.Component, bar int) string {
	if bar < c.FirstBar {
		return ""
	}

	if c.Role.IsSignal() {
		if c.Active(bar) {
			return "yes"
		}
		return "-"
	}

	return strconv.FormatFloat(c.Values[bar], 'f', 4, 64)
}

// firstRow returns the first bar of the last n bars, all bars when n <= 0.
func firstRow(bars, last int) int {
	if last <= 0 || last >= bars {
		return 0
	}
	return bars - last
}

// WriteSummaryTable lists every mounted indicator with its signal descriptions.
func WriteSummaryTable(w io.Writer, results []engine.Result, style *table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*style)
	t.SetTitle("Indicators")
	t.AppendHeader(table.Row{"Slot", "Indicator", "First Bar", "Long", "Short"})

	for _, r := range results {
		var desc indicator.Description
		if d, ok := r.Mount.Indicator.(indicator.Describer); ok {
			desc = d.Description()
		}

		t.AppendRow(table.Row{r.Mount.Slot, r.Mount.Indicator.String(), r.Output.FirstBar, desc.Long, desc.Short})
	}

	t.Render()
}

// WriteValuesTable prints the last n bars with every component.
func WriteValuesTable(w io.Writer, prices *types.PriceSeries, results []engine.Result, last int, style *table.Style) {
	cols := columns(results)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*style)

	header := table.Row{"#", "Time", "Close"}
	configs := []table.ColumnConfig{{Number: 3, Align: text.AlignRight}}
	for i, c := range cols {
		header = append(header, c.header)
		configs = append(configs, table.ColumnConfig{Number: i + 4, Align: text.AlignRight})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for bar := firstRow(prices.Bars(), last); bar < prices.Bars(); bar++ {
		row := table.Row{bar, barTime(prices, bar), strconv.FormatFloat(prices.Close[bar], 'f', -1, 64)}
		for _, c := range cols {
			row = append(row, formatValue(c.component, bar))
		}
		t.AppendRow(row)
	}

	t.Render()
}

func barTime(prices *types.PriceSeries, bar int) string {
	if bar >= len(prices.Time) {
		return ""
	}
	return prices.Time[bar].Format(timeLayout)
}

// WriteSignalsTable prints the combined decisions of the last n bars.
func WriteSignalsTable(w io.Writer, prices *types.PriceSeries, signals engine.Signals, last int, style *table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*style)
	t.SetTitle("Signals")
	t.AppendHeader(table.Row{"#", "Time", "Open Long", "Open Short", "Close Long", "Close Short", "Exit Price"})

	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "-"
	}

	for bar := firstRow(prices.Bars(), last); bar < prices.Bars(); bar++ {
		exit := ""
		if signals.ExitPrice != nil {
			exit = strconv.FormatFloat(signals.ExitPrice[bar], 'f', 4, 64)
		}

		t.AppendRow(table.Row{
			bar, barTime(prices, bar),
			yesNo(signals.OpenLong[bar]), yesNo(signals.OpenShort[bar]),
			yesNo(signals.CloseLong[bar]), yesNo(signals.CloseShort[bar]),
			exit,
		})
	}

	t.Render()
}
