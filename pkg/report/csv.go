package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tradelab/indicore/pkg/engine"
	"github.com/tradelab/indicore/pkg/types"
)

// WriteCSV writes one row per bar: the bar time and prices followed by every
// component value. Signals are written as 0/1.
func WriteCSV(w io.Writer, prices *types.PriceSeries, results []engine.Result, last int) error {
	cols := columns(results)
	cw := csv.NewWriter(w)

	header := []string{"time", "open", "high", "low", "close"}
	for _, c := range cols {
		header = append(header, c.header)
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "csv header")
	}

	for bar := firstRow(prices.Bars(), last); bar < prices.Bars(); bar++ {
		ts := ""
		if bar < len(prices.Time) {
			ts = strconv.FormatInt(prices.Time[bar].UnixMilli(), 10)
		}

		row := []string{ts, ftos(prices.Open[bar]), ftos(prices.High[bar]), ftos(prices.Low[bar]), ftos(prices.Close[bar])}
		for _, c := range cols {
			row = append(row, ftos(c.component.Values[bar]))
		}

		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "csv row %d", bar)
		}
	}

	cw.Flush()
	return cw.Error()
}

func ftos(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
