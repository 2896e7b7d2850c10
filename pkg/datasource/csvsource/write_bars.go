package csvsource

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// WriteBars writes the bars in the Binance layout.
func WriteBars(w io.Writer, bars []Bar) error {
	cw := csv.NewWriter(w)
	for _, b := range bars {
		row := []string{
			strconv.FormatInt(b.Time.UnixMilli(), 10),
			ftos(b.Open), ftos(b.High), ftos(b.Low), ftos(b.Close), ftos(b.Volume),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing record to file")
		}
	}

	cw.Flush()
	return cw.Error()
}

func ftos(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
