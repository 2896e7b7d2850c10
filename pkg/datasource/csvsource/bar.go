package csvsource

import (
	"slices"
	"time"

	"github.com/tradelab/indicore/pkg/types"
)

// Bar is one decoded CSV row.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// SortBars returns a copy of the bars ordered by time, oldest first.
func SortBars(bars []Bar) []Bar {
	sorted := slices.Clone(bars)
	slices.SortStableFunc(sorted, func(a, b Bar) int {
		return a.Time.Compare(b.Time)
	})
	return sorted
}

// ToPriceSeries sorts the bars and converts them into a series.
func ToPriceSeries(bars []Bar) *types.PriceSeries {
	s := types.NewPriceSeries(len(bars))
	for _, b := range SortBars(bars) {
		s.Push(b.Time, b.Open, b.High, b.Low, b.Close)
	}
	return s
}
