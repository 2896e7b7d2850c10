package types

import (
	"time"

	"github.com/pkg/errors"
)

var ErrSeriesLengthMismatch = errors.New("price series length mismatch")

// PriceSeries holds the bars of one instrument as parallel arrays.
// Index 0 is the oldest bar; bar i-1 is the bar immediately preceding bar i.
type PriceSeries struct {
	Time  []time.Time
	Open  []float64
	High  []float64
	Low   []float64
	Close []float64
}

// NewPriceSeries allocates an empty series with room for n bars.
func NewPriceSeries(n int) *PriceSeries {
	return &PriceSeries{
		Time:  make([]time.Time, 0, n),
		Open:  make([]float64, 0, n),
		High:  make([]float64, 0, n),
		Low:   make([]float64, 0, n),
		Close: make([]float64, 0, n),
	}
}

// Bars returns the number of bars in the series.
func (s *PriceSeries) Bars() int {
	return len(s.Close)
}

// Push appends one bar.
func (s *PriceSeries) Push(t time.Time, open, high, low, close float64) {
	s.Time = append(s.Time, t)
	s.Open = append(s.Open, open)
	s.High = append(s.High, high)
	s.Low = append(s.Low, low)
	s.Close = append(s.Close, close)
}

// Validate checks that the OHLC arrays share one length. Time is optional.
func (s *PriceSeries) Validate() error {
	n := len(s.Close)
	if len(s.Open) != n || len(s.High) != n || len(s.Low) != n {
		return errors.Wrapf(ErrSeriesLengthMismatch, "open=%d high=%d low=%d close=%d",
			len(s.Open), len(s.High), len(s.Low), n)
	}

	if len(s.Time) != 0 && len(s.Time) != n {
		return errors.Wrapf(ErrSeriesLengthMismatch, "time=%d close=%d", len(s.Time), n)
	}

	return nil
}

// Price derives the base price array. The returned slice is always a fresh copy.
func (s *PriceSeries) Price(base BasePrice) []float64 {
	bars := s.Bars()
	price := make([]float64, bars)

	switch base {
	case BasePriceOpen:
		copy(price, s.Open)
	case BasePriceHigh:
		copy(price, s.High)
	case BasePriceLow:
		copy(price, s.Low)
	case BasePriceMedian:
		for i := 0; i < bars; i++ {
			price[i] = (s.High[i] + s.Low[i]) / 2
		}
	case BasePriceTypical:
		for i := 0; i < bars; i++ {
			price[i] = (s.High[i] + s.Low[i] + s.Close[i]) / 3
		}
	case BasePriceWeighted:
		for i := 0; i < bars; i++ {
			price[i] = (s.High[i] + s.Low[i] + 2*s.Close[i]) / 4
		}
	default:
		copy(price, s.Close)
	}

	return price
}
