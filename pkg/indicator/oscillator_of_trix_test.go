package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/indicore/pkg/types"
)

func Test_Trix(t *testing.T) {
	// every simple average of a geometric series grows with the series itself,
	// so the triple smoothed value grows by 1% per bar as well
	closing := make([]float64, 80)
	for i := range closing {
		closing[i] = 100 * math.Pow(1.01, float64(i))
	}

	params := DefaultTrixParams()
	params.Method = MASimple
	params.Period = 5

	trix, err := NewTrix(params)
	require.NoError(t, err)

	out := trix.Calculate(buildPriceSeriesFromC(closing))
	assert.Equal(t, 17, out.FirstBar)

	for bar := range closing {
		if bar < out.FirstBar {
			assert.Zero(t, out.Values[bar], "bar %d", bar)
			continue
		}
		assert.InDelta(t, 1.0, out.Values[bar], 1e-6, "bar %d", bar)
	}
}

func Test_Trix_Flat(t *testing.T) {
	closing := make([]float64, 50)
	for i := range closing {
		closing[i] = 42
	}

	trix, err := NewTrix(DefaultTrixParams())
	require.NoError(t, err)

	out := trix.Calculate(buildPriceSeriesFromC(closing))
	for bar, v := range out.Values {
		assert.InDelta(t, 0.0, v, 1e-12, "bar %d", bar)
	}
}

func Test_OscillatorOfTrix(t *testing.T) {
	prices := buildPriceSeries(21, 250)

	params := DefaultOscillatorOfTrixParams()
	params.Logic = LogicCrossesUpward
	osc, err := NewOscillatorOfTrix(params)
	require.NoError(t, err)

	first, err := NewTrix(TrixParams{Method: params.Method, BasePrice: params.BasePrice, Period: 9})
	require.NoError(t, err)
	second, err := NewTrix(TrixParams{Method: params.Method, BasePrice: params.BasePrice, Period: 13})
	require.NoError(t, err)

	out1 := first.Calculate(prices)
	out2 := second.Calculate(prices)

	out := osc.Calculate(prices)
	assert.Equal(t, 29, out1.FirstBar)
	assert.Equal(t, 41, out2.FirstBar)
	assert.Equal(t, 44, out.FirstBar)

	for bar := 0; bar < prices.Bars(); bar++ {
		if bar < out.FirstBar {
			assert.Zero(t, out.Values[bar], "bar %d", bar)
			continue
		}
		assert.Equal(t, out1.Values[bar]-out2.Values[bar], out.Values[bar], "bar %d", bar)
	}
}

func Test_OscillatorOfTrix_Parallel(t *testing.T) {
	prices := buildPriceSeries(22, 300)

	params := DefaultOscillatorOfTrixParams()
	sequential, err := NewOscillatorOfTrix(params)
	require.NoError(t, err)

	params.Parallel = true
	parallel, err := NewOscillatorOfTrix(params)
	require.NoError(t, err)

	assert.Equal(t, sequential.Calculate(prices), parallel.Calculate(prices))
}

func Test_OscillatorOfTrix_Combinator(t *testing.T) {
	prices := buildPriceSeries(23, 120)
	params := DefaultOscillatorOfTrixParams()

	sum, err := NewOscillatorOfTrixWith(params, func(a, b float64) float64 { return a + b })
	require.NoError(t, err)
	diff, err := NewOscillatorOfTrix(params)
	require.NoError(t, err)

	first, err := NewTrix(TrixParams{Method: params.Method, BasePrice: params.BasePrice, Period: params.FirstPeriod})
	require.NoError(t, err)
	ref := first.Calculate(prices)

	outSum := sum.Calculate(prices)
	outDiff := diff.Calculate(prices)
	for bar := outSum.FirstBar; bar < prices.Bars(); bar++ {
		// (a + b) + (a - b) = 2a
		assert.InDelta(t, 2*ref.Values[bar], outSum.Values[bar]+outDiff.Values[bar], 1e-9, "bar %d", bar)
	}
}

func Test_Oscillator_FirstBar(t *testing.T) {
	for _, periods := range [][2]int{{9, 13}, {13, 9}, {4, 4}, {1, 20}} {
		a, err := NewTrix(TrixParams{Method: MAExponential, BasePrice: types.BasePriceClose, Period: periods[0]})
		require.NoError(t, err)
		b, err := NewTrix(TrixParams{Method: MAExponential, BasePrice: types.BasePriceClose, Period: periods[1]})
		require.NoError(t, err)

		_, firstBar := Oscillator[Trix]{First: a, Second: b}.Calculate(buildPriceSeries(4, 100))
		want := a.FirstBar()
		if b.FirstBar() > want {
			want = b.FirstBar()
		}
		assert.Equal(t, want+3, firstBar, "periods %v", periods)
	}
}

func Test_NewOscillatorOfTrix_InvalidPeriod(t *testing.T) {
	params := DefaultOscillatorOfTrixParams()
	params.SecondPeriod = 0
	_, err := NewOscillatorOfTrix(params)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func Test_OscillatorOfTrix_CrossAtFirstBar(t *testing.T) {
	params := DefaultOscillatorOfTrixParams()
	params.Logic = LogicCrossesUpward

	first, err := NewTrix(TrixParams{Method: params.Method, BasePrice: params.BasePrice, Period: params.FirstPeriod})
	require.NoError(t, err)
	second, err := NewTrix(TrixParams{Method: params.Method, BasePrice: params.BasePrice, Period: params.SecondPeriod})
	require.NoError(t, err)

	for _, usePrevious := range []bool{false, true} {
		params.UsePrevious = usePrevious
		osc, err := NewOscillatorOfTrix(params)
		require.NoError(t, err)

		lag := previousBar(usePrevious)
		fired := 0
		for seed := int64(100); seed < 300; seed++ {
			prices := buildPriceSeries(seed, 120)
			out1 := first.Calculate(prices)
			out2 := second.Calculate(prices)
			histogram := func(bar int) float64 { return out1.Values[bar] - out2.Values[bar] }

			out := osc.Calculate(prices)
			for bar := out.FirstBar; bar < out.FirstBar+3; bar++ {
				cur, prev := histogram(bar-lag), histogram(bar-lag-1)
				want := 0.0
				if prev <= 0 && cur > 0 {
					want = 1
					fired++
				}
				assert.Equal(t, want, out.Long[bar], "seed %d bar %d previous %v", seed, bar, usePrevious)
			}
		}
		assert.NotZero(t, fired, "previous %v", usePrevious)
	}
}
