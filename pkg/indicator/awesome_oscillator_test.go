package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/indicore/pkg/types"
)

func Test_AwesomeOscillator(t *testing.T) {
	// linear ramp: SMA5 lags by 2 bars, SMA34 by 16.5 bars, so AO is 14.5
	closing := make([]float64, 60)
	for i := range closing {
		closing[i] = float64(i)
	}

	params := DefaultAwesomeOscillatorParams()
	params.Logic = LogicHigherThanLevel
	params.Level = 10

	ao, err := NewAwesomeOscillator(params)
	require.NoError(t, err)

	out := ao.Calculate(buildPriceSeriesFromC(closing))
	assert.Equal(t, 36, out.FirstBar)
	assert.Equal(t, types.ChartHistogram, out.Chart)

	for bar := range closing {
		if bar < out.FirstBar {
			assert.Zero(t, out.Values[bar], "bar %d", bar)
			continue
		}
		assert.InDelta(t, 14.5, out.Values[bar], 1e-9, "bar %d", bar)
		assert.Equal(t, 1.0, out.Long[bar], "bar %d", bar)
		assert.Equal(t, 0.0, out.Short[bar], "bar %d", bar)
	}
}

func Test_AwesomeOscillator_PreviousBar(t *testing.T) {
	prices := buildPriceSeries(9, 120)

	params := DefaultAwesomeOscillatorParams()
	params.Logic = LogicDirectionChangeUpward
	params.UsePrevious = true

	ao, err := NewAwesomeOscillator(params)
	require.NoError(t, err)
	out := ao.Calculate(prices)

	// the lagged decision on bar b equals the plain decision on bar b-1
	params.UsePrevious = false
	plain, err := NewAwesomeOscillator(params)
	require.NoError(t, err)
	ref := plain.Calculate(prices)

	for bar := out.FirstBar + 1; bar < prices.Bars(); bar++ {
		assert.Equal(t, ref.Long[bar-1], out.Long[bar], "bar %d", bar)
		assert.Equal(t, ref.Short[bar-1], out.Short[bar], "bar %d", bar)
	}
}

func Test_AwesomeOscillator_String(t *testing.T) {
	ao, err := NewAwesomeOscillator(DefaultAwesomeOscillatorParams())
	require.NoError(t, err)
	assert.Equal(t, "Awesome Oscillator (Simple, Median, 34, 5)", ao.String())

	params := DefaultAwesomeOscillatorParams()
	params.FastPeriod = 0
	_, err = NewAwesomeOscillator(params)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
