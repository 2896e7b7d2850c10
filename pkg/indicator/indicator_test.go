package indicator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/indicore/pkg/types"
)

// buildPriceSeries generates a random walk of n bars where every bar opens at the
// previous close.
func buildPriceSeries(seed int64, n int) *types.PriceSeries {
	r := rand.New(rand.NewSource(seed))
	s := types.NewPriceSeries(n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	closePrice := 100.0
	for i := 0; i < n; i++ {
		open := closePrice
		closePrice = open + r.NormFloat64()
		high := math.Max(open, closePrice) + r.Float64()*0.5
		low := math.Min(open, closePrice) - r.Float64()*0.5
		s.Push(start.Add(time.Duration(i)*time.Hour), open, high, low, closePrice)
	}
	return s
}

// buildPriceSeriesFromC uses the closing prices for all four prices of each bar.
func buildPriceSeriesFromC(closing []float64) *types.PriceSeries {
	s := types.NewPriceSeries(len(closing))
	for i, c := range closing {
		s.Push(time.Unix(int64(i)*60, 0), c, c, c, c)
	}
	return s
}

func defaultIndicators(t *testing.T) []Indicator {
	ao, err := NewAwesomeOscillator(DefaultAwesomeOscillatorParams())
	require.NoError(t, err)
	cci, err := NewCCI(DefaultCCIParams())
	require.NoError(t, err)
	trix, err := NewTrix(DefaultTrixParams())
	require.NoError(t, err)
	oot, err := NewOscillatorOfTrix(DefaultOscillatorOfTrixParams())
	require.NoError(t, err)
	sar, err := NewParabolicSAR(DefaultParabolicSARParams())
	require.NoError(t, err)

	return []Indicator{ao, cci, trix, oot, sar}
}

func TestIndicators_WarmupIsZero(t *testing.T) {
	prices := buildPriceSeries(1, 200)

	for _, ind := range defaultIndicators(t) {
		t.Run(ind.Name(), func(t *testing.T) {
			out := ind.Calculate(prices)
			for _, slot := range ind.Slots() {
				for _, c := range out.Components(slot) {
					require.Len(t, c.Values, prices.Bars())
					for bar := 0; bar < c.FirstBar; bar++ {
						assert.Zero(t, c.Values[bar], "%s %s bar %d", slot, c.Name, bar)
					}
					for bar := range c.Values {
						assert.False(t, math.IsNaN(c.Values[bar]) || math.IsInf(c.Values[bar], 0), "%s bar %d", c.Name, bar)
					}
				}
			}
		})
	}
}

func TestIndicators_InsufficientHistory(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		prices := buildPriceSeries(2, n)
		for _, ind := range defaultIndicators(t) {
			out := ind.Calculate(prices)
			assert.Len(t, out.Values, n, ind.Name())
			assert.Len(t, out.Long, n, ind.Name())
			assert.Len(t, out.Short, n, ind.Name())
			for _, v := range out.Values {
				assert.Zero(t, v, ind.Name())
			}
		}
	}
}

func TestIndicators_Idempotent(t *testing.T) {
	prices := buildPriceSeries(3, 150)
	for _, ind := range defaultIndicators(t) {
		assert.Equal(t, ind.Calculate(prices), ind.Calculate(prices), ind.Name())
	}
}

func TestOutput_Components(t *testing.T) {
	out := Output{
		Name:     "CCI",
		Chart:    types.ChartLine,
		FirstBar: 1,
		Values:   []float64{0, 1, 2},
		Long:     []float64{0, 1, 1},
		Short:    []float64{0, 0, 0},
	}

	open := out.Components(types.SlotOpenFilter)
	require.Len(t, open, 3)
	assert.Equal(t, types.RoleRawValue, open[0].Role)
	assert.Equal(t, types.RoleAllowOpenLong, open[1].Role)
	assert.Equal(t, types.RoleAllowOpenShort, open[2].Role)

	closing := out.Components(types.SlotCloseFilter)
	require.Len(t, closing, 3)
	assert.Equal(t, types.RoleForceCloseLong, closing[1].Role)
	assert.Equal(t, types.RoleForceCloseShort, closing[2].Role)

	// relabeled, not recomputed
	assert.Same(t, &out.Long[0], &open[1].Values[0])
	assert.Same(t, &out.Long[0], &closing[1].Values[0])

	none := out.Components(types.SlotNone)
	require.Len(t, none, 1)
	assert.Equal(t, types.RoleRawValue, none[0].Role)

	out.ExitPrice = true
	exit := out.Components(types.SlotClose)
	require.Len(t, exit, 1)
	assert.Equal(t, types.RolePriceSubstitute, exit[0].Role)
}

func TestCanMount(t *testing.T) {
	sar, err := NewParabolicSAR(DefaultParabolicSARParams())
	require.NoError(t, err)
	assert.True(t, CanMount(sar, types.SlotOpenFilter))
	assert.True(t, CanMount(sar, types.SlotClose))
	assert.False(t, CanMount(sar, types.SlotCloseFilter))

	cci, err := NewCCI(DefaultCCIParams())
	require.NoError(t, err)
	assert.False(t, CanMount(cci, types.SlotClose))
	assert.True(t, CanMount(cci, types.SlotNone))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		mode  LogicMode
		level float64
		want  Description
	}{
		{LogicRises, 100, Description{"CCI rises", "CCI falls"}},
		{LogicHigherThanLevel, 100, Description{"CCI is higher than the Level 100", "CCI is lower than the Level -100"}},
		{LogicCrossesDownward, 0, Description{"CCI crosses the zero line downward", "CCI crosses the zero line upward"}},
		{LogicDirectionChangeDownward, 0, Description{"CCI changes its direction downward", "CCI changes its direction upward"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Describe("CCI", tt.mode, tt.level))
		})
	}
}

func TestIndicators_Description(t *testing.T) {
	for _, ind := range defaultIndicators(t) {
		d, ok := ind.(Describer)
		require.True(t, ok, ind.Name())
		assert.NotEmpty(t, d.Description().Long, ind.Name())
		assert.NotEqual(t, d.Description().Long, d.Description().Short, ind.Name())
	}

	cci, err := NewCCI(DefaultCCIParams())
	require.NoError(t, err)
	assert.Equal(t, Description{"Commodity Channel Index rises", "Commodity Channel Index falls"}, cci.Description())
}
