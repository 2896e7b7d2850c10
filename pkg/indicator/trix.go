package indicator

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/tradelab/indicore/pkg/types"
)

// TrixParams configures the Trix index.
type TrixParams struct {
	Logic       LogicMode       `json:"logic" yaml:"logic"`
	Method      MAMethod        `json:"method" yaml:"method"`
	BasePrice   types.BasePrice `json:"basePrice" yaml:"basePrice"`
	Period      int             `json:"period" yaml:"period"`
	UsePrevious bool            `json:"usePrevious" yaml:"usePrevious"`
}

func DefaultTrixParams() TrixParams {
	return TrixParams{
		Logic:     LogicRises,
		Method:    MAExponential,
		BasePrice: types.BasePriceClose,
		Period:    9,
	}
}

// Trix is the one-bar rate of change, in percent, of a triple smoothed moving
// average of the base price.
type Trix struct {
	params TrixParams
}

func NewTrix(params TrixParams) (Trix, error) {
	if err := validatePeriod("period", params.Period); err != nil {
		return Trix{}, err
	}
	if !params.Method.Valid() {
		return Trix{}, errors.Wrapf(ErrInvalidMAMethod, "%d", params.Method)
	}
	if !params.BasePrice.Valid() {
		return Trix{}, errors.Wrapf(types.ErrInvalidBasePrice, "%d", params.BasePrice)
	}
	if !params.Logic.Valid() {
		return Trix{}, errors.Wrapf(ErrInvalidLogicMode, "%d", params.Logic)
	}

	return Trix{params: params}, nil
}

func (t Trix) Params() TrixParams {
	return t.params
}

func (t Trix) Name() string {
	return "Trix Index"
}

func (t Trix) Description() Description {
	return Describe(t.Name(), t.params.Logic, 0)
}

func (t Trix) String() string {
	p := t.params
	return fmt.Sprintf("%s%s (%s, %s, %d)", t.Name(), previousMarker(p.UsePrevious),
		p.Method, p.BasePrice, p.Period)
}

func (t Trix) Slots() []types.SlotType {
	return []types.SlotType{types.SlotOpenFilter, types.SlotCloseFilter}
}

// FirstBar is the warm-up of the three smoothing stages plus the rate of change.
func (t Trix) FirstBar() int {
	return 3*t.params.Period + 2
}

func (t Trix) Calculate(prices *types.PriceSeries) Output {
	p := t.params
	firstBar := t.FirstBar()

	price := prices.Price(p.BasePrice)
	values := trix(p.Period, p.Method, price)

	long, short := OscillatorLogic(firstBar, previousBar(p.UsePrevious), values, 0, 0, p.Logic)
	clearWarmup(values, firstBar)

	return Output{
		Name:     "Trix",
		Chart:    types.ChartLine,
		FirstBar: firstBar,
		Values:   values,
		Long:     long,
		Short:    short,
	}
}

func trix(period int, method MAMethod, price []float64) []float64 {
	bars := len(price)
	values := make([]float64, bars)

	// every stage only smooths the defined part of the previous one
	ma1 := movingAverageFrom(0, period, method, price)
	ma2 := movingAverageFrom(period-1, period, method, ma1)
	ma3 := movingAverageFrom(2*(period-1), period, method, ma2)

	for bar := 3*(period-1) + 1; bar < bars; bar++ {
		base := ma3[bar-1]
		if math.Abs(base) > Epsilon {
			values[bar] = 100 * (ma3[bar] - base) / base
		}
	}

	return values
}

// movingAverageFrom runs the engine over source[from:] and aligns the result
// with source.
func movingAverageFrom(from, period int, method MAMethod, source []float64) []float64 {
	out := make([]float64, len(source))
	if from >= len(source) {
		return out
	}

	copy(out[from:], MovingAverage(period, 0, method, source[from:]))
	return out
}
