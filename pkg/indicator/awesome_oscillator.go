package indicator

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tradelab/indicore/pkg/types"
)

// AwesomeOscillatorParams configures the Awesome Oscillator.
type AwesomeOscillatorParams struct {
	Logic       LogicMode       `json:"logic" yaml:"logic"`
	Method      MAMethod        `json:"method" yaml:"method"`
	BasePrice   types.BasePrice `json:"basePrice" yaml:"basePrice"`
	SlowPeriod  int             `json:"slowPeriod" yaml:"slowPeriod"`
	FastPeriod  int             `json:"fastPeriod" yaml:"fastPeriod"`
	Level       float64         `json:"level" yaml:"level"`
	UsePrevious bool            `json:"usePrevious" yaml:"usePrevious"`
}

func DefaultAwesomeOscillatorParams() AwesomeOscillatorParams {
	return AwesomeOscillatorParams{
		Logic:      LogicRises,
		Method:     MASimple,
		BasePrice:  types.BasePriceMedian,
		SlowPeriod: 34,
		FastPeriod: 5,
	}
}

// AwesomeOscillator is the difference between a fast and a slow moving average
// of the base price.
type AwesomeOscillator struct {
	params AwesomeOscillatorParams
}

func NewAwesomeOscillator(params AwesomeOscillatorParams) (AwesomeOscillator, error) {
	if err := validatePeriod("slow period", params.SlowPeriod); err != nil {
		return AwesomeOscillator{}, err
	}
	if err := validatePeriod("fast period", params.FastPeriod); err != nil {
		return AwesomeOscillator{}, err
	}
	if !params.Method.Valid() {
		return AwesomeOscillator{}, errors.Wrapf(ErrInvalidMAMethod, "%d", params.Method)
	}
	if !params.BasePrice.Valid() {
		return AwesomeOscillator{}, errors.Wrapf(types.ErrInvalidBasePrice, "%d", params.BasePrice)
	}
	if !params.Logic.Valid() {
		return AwesomeOscillator{}, errors.Wrapf(ErrInvalidLogicMode, "%d", params.Logic)
	}

	return AwesomeOscillator{params: params}, nil
}

func (ao AwesomeOscillator) Params() AwesomeOscillatorParams {
	return ao.params
}

func (ao AwesomeOscillator) Name() string {
	return "Awesome Oscillator"
}

func (ao AwesomeOscillator) Description() Description {
	return Describe(ao.Name(), ao.params.Logic, ao.params.Level)
}

func (ao AwesomeOscillator) String() string {
	p := ao.params
	return fmt.Sprintf("%s%s (%s, %s, %d, %d)", ao.Name(), previousMarker(p.UsePrevious),
		p.Method, p.BasePrice, p.SlowPeriod, p.FastPeriod)
}

func (ao AwesomeOscillator) Slots() []types.SlotType {
	return []types.SlotType{types.SlotOpenFilter, types.SlotCloseFilter}
}

func (ao AwesomeOscillator) Calculate(prices *types.PriceSeries) Output {
	p := ao.params
	firstBar := p.SlowPeriod + 2

	price := prices.Price(p.BasePrice)
	slow := MovingAverage(p.SlowPeriod, 0, p.Method, price)
	fast := MovingAverage(p.FastPeriod, 0, p.Method, price)

	// the difference is defined once the slow average is, the logic may look
	// back into those bars when the previous bar value is used
	values := make([]float64, len(price))
	for bar := p.SlowPeriod - 1; bar < len(price); bar++ {
		values[bar] = fast[bar] - slow[bar]
	}

	long, short := OscillatorLogic(firstBar, previousBar(p.UsePrevious), values, p.Level, -p.Level, p.Logic)
	clearWarmup(values, firstBar)

	return Output{
		Name:     "AO",
		Chart:    types.ChartHistogram,
		FirstBar: firstBar,
		Values:   values,
		Long:     long,
		Short:    short,
	}
}
