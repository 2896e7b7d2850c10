package indicator

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tradelab/indicore/pkg/types"
)

// OscillatorOfTrixParams configures two Trix instances that differ only in period.
type OscillatorOfTrixParams struct {
	Logic        LogicMode       `json:"logic" yaml:"logic"`
	Method       MAMethod        `json:"method" yaml:"method"`
	BasePrice    types.BasePrice `json:"basePrice" yaml:"basePrice"`
	FirstPeriod  int             `json:"firstPeriod" yaml:"firstPeriod"`
	SecondPeriod int             `json:"secondPeriod" yaml:"secondPeriod"`
	UsePrevious  bool            `json:"usePrevious" yaml:"usePrevious"`
	Parallel     bool            `json:"parallel" yaml:"parallel"`
}

func DefaultOscillatorOfTrixParams() OscillatorOfTrixParams {
	return OscillatorOfTrixParams{
		Logic:        LogicRises,
		Method:       MAExponential,
		BasePrice:    types.BasePriceClose,
		FirstPeriod:  9,
		SecondPeriod: 13,
	}
}

// OscillatorOfTrix is the difference of two Trix indexes.
type OscillatorOfTrix struct {
	params     OscillatorOfTrixParams
	oscillator Oscillator[Trix]
}

func NewOscillatorOfTrix(params OscillatorOfTrixParams) (OscillatorOfTrix, error) {
	return NewOscillatorOfTrixWith(params, Subtract)
}

// NewOscillatorOfTrixWith uses combine instead of the subtraction.
func NewOscillatorOfTrixWith(params OscillatorOfTrixParams, combine Combinator) (OscillatorOfTrix, error) {
	if !params.Logic.Valid() {
		return OscillatorOfTrix{}, errors.Wrapf(ErrInvalidLogicMode, "%d", params.Logic)
	}

	leaf := TrixParams{
		Logic:       LogicNoFilter,
		Method:      params.Method,
		BasePrice:   params.BasePrice,
		UsePrevious: params.UsePrevious,
	}

	leaf.Period = params.FirstPeriod
	first, err := NewTrix(leaf)
	if err != nil {
		return OscillatorOfTrix{}, errors.Wrap(err, "first trix")
	}

	leaf.Period = params.SecondPeriod
	second, err := NewTrix(leaf)
	if err != nil {
		return OscillatorOfTrix{}, errors.Wrap(err, "second trix")
	}

	return OscillatorOfTrix{
		params: params,
		oscillator: Oscillator[Trix]{
			First:    first,
			Second:   second,
			Combine:  combine,
			Parallel: params.Parallel,
		},
	}, nil
}

func (o OscillatorOfTrix) Params() OscillatorOfTrixParams {
	return o.params
}

func (o OscillatorOfTrix) Name() string {
	return "Oscillator of Trix"
}

func (o OscillatorOfTrix) Description() Description {
	return Describe(o.Name(), o.params.Logic, 0)
}

func (o OscillatorOfTrix) String() string {
	p := o.params
	return fmt.Sprintf("%s%s (%s, %s, %d, %d)", o.Name(), previousMarker(p.UsePrevious),
		p.Method, p.BasePrice, p.FirstPeriod, p.SecondPeriod)
}

func (o OscillatorOfTrix) Slots() []types.SlotType {
	return []types.SlotType{types.SlotOpenFilter, types.SlotCloseFilter}
}

func (o OscillatorOfTrix) Calculate(prices *types.PriceSeries) Output {
	values, firstBar := o.oscillator.Calculate(prices)
	long, short := OscillatorLogic(firstBar, previousBar(o.params.UsePrevious), values, 0, 0, o.params.Logic)
	clearWarmup(values, firstBar)

	return Output{
		Name:     "Histogram",
		Chart:    types.ChartHistogram,
		FirstBar: firstBar,
		Values:   values,
		Long:     long,
		Short:    short,
	}
}
