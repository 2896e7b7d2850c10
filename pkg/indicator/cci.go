package indicator

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/tradelab/indicore/pkg/types"
)

// CCIParams configures the Commodity Channel Index.
type CCIParams struct {
	Logic       LogicMode       `json:"logic" yaml:"logic"`
	Method      MAMethod        `json:"method" yaml:"method"`
	BasePrice   types.BasePrice `json:"basePrice" yaml:"basePrice"`
	Period      int             `json:"period" yaml:"period"`
	Level       float64         `json:"level" yaml:"level"`
	Multiplier  float64         `json:"multiplier" yaml:"multiplier"`
	UsePrevious bool            `json:"usePrevious" yaml:"usePrevious"`
}

func DefaultCCIParams() CCIParams {
	return CCIParams{
		Logic:      LogicRises,
		Method:     MASimple,
		BasePrice:  types.BasePriceTypical,
		Period:     14,
		Level:      100,
		Multiplier: 0.015,
	}
}

// CCI is the Commodity Channel Index:
//
//	(price - MA) / (multiplier * mean absolute deviation)
//
// A bar whose scaled deviation is zero within Epsilon gets 0 instead of a division.
type CCI struct {
	params CCIParams
}

func NewCCI(params CCIParams) (CCI, error) {
	if err := validatePeriod("period", params.Period); err != nil {
		return CCI{}, err
	}
	if !params.Method.Valid() {
		return CCI{}, errors.Wrapf(ErrInvalidMAMethod, "%d", params.Method)
	}
	if !params.BasePrice.Valid() {
		return CCI{}, errors.Wrapf(types.ErrInvalidBasePrice, "%d", params.BasePrice)
	}
	if !params.Logic.Valid() {
		return CCI{}, errors.Wrapf(ErrInvalidLogicMode, "%d", params.Logic)
	}

	return CCI{params: params}, nil
}

func (c CCI) Params() CCIParams {
	return c.params
}

func (c CCI) Name() string {
	return "Commodity Channel Index"
}

func (c CCI) Description() Description {
	return Describe(c.Name(), c.params.Logic, c.params.Level)
}

func (c CCI) String() string {
	p := c.params
	return fmt.Sprintf("%s%s (%s, %s, %d, %g)", c.Name(), previousMarker(p.UsePrevious),
		p.Method, p.BasePrice, p.Period, p.Multiplier)
}

func (c CCI) Slots() []types.SlotType {
	return []types.SlotType{types.SlotOpenFilter, types.SlotCloseFilter}
}

func (c CCI) Calculate(prices *types.PriceSeries) Output {
	p := c.params
	firstBar := p.Period + 3

	price := prices.Price(p.BasePrice)
	ma := MovingAverage(p.Period, 0, p.Method, price)

	values := make([]float64, len(price))
	for bar := p.Period - 1; bar < len(price); bar++ {
		sum := 0.0
		for i := 0; i < p.Period; i++ {
			sum += math.Abs(price[bar-i] - ma[bar])
		}

		deviation := p.Multiplier * sum / float64(p.Period)
		if math.Abs(deviation) > Epsilon {
			values[bar] = (price[bar] - ma[bar]) / deviation
		}
	}

	long, short := OscillatorLogic(firstBar, previousBar(p.UsePrevious), values, p.Level, -p.Level, p.Logic)
	clearWarmup(values, firstBar)

	return Output{
		Name:     "CCI",
		Chart:    types.ChartLine,
		FirstBar: firstBar,
		Values:   values,
		Long:     long,
		Short:    short,
	}
}
