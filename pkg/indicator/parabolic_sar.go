package indicator

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/tradelab/indicore/pkg/types"
)

// sarFirstBar is the stabilization margin of the SAR output. It is a tuning
// constant rather than something derived from the parameters.
const sarFirstBar = 8

// ParabolicSARParams configures the acceleration factor of the SAR.
type ParabolicSARParams struct {
	AFMin       float64 `json:"afMin" yaml:"afMin"`
	AFIncrement float64 `json:"afIncrement" yaml:"afIncrement"`
	AFMax       float64 `json:"afMax" yaml:"afMax"`
}

func DefaultParabolicSARParams() ParabolicSARParams {
	return ParabolicSARParams{
		AFMin:       0.02,
		AFIncrement: 0.02,
		AFMax:       2.00,
	}
}

// ParabolicSAR (stop and reverse) trails the price with a level that accelerates
// towards the extreme price of the current trend and flips to the other side
// once the price reaches it.
//
// As an open filter it allows long entries when the bar opens above the level and
// short entries when it opens below. In the close slot the level is the exit price.
type ParabolicSAR struct {
	params ParabolicSARParams
}

func NewParabolicSAR(params ParabolicSARParams) (ParabolicSAR, error) {
	if params.AFMin < 0 || params.AFIncrement <= 0 || params.AFMax < params.AFMin {
		return ParabolicSAR{}, errors.Wrapf(ErrInvalidAccelerationFactor,
			"min=%g increment=%g max=%g", params.AFMin, params.AFIncrement, params.AFMax)
	}

	return ParabolicSAR{params: params}, nil
}

func (s ParabolicSAR) Params() ParabolicSARParams {
	return s.params
}

func (s ParabolicSAR) Name() string {
	return "Parabolic SAR"
}

func (s ParabolicSAR) Description() Description {
	return Description{
		Long:  "The bar opens above the " + s.Name(),
		Short: "The bar opens below the " + s.Name(),
	}
}

func (s ParabolicSAR) String() string {
	p := s.params
	return fmt.Sprintf("%s (%.2f, %.2f, %.2f)", s.Name(), p.AFMin, p.AFIncrement, p.AFMax)
}

func (s ParabolicSAR) Slots() []types.SlotType {
	return []types.SlotType{types.SlotOpenFilter, types.SlotClose}
}

func (s ParabolicSAR) Calculate(prices *types.PriceSeries) Output {
	trace := parabolicSAR(s.params, prices)

	values := trace.Level
	clearWarmup(values, sarFirstBar)
	long, short := PriceLogic(sarFirstBar, prices.Open, values)

	return Output{
		Name:      "PSAR value",
		Chart:     types.ChartDot,
		FirstBar:  sarFirstBar,
		Values:    values,
		Long:      long,
		Short:     short,
		ExitPrice: true,
	}
}

// sarTrace records the recurrence state of every bar.
type sarTrace struct {
	Level []float64

	// Direction is +1 in an up trend and -1 in a down trend.
	Direction []int

	// AF is the acceleration factor the bar's level was projected with.
	AF []float64
}

func parabolicSAR(p ParabolicSARParams, prices *types.PriceSeries) sarTrace {
	bars := prices.Bars()
	trace := sarTrace{
		Level:     make([]float64, bars),
		Direction: make([]int, bars),
		AF:        make([]float64, bars),
	}

	if bars < 2 {
		return trace
	}

	high, low := prices.High, prices.Low
	level, dir := trace.Level, trace.Direction

	var extreme float64
	if prices.Close[1] > prices.Open[0] {
		dir[0], dir[1] = 1, 1
		extreme = floats.Max(high[:2])
		level[1] = floats.Min(low[:2])
	} else {
		dir[0], dir[1] = -1, -1
		extreme = floats.Min(low[:2])
		level[1] = floats.Max(high[:2])
	}

	af := p.AFMin
	trace.AF[0], trace.AF[1] = af, af

	// a touch is detected on one bar and applied on the next
	pendingDir := 0
	var flipLevel float64

	for bar := 2; bar < bars; bar++ {
		trace.AF[bar] = af

		if pendingDir != 0 {
			dir[bar] = pendingDir
			pendingDir = 0
			level[bar] = flipLevel + af*(extreme-flipLevel)
		} else {
			dir[bar] = dir[bar-1]
			level[bar] = level[bar-1] + af*(extreme-level[bar-1])
		}

		// the level stays outside the range of the two previous bars
		if dir[bar] > 0 {
			level[bar] = math.Min(level[bar], math.Min(low[bar-1], low[bar-2]))
		} else {
			level[bar] = math.Max(level[bar], math.Max(high[bar-1], high[bar-2]))
		}

		if dir[bar] > 0 && high[bar] > extreme {
			extreme = high[bar]
			af = math.Min(af+p.AFIncrement, p.AFMax)
		} else if dir[bar] < 0 && low[bar] < extreme {
			extreme = low[bar]
			af = math.Min(af+p.AFIncrement, p.AFMax)
		}

		if low[bar] <= level[bar] && level[bar] <= high[bar] {
			pendingDir = -dir[bar]
			flipLevel = extreme
			af = p.AFMin
			if pendingDir > 0 {
				extreme = high[bar]
			} else {
				extreme = low[bar]
			}
		}
	}

	return trace
}
