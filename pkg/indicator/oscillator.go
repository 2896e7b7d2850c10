package indicator

import (
	"sync"

	"github.com/tradelab/indicore/pkg/types"
)

// compositeMargin is added on top of the sub-indicators' warm-up.
const compositeMargin = 3

// Combinator merges the two sub-indicator values of one bar.
type Combinator func(a, b float64) float64

// Subtract is the default combinator.
func Subtract(a, b float64) float64 {
	return a - b
}

// Oscillator combines two independent sub-indicator instances. Each instance is
// a value owned by the oscillator, so they share no state and can be evaluated
// in any order or at the same time.
type Oscillator[T Indicator] struct {
	First   T
	Second  T
	Combine Combinator

	// Parallel evaluates the two instances in separate goroutines.
	Parallel bool
}

// Calculate runs both instances and combines their outputs. The combined first
// bar is the larger of the two plus the composite margin. Values are combined
// from the bar where both instances are defined, so the logic may look back
// into the margin; callers clear the margin after the logic ran.
func (o Oscillator[T]) Calculate(prices *types.PriceSeries) (values []float64, firstBar int) {
	var first, second Output
	if o.Parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			first = o.First.Calculate(prices)
		}()
		go func() {
			defer wg.Done()
			second = o.Second.Calculate(prices)
		}()
		wg.Wait()
	} else {
		first = o.First.Calculate(prices)
		second = o.Second.Calculate(prices)
	}

	combine := o.Combine
	if combine == nil {
		combine = Subtract
	}

	defined := first.FirstBar
	if second.FirstBar > defined {
		defined = second.FirstBar
	}

	values = make([]float64, prices.Bars())
	for bar := defined; bar < len(values); bar++ {
		values[bar] = combine(first.Values[bar], second.Values[bar])
	}

	return values, defined + compositeMargin
}
