package indicator

import (
	"github.com/pkg/errors"

	"github.com/tradelab/indicore/pkg/types"
)

// Epsilon is the tolerance below which a denominator is treated as zero.
const Epsilon = 1e-9

var (
	ErrInvalidPeriod             = errors.New("invalid period")
	ErrInvalidAccelerationFactor = errors.New("invalid acceleration factor")
	ErrInvalidSlot               = errors.New("indicator can not be mounted in this slot")
)

// Indicator is a configured calculator. Implementations are immutable values:
// Calculate never changes the receiver and returns the same output for the same input.
type Indicator interface {
	// Name is the display name, e.g. "Commodity Channel Index".
	Name() string

	// String is the name followed by the parameters in brackets.
	String() string

	// Slots lists the slots the indicator can be mounted in.
	Slots() []types.SlotType

	Calculate(prices *types.PriceSeries) Output
}

// Output is the result of one calculation pass.
type Output struct {
	Name     string
	Chart    types.ChartHint
	FirstBar int
	Values   []float64

	// Long and Short are the 0/1 signal series derived by the logic engine.
	Long  []float64
	Short []float64

	// ExitPrice marks Values as a price level the host may exit at.
	ExitPrice bool
}

// Components relabels the output for the slot it is mounted in. Signals are
// never recomputed here; the same arrays are handed to the host.
func (o Output) Components(slot types.SlotType) []types.Component {
	primary := types.Component{
		Name:     o.Name,
		Role:     types.RoleRawValue,
		Chart:    o.Chart,
		FirstBar: o.FirstBar,
		Values:   o.Values,
	}

	if slot == types.SlotClose && o.ExitPrice {
		primary.Role = types.RolePriceSubstitute
		return []types.Component{primary}
	}

	components := []types.Component{primary}

	longRole, shortRole, ok := slot.SignalRoles()
	if !ok || o.Long == nil || o.Short == nil {
		return components
	}

	longName, shortName := "Is long entry allowed", "Is short entry allowed"
	if slot == types.SlotCloseFilter {
		longName, shortName = "Close out long position", "Close out short position"
	}

	return append(components,
		types.Component{Name: longName, Role: longRole, Chart: types.ChartNone, FirstBar: o.FirstBar, Values: o.Long},
		types.Component{Name: shortName, Role: shortRole, Chart: types.ChartNone, FirstBar: o.FirstBar, Values: o.Short},
	)
}

// Mount is an indicator placed in a strategy slot.
type Mount struct {
	Slot      types.SlotType
	Indicator Indicator
}

// Components calculates the indicator and labels the output for the slot.
func (m Mount) Components(prices *types.PriceSeries) []types.Component {
	return m.Indicator.Calculate(prices).Components(m.Slot)
}

func (m Mount) String() string {
	return m.Slot.String() + ": " + m.Indicator.String()
}

// CanMount reports whether ind accepts the slot.
func CanMount(ind Indicator, slot types.SlotType) bool {
	if slot == types.SlotNone {
		return true
	}

	for _, s := range ind.Slots() {
		if s == slot {
			return true
		}
	}
	return false
}

func validatePeriod(name string, period int) error {
	if period < 1 {
		return errors.Wrapf(ErrInvalidPeriod, "%s: %d", name, period)
	}
	return nil
}

// clearWarmup zeroes every entry before firstBar.
func clearWarmup(values []float64, firstBar int) {
	for i := 0; i < firstBar && i < len(values); i++ {
		values[i] = 0
	}
}

func previousBar(usePrevious bool) int {
	if usePrevious {
		return 1
	}
	return 0
}

func previousMarker(usePrevious bool) string {
	if usePrevious {
		return "*"
	}
	return ""
}
