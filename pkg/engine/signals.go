package engine

import (
	"github.com/tradelab/indicore/pkg/types"
)

// Signals merges the components of all slots into per-bar decisions.
// An entry is allowed when every open filter allows it; a position is closed
// when any close filter says so.
type Signals struct {
	OpenLong   []bool
	OpenShort  []bool
	CloseLong  []bool
	CloseShort []bool

	// ExitPrice is the price substitute of the close slot, nil without one.
	ExitPrice []float64
}

func CombineSignals(bars int, results []Result) Signals {
	s := Signals{
		OpenLong:   make([]bool, bars),
		OpenShort:  make([]bool, bars),
		CloseLong:  make([]bool, bars),
		CloseShort: make([]bool, bars),
	}

	// without an open filter nothing gates the entries
	for bar := 0; bar < bars; bar++ {
		s.OpenLong[bar] = true
		s.OpenShort[bar] = true
	}

	for _, r := range results {
		for _, c := range r.Components {
			if c.Role == types.RolePriceSubstitute {
				s.ExitPrice = c.Values
				continue
			}

			for bar := 0; bar < bars; bar++ {
				active := bar >= c.FirstBar && c.Active(bar)
				switch c.Role {
				case types.RoleAllowOpenLong:
					s.OpenLong[bar] = s.OpenLong[bar] && active
				case types.RoleAllowOpenShort:
					s.OpenShort[bar] = s.OpenShort[bar] && active
				case types.RoleForceCloseLong:
					s.CloseLong[bar] = s.CloseLong[bar] || active
				case types.RoleForceCloseShort:
					s.CloseShort[bar] = s.CloseShort[bar] || active
				}
			}
		}
	}

	return s
}
