package types

// ComponentRole tells the host how to consume a component's values.
type ComponentRole int

const (
	RoleRawValue ComponentRole = iota
	RolePriceSubstitute
	RoleAllowOpenLong
	RoleAllowOpenShort
	RoleForceCloseLong
	RoleForceCloseShort
)

var componentRoleNames = map[ComponentRole]string{
	RoleRawValue:        "RawValue",
	RolePriceSubstitute: "PriceSubstitute",
	RoleAllowOpenLong:   "AllowOpenLong",
	RoleAllowOpenShort:  "AllowOpenShort",
	RoleForceCloseLong:  "ForceCloseLong",
	RoleForceCloseShort: "ForceCloseShort",
}

func (r ComponentRole) String() string {
	if s, ok := componentRoleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// IsSignal reports whether the role carries a 0/1 gate series.
func (r ComponentRole) IsSignal() bool {
	return r >= RoleAllowOpenLong
}

// ChartHint is passed through to the charting layer untouched.
type ChartHint string

const (
	ChartNone      ChartHint = "none"
	ChartLine      ChartHint = "line"
	ChartHistogram ChartHint = "histogram"
	ChartDot       ChartHint = "dot"
)

// Component is one named output series of an indicator.
type Component struct {
	Name     string        `json:"name"`
	Role     ComponentRole `json:"role"`
	Chart    ChartHint     `json:"chart"`
	FirstBar int           `json:"firstBar"`
	Values   []float64     `json:"values"`
}

// Active reports whether a signal component is set at the given bar.
func (c Component) Active(bar int) bool {
	if bar < 0 || bar >= len(c.Values) {
		return false
	}
	return c.Values[bar] > 0.5
}
