package indicator

import (
	"strings"

	"github.com/pkg/errors"
)

// LogicMode selects how an indicator series is turned into long/short signals.
// The enum is closed; selection happens by index, never by display text.
type LogicMode int

const (
	LogicRises LogicMode = iota
	LogicFalls
	LogicHigherThanLevel
	LogicLowerThanLevel
	LogicCrossesUpward
	LogicCrossesDownward
	LogicDirectionChangeUpward
	LogicDirectionChangeDownward
	LogicNoFilter
)

var ErrInvalidLogicMode = errors.New("invalid logic mode")

var logicModeNames = []string{
	"rises",
	"falls",
	"higherThanLevel",
	"lowerThanLevel",
	"crossesUpward",
	"crossesDownward",
	"directionChangeUpward",
	"directionChangeDownward",
	"noFilter",
}

func (m LogicMode) String() string {
	if m < 0 || int(m) >= len(logicModeNames) {
		return "unknown"
	}
	return logicModeNames[m]
}

func (m LogicMode) Valid() bool {
	return m >= LogicRises && m <= LogicNoFilter
}

// UsesLevel reports whether the mode compares the series against the level pair.
func (m LogicMode) UsesLevel() bool {
	switch m {
	case LogicHigherThanLevel, LogicLowerThanLevel, LogicCrossesUpward, LogicCrossesDownward:
		return true
	}
	return false
}

// samples is the number of consecutive values the mode looks at.
func (m LogicMode) samples() int {
	switch m {
	case LogicDirectionChangeUpward, LogicDirectionChangeDownward:
		return 3
	case LogicNoFilter:
		return 0
	}
	return 2
}

func ParseLogicMode(s string) (LogicMode, error) {
	for i, name := range logicModeNames {
		if strings.EqualFold(name, s) {
			return LogicMode(i), nil
		}
	}

	return 0, errors.Wrapf(ErrInvalidLogicMode, "%q", s)
}

func (m *LogicMode) UnmarshalText(data []byte) error {
	t, err := ParseLogicMode(string(data))
	if err != nil {
		return err
	}

	*m = t
	return nil
}

func (m LogicMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// OscillatorLogic derives the long and short signal series of values.
//
// For every bar b >= firstBar the mode is evaluated on cur = values[b-prev],
// the preceding value and the one before that. prev is 0 or 1; with prev = 1 the
// decision uses the completed previous bar. Bars without enough history stay 0.
func OscillatorLogic(firstBar, prev int, values []float64, levelLong, levelShort float64, mode LogicMode) (long, short []float64) {
	bars := len(values)
	long = make([]float64, bars)
	short = make([]float64, bars)

	start := firstBar
	if need := prev + mode.samples() - 1; start < need {
		start = need
	}
	if start < 0 {
		start = 0
	}

	for bar := start; bar < bars; bar++ {
		cur := bar - prev

		var l, s bool
		switch mode {
		case LogicRises:
			l = values[cur] > values[cur-1]
			s = values[cur] < values[cur-1]

		case LogicFalls:
			l = values[cur] < values[cur-1]
			s = values[cur] > values[cur-1]

		case LogicHigherThanLevel:
			l = values[cur] > levelLong
			s = values[cur] < levelShort

		case LogicLowerThanLevel:
			l = values[cur] < levelLong
			s = values[cur] > levelShort

		case LogicCrossesUpward:
			l = values[cur-1] <= levelLong && values[cur] > levelLong
			s = values[cur-1] >= levelShort && values[cur] < levelShort

		case LogicCrossesDownward:
			l = values[cur-1] >= levelLong && values[cur] < levelLong
			s = values[cur-1] <= levelShort && values[cur] > levelShort

		case LogicDirectionChangeUpward:
			// local minimum / maximum at the middle sample
			l = values[cur-2] > values[cur-1] && values[cur] > values[cur-1]
			s = values[cur-2] < values[cur-1] && values[cur] < values[cur-1]

		case LogicDirectionChangeDownward:
			l = values[cur-2] < values[cur-1] && values[cur] < values[cur-1]
			s = values[cur-2] > values[cur-1] && values[cur] > values[cur-1]

		case LogicNoFilter:
			l, s = true, true
		}

		long[bar] = boolToFloat(l)
		short[bar] = boolToFloat(s)
	}

	return long, short
}

// PriceLogic compares a price against an indicator level bar by bar: long when the
// price is above the level, short when it is below. Used by indicators drawn on
// the price chart, such as the parabolic SAR.
func PriceLogic(firstBar int, price, level []float64) (long, short []float64) {
	bars := len(level)
	long = make([]float64, bars)
	short = make([]float64, bars)

	if firstBar < 0 {
		firstBar = 0
	}

	for bar := firstBar; bar < bars && bar < len(price); bar++ {
		long[bar] = boolToFloat(price[bar] > level[bar])
		short[bar] = boolToFloat(price[bar] < level[bar])
	}

	return long, short
}
