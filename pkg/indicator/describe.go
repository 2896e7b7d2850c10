package indicator

import (
	"math"
	"strconv"
	"strings"
)

// Description is the human readable form of the long and short signals.
type Description struct {
	Long  string
	Short string
}

// Describer is implemented by indicators that can explain their signals.
type Describer interface {
	Description() Description
}

// logicPhrases maps each mode to the long and short phrase templates. The level
// placeholder is replaced by the formatted level of the respective side.
var logicPhrases = map[LogicMode][2]string{
	LogicRises:                   {"rises", "falls"},
	LogicFalls:                   {"falls", "rises"},
	LogicHigherThanLevel:         {"is higher than the %s", "is lower than the %s"},
	LogicLowerThanLevel:          {"is lower than the %s", "is higher than the %s"},
	LogicCrossesUpward:           {"crosses the %s upward", "crosses the %s downward"},
	LogicCrossesDownward:         {"crosses the %s downward", "crosses the %s upward"},
	LogicDirectionChangeUpward:   {"changes its direction upward", "changes its direction downward"},
	LogicDirectionChangeDownward: {"changes its direction downward", "changes its direction upward"},
	LogicNoFilter:                {"does not act as a filter", "does not act as a filter"},
}

// Describe renders the signal description of subject (usually the indicator's
// String) for the given mode. A zero level is written as "zero line".
func Describe(subject string, mode LogicMode, level float64) Description {
	phrases, ok := logicPhrases[mode]
	if !ok {
		return Description{Long: subject, Short: subject}
	}

	return Description{
		Long:  subject + " " + fillLevel(phrases[0], level),
		Short: subject + " " + fillLevel(phrases[1], -level),
	}
}

func fillLevel(phrase string, level float64) string {
	text := "zero line"
	if math.Abs(level) > Epsilon {
		text = "Level " + strconv.FormatFloat(level, 'f', -1, 64)
	}

	return strings.Replace(phrase, "%s", text, 1)
}
