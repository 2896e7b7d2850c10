package indicator

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// MAMethod is the smoothing method of the moving average engine.
type MAMethod int

const (
	MASimple MAMethod = iota
	MAExponential
	MASmoothed
	MALinearWeighted
)

var ErrInvalidMAMethod = errors.New("invalid moving average method")

var maMethodNames = []string{"Simple", "Exponential", "Smoothed", "LinearWeighted"}

func (m MAMethod) String() string {
	if m < 0 || int(m) >= len(maMethodNames) {
		return "Unknown"
	}
	return maMethodNames[m]
}

func (m MAMethod) Valid() bool {
	return m >= MASimple && m <= MALinearWeighted
}

func ParseMAMethod(s string) (MAMethod, error) {
	switch strings.ToUpper(s) {
	case "SMA":
		return MASimple, nil
	case "EMA", "EWMA":
		return MAExponential, nil
	case "SMMA", "RMA":
		return MASmoothed, nil
	case "WMA", "LWMA":
		return MALinearWeighted, nil
	}

	for i, name := range maMethodNames {
		if strings.EqualFold(name, s) {
			return MAMethod(i), nil
		}
	}

	return 0, errors.Wrapf(ErrInvalidMAMethod, "%q", s)
}

func (m *MAMethod) UnmarshalText(data []byte) error {
	t, err := ParseMAMethod(string(data))
	if err != nil {
		return err
	}

	*m = t
	return nil
}

func (m MAMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MAMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}

// MovingAverage smooths source with the given method. The value calculated from the
// window ending at bar is stored at bar+shift, so the output is delayed by shift bars.
// Entries before period-1+shift are zero; when the series is too short the whole
// output is zero.
func MovingAverage(period, shift int, method MAMethod, source []float64) []float64 {
	bars := len(source)
	ma := make([]float64, bars)

	if period <= 1 && shift == 0 {
		copy(ma, source)
		return ma
	}

	if period < 1 || shift < 0 || period+shift > bars {
		return ma
	}

	// last source bar whose average still fits into the output
	end := bars - shift

	switch method {
	case MAExponential:
		alpha := 2.0 / float64(period+1)
		ma[period-1+shift] = floats.Sum(source[:period]) / float64(period)
		for bar := period; bar < end; bar++ {
			ma[bar+shift] = alpha*source[bar] + (1-alpha)*ma[bar+shift-1]
		}

	case MASmoothed:
		ma[period-1+shift] = floats.Sum(source[:period]) / float64(period)
		for bar := period; bar < end; bar++ {
			ma[bar+shift] = (ma[bar+shift-1]*float64(period-1) + source[bar]) / float64(period)
		}

	case MALinearWeighted:
		weights := make([]float64, period)
		for i := range weights {
			weights[i] = float64(i + 1)
		}
		weight := floats.Sum(weights)
		for bar := period - 1; bar < end; bar++ {
			ma[bar+shift] = floats.Dot(weights, source[bar-period+1:bar+1]) / weight
		}

	default:
		for bar := period - 1; bar < end; bar++ {
			ma[bar+shift] = floats.Sum(source[bar-period+1:bar+1]) / float64(period)
		}
	}

	return ma
}
