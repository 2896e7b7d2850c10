package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// BasePrice selects which price of a bar an indicator is calculated from.
type BasePrice int

const (
	BasePriceOpen BasePrice = iota
	BasePriceHigh
	BasePriceLow
	BasePriceClose
	BasePriceMedian   // (H + L) / 2
	BasePriceTypical  // (H + L + C) / 3
	BasePriceWeighted // (H + L + 2C) / 4
)

var ErrInvalidBasePrice = errors.New("invalid base price")

var basePriceNames = []string{"Open", "High", "Low", "Close", "Median", "Typical", "Weighted"}

func (p BasePrice) String() string {
	if p < 0 || int(p) >= len(basePriceNames) {
		return "Unknown"
	}

	return basePriceNames[p]
}

func (p BasePrice) Valid() bool {
	return p >= BasePriceOpen && p <= BasePriceWeighted
}

func ParseBasePrice(s string) (BasePrice, error) {
	for i, name := range basePriceNames {
		if strings.EqualFold(name, s) {
			return BasePrice(i), nil
		}
	}

	return 0, errors.Wrapf(ErrInvalidBasePrice, "%q", s)
}

func (p *BasePrice) UnmarshalText(data []byte) error {
	t, err := ParseBasePrice(string(data))
	if err != nil {
		return err
	}

	*p = t
	return nil
}

func (p BasePrice) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *BasePrice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return p.UnmarshalText([]byte(s))
}
