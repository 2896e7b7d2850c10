package types

import (
	"strings"

	"github.com/pkg/errors"
)

// SlotType is the position of an indicator inside a strategy.
type SlotType int

const (
	SlotNone SlotType = iota
	SlotOpenFilter
	SlotCloseFilter
	// SlotClose is the exit point slot; price-dependent indicators provide the exit price there.
	SlotClose
)

var ErrInvalidSlotType = errors.New("invalid slot type")

var slotTypeNames = []string{"none", "openFilter", "closeFilter", "close"}

func (s SlotType) String() string {
	if s < 0 || int(s) >= len(slotTypeNames) {
		return "unknown"
	}
	return slotTypeNames[s]
}

func ParseSlotType(s string) (SlotType, error) {
	for i, name := range slotTypeNames {
		if strings.EqualFold(name, s) {
			return SlotType(i), nil
		}
	}

	return SlotNone, errors.Wrapf(ErrInvalidSlotType, "%q", s)
}

func (s *SlotType) UnmarshalText(data []byte) error {
	t, err := ParseSlotType(string(data))
	if err != nil {
		return err
	}

	*s = t
	return nil
}

func (s SlotType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SignalRoles returns the roles of the long/short boolean pair for this slot.
// ok is false when the slot does not take a boolean pair.
func (s SlotType) SignalRoles() (long, short ComponentRole, ok bool) {
	switch s {
	case SlotOpenFilter:
		return RoleAllowOpenLong, RoleAllowOpenShort, true
	case SlotCloseFilter:
		return RoleForceCloseLong, RoleForceCloseShort, true
	}

	return 0, 0, false
}
