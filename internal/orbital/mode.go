package orbital

import (
	"fmt"
	"strings"
)

// Mode selects the force model for a step. The zero value is not a valid
// mode.
type Mode int

const (
	Gravity Mode = iota + 1
	Springs
)

func (m Mode) String() string {
	switch m {
	case Gravity:
		return "gravity"
	case Springs:
		return "springs"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool { return m == Gravity || m == Springs }

// Toggle returns the other force model.
func (m Mode) Toggle() Mode {
	if m == Springs {
		return Gravity
	}
	return Springs
}

// ParseMode accepts "gravity" or "springs" (also "spring"), any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gravity":
		return Gravity, nil
	case "springs", "spring":
		return Springs, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
