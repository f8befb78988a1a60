package annotate

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which spans Annotate produces.
type Mode int

const (
	// ModeDecorate emits class spans only.
	ModeDecorate Mode = iota

	// ModeDecorateHide also emits hidden spans over raw formatting syntax.
	ModeDecorateHide
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown mode")

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDecorate:
		return "decorate"
	case ModeDecorateHide:
		return "hide"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name. "decorate+hide" and "live" are accepted
// as aliases of "hide". The empty string selects ModeDecorate.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "decorate":
		return ModeDecorate, nil
	case "hide", "decorate+hide", "live":
		return ModeDecorateHide, nil
	default:
		return ModeDecorate, fmt.Errorf("%w: %q (valid: decorate, hide)", ErrUnknownMode, name)
	}
}
