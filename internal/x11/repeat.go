package x11

import (
	"fmt"

	"github.com/linuxdeepin/go-x11-client/ext/xkb"
)

// Repeat rate bounds accepted by the applicator. The wire encodes the
// inter-repeat interval as a uint16 millisecond count, so a rate above
// 1000 would truncate to an interval of zero.
const (
	MinRate = 1
	MaxRate = 1000
)

// Length of the per-key repeat bitmap in the SetControls request. It
// is always sent all-zero, meaning no per-key overrides.
const perKeyRepeatLen = 32

// RepeatInterval converts a repeat rate in repeats per second into the
// wire's inter-repeat interval in milliseconds. The integer division
// truncates: rate 70 maps to a 14ms interval, which plays back at
// roughly 71.4Hz. The truncation is kept as-is for compatibility with
// the repeat cadence other tools configure for the same input.
// Rates outside [MinRate, MaxRate] yield 0, which is never a valid
// wire interval; SetRepeat rejects them before converting.
func RepeatInterval(rate uint16) uint16 {
	if rate < MinRate || rate > MaxRate {
		return 0
	}
	return 1000 / rate
}

// SetRepeat enables key repeat on the core keyboard with the given
// rate (repeats per second) and delay (milliseconds before the first
// repeat). Every other XKB control is left at its current value. The
// request is checked, so a protocol error reply is returned to the
// caller instead of surfacing in the event stream.
func (c *Conn) SetRepeat(rate, delay uint16) error {
	if rate < MinRate || rate > MaxRate {
		return fmt.Errorf("repeat rate %d out of range [%d, %d]", rate, MinRate, MaxRate)
	}
	interval := RepeatInterval(rate)

	perKeyRepeat := make([]byte, perKeyRepeatLen)

	// Only changeControls names a control to touch, and only the
	// repeat delay and interval carry data. Everything else stays at
	// its zero sentinel, leaving those controls unchanged.
	ctrls := &xkb.Controls{
		RepeatDelay:    delay,
		RepeatInterval: interval,
		PerKeyRepeat:   perKeyRepeat,
	}
	err := xkb.SetControlsChecked(c.conn, xkb.IDUseCoreKbd,
		0, 0, // real modifier affect masks, internal and ignore-lock
		0, 0, // virtual modifier counterparts
		0,                      // affected boolean controls
		xkb.BoolCtrlRepeatKeys, // change repeat keys only
		ctrls,
	).Check(c.conn)
	if err != nil {
		return fmt.Errorf("cannot set repeat rate and delay: %w", err)
	}

	return nil
}
