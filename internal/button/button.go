// Package button turns the two raw momentary-button readings into debounced
// press/release transitions and resolves the two-button combo grammar into
// logical actions.
package button

import (
	"github.com/rs/zerolog/log"
)

// Action is one decoded user intent. At most one action is emitted per tick.
type Action uint8

const (
	None Action = iota
	CycleColor
	CycleMode
	IncreaseBrightness
)

func (a Action) String() string {
	switch a {
	case CycleColor:
		return "cycle-color"
	case CycleMode:
		return "cycle-mode"
	case IncreaseBrightness:
		return "increase-brightness"
	default:
		return "none"
	}
}

// debounceMillis is how long a raw reading must hold steady before a
// transition is accepted.
const debounceMillis = 50

type edge uint8

const (
	edgeNone edge = iota
	edgeDown
	edgeUp
)

// channel is the debounce state machine for one physical button. Timestamps
// are rolling uint32 milliseconds; all deltas use unsigned subtraction so
// counter wrap is harmless.
type channel struct {
	raw          bool   // last raw reading seen
	debounced    bool   // accepted state, true = pressed
	lastRaw      uint32 // when the raw reading last changed
	lastAccepted uint32 // when the debounced state last changed
	consumed     bool   // release already claimed by a combo
}

// update advances the machine with one raw reading. A transition is accepted
// only once the reading has been stable longer than the debounce window and
// differs from the accepted state.
func (c *channel) update(raw bool, now uint32) (edge, uint32) {
	if raw != c.raw {
		c.raw = raw
		c.lastRaw = now
	}
	if now-c.lastRaw > debounceMillis && raw != c.debounced {
		held := now - c.lastAccepted
		c.debounced = raw
		c.lastAccepted = now
		if raw {
			c.consumed = false
			return edgeDown, held
		}
		return edgeUp, held
	}
	return edgeNone, 0
}

// Decoder owns both button channels and the combo precedence between them.
//
// Grammar, evaluated on release edges:
//   - A released while B is up: cycle color.
//   - B released while A is up: cycle mode.
//   - B released while A is held: increase brightness, and A's eventual
//     release is suppressed so the combo never also cycles the color.
//
// A combo release of B always takes priority over A's pending release.
type Decoder struct {
	a, b channel
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode advances both channels with this tick's raw readings and returns
// the decoded action, if any. The two debounce windows are independent.
func (d *Decoder) Decode(rawA, rawB bool, now uint32) Action {
	ea, heldA := d.a.update(rawA, now)
	eb, heldB := d.b.update(rawB, now)

	if eb == edgeUp && !d.b.consumed {
		d.b.consumed = true
		log.Debug().Str("button", "b").Uint32("held_ms", heldB).Msg("released")
		if d.a.debounced {
			d.a.consumed = true
			return IncreaseBrightness
		}
		return CycleMode
	}
	if ea == edgeUp && !d.a.consumed {
		d.a.consumed = true
		log.Debug().Str("button", "a").Uint32("held_ms", heldA).Msg("released")
		if !d.b.debounced {
			return CycleColor
		}
	}
	return None
}
