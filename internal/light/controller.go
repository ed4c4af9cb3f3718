// Package light holds the night light's mutable state and the per-tick
// animation engine: selection cycling, mode-specific target colors, and the
// graduator that walks the strip toward those targets one unit per frame.
package light

import (
	"github.com/rs/zerolog/log"

	"github.com/dJPoida/led-night-light/internal/button"
	"github.com/dJPoida/led-night-light/internal/led"
	"github.com/dJPoida/led-night-light/internal/palette"
	"github.com/dJPoida/led-night-light/internal/store"
)

const (
	// frameIntervalMillis rate-limits animation steps to ~120 Hz. The clock
	// capability is millisecond-granular, so the interval is whole ms.
	frameIntervalMillis = 8
	// rainIntervalMillis is how long each rain phase lasts.
	rainIntervalMillis = 1000
)

// Controller owns every piece of mutable state: the persisted selections,
// both button channels, and the live animation values. It is driven by a
// single caller; nothing here is safe for concurrent use.
type Controller struct {
	settings Settings
	store    store.ByteStore
	strip    led.Strip
	decoder  *button.Decoder

	target [palette.NumLeds]palette.Color
	actual [palette.NumLeds]palette.Color

	targetBrightness uint8
	actualBrightness uint8

	rainPhase   uint8
	lastPhaseAt uint32
	lastFrameAt uint32
}

// NewController loads the persisted selections and returns a controller with
// all actual values at zero, so the first frames animate up from dark.
func NewController(st store.ByteStore, strip led.Strip) *Controller {
	c := &Controller{
		store:   st,
		strip:   strip,
		decoder: button.NewDecoder(),
	}
	c.settings = LoadSettings(st)
	log.Info().
		Str("mode", c.settings.Mode.String()).
		Uint8("brightness_level", c.settings.Level).
		Uint8("color_index", c.settings.ColorIndex).
		Msg("selections loaded")
	return c
}

// Settings returns the current persisted selections.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Tick runs one iteration of the control loop: decode buttons, apply and
// persist any action, recompute targets for the current mode, then graduate
// the strip toward them. now is rolling milliseconds; deltas tolerate wrap.
func (c *Controller) Tick(rawA, rawB bool, now uint32) {
	if a := c.decoder.Decode(rawA, rawB, now); a != button.None {
		c.apply(a)
	}
	c.computeTargets(now)
	c.graduate(now)
}

func (c *Controller) apply(a button.Action) {
	if !c.settings.Apply(a) {
		return
	}
	log.Info().
		Stringer("action", a).
		Str("mode", c.settings.Mode.String()).
		Uint8("brightness_level", c.settings.Level).
		Uint8("color_index", c.settings.ColorIndex).
		Msg("selection changed")
	if err := c.settings.Save(c.store); err != nil {
		log.Warn().Err(err).Msg("persist failed")
	}
}

// computeTargets fills the per-position targets for the current mode. The
// mode is never re-evaluated retroactively; whatever is current this tick
// wins.
func (c *Controller) computeTargets(now uint32) {
	c.targetBrightness = palette.BrightnessLevels[c.settings.Level]

	base := palette.Base[c.settings.ColorIndex]
	comp := palette.Complementary[c.settings.ColorIndex]

	switch c.settings.Mode {
	case ModeComplementary:
		for i := range c.target {
			if palette.RoleAt(i) == palette.Front {
				c.target[i] = base
			} else {
				c.target[i] = comp
			}
		}
	case ModeRain:
		if now-c.lastPhaseAt >= rainIntervalMillis {
			c.rainPhase = (c.rainPhase + 1) % 3
			c.lastPhaseAt = now
		}
		mid := palette.Blend(base, comp)
		secondary := (c.rainPhase + 1) % 3
		for i := range c.target {
			switch palette.PhaseAt(i) {
			case c.rainPhase:
				c.target[i] = base
			case secondary:
				c.target[i] = mid
			default:
				c.target[i] = comp
			}
		}
	default:
		for i := range c.target {
			c.target[i] = base
		}
	}
}

// graduate advances each actual value one unit toward its target, at most
// once per frame interval, and commits the frame only when something moved.
func (c *Controller) graduate(now uint32) {
	if now-c.lastFrameAt < frameIntervalMillis {
		return
	}
	c.lastFrameAt = now

	dirty := false
	for i := range c.actual {
		if c.actual[i] == c.target[i] {
			continue
		}
		c.actual[i] = stepColor(c.actual[i], c.target[i])
		c.strip.SetPixel(i, c.actual[i].R, c.actual[i].G, c.actual[i].B)
		dirty = true
	}
	if c.actualBrightness != c.targetBrightness {
		c.actualBrightness = stepByte(c.actualBrightness, c.targetBrightness)
		c.strip.SetBrightness(c.actualBrightness)
		dirty = true
	}
	if !dirty {
		return
	}
	if err := c.strip.Show(); err != nil {
		log.Warn().Err(err).Msg("strip show failed")
	}
}

func stepColor(a, t palette.Color) palette.Color {
	return palette.Color{
		R: stepByte(a.R, t.R),
		G: stepByte(a.G, t.G),
		B: stepByte(a.B, t.B),
	}
}

// stepByte moves a one unit toward t. It can never overshoot: the step is
// exactly 1 and stops on equality.
func stepByte(a, t uint8) uint8 {
	switch {
	case a < t:
		return a + 1
	case a > t:
		return a - 1
	default:
		return a
	}
}
