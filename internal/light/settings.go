package light

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dJPoida/led-night-light/internal/button"
	"github.com/dJPoida/led-night-light/internal/palette"
	"github.com/dJPoida/led-night-light/internal/store"
)

// Store slot addresses for the three persisted selections.
const (
	addrMode       = 0
	addrBrightness = 1
	addrColor      = 2
)

// Settings are the three user selections that survive power loss. All fields
// are always in range after LoadSettings.
type Settings struct {
	Mode       Mode
	Level      uint8 // brightness level, 0..4
	ColorIndex uint8 // palette index, 0..7
}

// DefaultSettings is used for any slot the store has never seen, or holds a
// corrupt value for.
var DefaultSettings = Settings{Mode: ModeUnified, Level: 2, ColorIndex: 0}

// Apply mutates the settings for one decoded action and reports whether
// anything changed. Every cycle wraps exactly at its range boundary.
func (s *Settings) Apply(a button.Action) bool {
	switch a {
	case button.CycleColor:
		s.ColorIndex = (s.ColorIndex + 1) % palette.NumColors
	case button.CycleMode:
		s.Mode = s.Mode.Next()
	case button.IncreaseBrightness:
		s.Level = (s.Level + 1) % palette.NumLevels
	default:
		return false
	}
	return true
}

// Save writes all three selections to their fixed slots. The write is
// synchronous; the caller decides what a failure means.
func (s Settings) Save(st store.ByteStore) error {
	if err := st.WriteByte(addrMode, uint8(s.Mode)); err != nil {
		return fmt.Errorf("save mode: %w", err)
	}
	if err := st.WriteByte(addrBrightness, s.Level); err != nil {
		return fmt.Errorf("save brightness: %w", err)
	}
	if err := st.WriteByte(addrColor, s.ColorIndex); err != nil {
		return fmt.Errorf("save color: %w", err)
	}
	return nil
}

// LoadSettings reads the three slots, keeping the compiled-in default for
// any slot that is unset (sentinel) or out of range. A corrupt non-sentinel
// byte is rejected rather than trusted, since it would otherwise index past
// the palette tables.
func LoadSettings(st store.ByteStore) Settings {
	s := DefaultSettings
	if v, ok := loadSlot(st, addrMode); ok {
		if v < uint8(modeCount) {
			s.Mode = Mode(v)
		} else {
			log.Warn().Uint8("value", v).Msg("corrupt stored mode, keeping default")
		}
	}
	if v, ok := loadSlot(st, addrBrightness); ok {
		if v < palette.NumLevels {
			s.Level = v
		} else {
			log.Warn().Uint8("value", v).Msg("corrupt stored brightness, keeping default")
		}
	}
	if v, ok := loadSlot(st, addrColor); ok {
		if v < palette.NumColors {
			s.ColorIndex = v
		} else {
			log.Warn().Uint8("value", v).Msg("corrupt stored color, keeping default")
		}
	}
	return s
}

func loadSlot(st store.ByteStore, addr int) (uint8, bool) {
	v, err := st.ReadByte(addr)
	if err != nil {
		log.Warn().Err(err).Int("addr", addr).Msg("store read failed, keeping default")
		return 0, false
	}
	if v == store.Sentinel {
		return 0, false
	}
	return v, true
}
