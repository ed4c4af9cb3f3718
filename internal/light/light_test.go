package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dJPoida/led-night-light/internal/button"
	"github.com/dJPoida/led-night-light/internal/led/fake"
	"github.com/dJPoida/led-night-light/internal/palette"
	"github.com/dJPoida/led-night-light/internal/store"
)

func newTestController() (*Controller, *fake.Strip, *store.MemStore) {
	st := store.NewMem()
	strip := fake.New(palette.NumLeds)
	return NewController(st, strip), strip, st
}

func TestCyclesWrapExactly(t *testing.T) {
	var cases = []struct {
		name   string
		action button.Action
		order  int
	}{
		{"color has order 8", button.CycleColor, 8},
		{"mode has order 3", button.CycleMode, 3},
		{"brightness has order 5", button.IncreaseBrightness, 5},
	}
	for _, v := range cases {
		t.Run(v.name, func(t *testing.T) {
			s := DefaultSettings
			for i := 0; i < v.order; i++ {
				assert.True(t, s.Apply(v.action))
				assert.Less(t, uint8(s.Mode), uint8(3))
				assert.Less(t, s.Level, uint8(palette.NumLevels))
				assert.Less(t, s.ColorIndex, uint8(palette.NumColors))
			}
			assert.Equal(t, DefaultSettings, s, "full cycle should restore the selection")
		})
	}
}

func TestLoadKeepsDefaultForSentinel(t *testing.T) {
	st := store.NewMem()
	require.NoError(t, st.WriteByte(1, 2))
	require.NoError(t, st.WriteByte(2, 6))
	// slot 0 untouched: sentinel

	s := LoadSettings(st)
	assert.Equal(t, DefaultSettings.Mode, s.Mode)
	assert.Equal(t, uint8(2), s.Level)
	assert.Equal(t, uint8(6), s.ColorIndex)
}

func TestLoadRejectsCorruptBytes(t *testing.T) {
	st := store.NewMem()
	require.NoError(t, st.WriteByte(0, 200))
	require.NoError(t, st.WriteByte(1, 9))
	require.NoError(t, st.WriteByte(2, 8))

	s := LoadSettings(st)
	assert.Equal(t, DefaultSettings, s)
}

func TestSaveWritesAllThreeSlots(t *testing.T) {
	st := store.NewMem()
	s := Settings{Mode: ModeRain, Level: 4, ColorIndex: 7}
	require.NoError(t, s.Save(st))

	for addr, want := range []uint8{uint8(ModeRain), 4, 7} {
		v, err := st.ReadByte(addr)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestControllerStartsDark(t *testing.T) {
	st := store.NewMem()
	require.NoError(t, (Settings{Mode: ModeUnified, Level: 4, ColorIndex: 1}).Save(st))
	c := NewController(st, fake.New(palette.NumLeds))

	assert.Equal(t, uint8(4), c.Settings().Level)
	assert.Equal(t, uint8(0), c.actualBrightness)
	for i := range c.actual {
		assert.Equal(t, palette.Color{}, c.actual[i])
	}
}

func TestUnifiedTargets(t *testing.T) {
	c, _, _ := newTestController()
	c.settings = Settings{Mode: ModeUnified, Level: 0, ColorIndex: 3}
	c.computeTargets(0)
	for i := range c.target {
		assert.Equal(t, palette.Base[3], c.target[i])
	}
	assert.Equal(t, palette.BrightnessLevels[0], c.targetBrightness)
}

func TestComplementaryTargetsFollowRoles(t *testing.T) {
	c, _, _ := newTestController()
	c.settings = Settings{Mode: ModeComplementary, Level: 0, ColorIndex: 5}
	c.computeTargets(0)
	for i := range c.target {
		if palette.RoleAt(i) == palette.Front {
			assert.Equal(t, palette.Base[5], c.target[i], "front position %d", i)
		} else {
			assert.Equal(t, palette.Complementary[5], c.target[i], "rear position %d", i)
		}
	}
}

func TestRainTargetsAtPhaseZero(t *testing.T) {
	c, _, _ := newTestController()
	c.settings = Settings{Mode: ModeRain, Level: 0, ColorIndex: 1}
	c.computeTargets(0) // no advance: delta is zero

	require.Equal(t, uint8(0), c.rainPhase)
	base := palette.Base[1]
	mid := palette.Blend(base, palette.Complementary[1])
	comp := palette.Complementary[1]
	for i := range c.target {
		switch palette.PhaseAt(i) {
		case 0:
			assert.Equal(t, base, c.target[i], "position %d", i)
		case 1:
			assert.Equal(t, mid, c.target[i], "position %d", i)
		case 2:
			assert.Equal(t, comp, c.target[i], "position %d", i)
		}
	}
}

func TestRainPhaseAdvancesEverySecond(t *testing.T) {
	c, _, _ := newTestController()
	c.settings = Settings{Mode: ModeRain, Level: 0, ColorIndex: 0}

	c.computeTargets(999)
	assert.Equal(t, uint8(0), c.rainPhase)
	c.computeTargets(1000)
	assert.Equal(t, uint8(1), c.rainPhase)
	c.computeTargets(1999)
	assert.Equal(t, uint8(1), c.rainPhase)
	c.computeTargets(2100)
	assert.Equal(t, uint8(2), c.rainPhase)
	c.computeTargets(3100)
	assert.Equal(t, uint8(0), c.rainPhase, "phase wraps mod 3")
}

func TestRainPhaseTimerToleratesClockWrap(t *testing.T) {
	c, _, _ := newTestController()
	c.settings = Settings{Mode: ModeRain, Level: 0, ColorIndex: 0}
	c.lastPhaseAt = ^uint32(0) - 400 // 401ms before wrap

	c.computeTargets(^uint32(0) - 100) // 300ms later
	assert.Equal(t, uint8(0), c.rainPhase)
	c.computeTargets(600) // 1001ms after lastPhaseAt, past the wrap
	assert.Equal(t, uint8(1), c.rainPhase)
}

func TestGraduatorStepsWithoutOvershoot(t *testing.T) {
	c, strip, _ := newTestController()
	c.settings = Settings{Mode: ModeUnified, Level: 0, ColorIndex: 0}
	c.target[0] = palette.Color{R: 3, G: 0, B: 2}
	c.targetBrightness = 2

	dist := func() int {
		d := absDiff(c.actual[0].R, c.target[0].R) +
			absDiff(c.actual[0].G, c.target[0].G) +
			absDiff(c.actual[0].B, c.target[0].B)
		return d
	}

	now := uint32(0)
	prev := dist()
	for prev > 0 {
		now += frameIntervalMillis
		c.graduate(now)
		cur := dist()
		assert.Less(t, cur, prev, "distance must strictly decrease")
		prev = cur
	}
	assert.Equal(t, c.target[0], c.actual[0])
	assert.Equal(t, uint8(2), c.actualBrightness)
	assert.Equal(t, [3]uint8{3, 0, 2}, strip.Pixels[0])
	assert.Equal(t, uint8(2), strip.Brightness)
}

func TestGraduatorRateLimited(t *testing.T) {
	c, strip, _ := newTestController()
	c.target[0] = palette.Color{R: 10}

	c.graduate(frameIntervalMillis)
	assert.Equal(t, 1, strip.Shows)
	c.graduate(frameIntervalMillis + 2) // too soon, no-op
	assert.Equal(t, 1, strip.Shows)
	assert.Equal(t, uint8(1), c.actual[0].R)
	c.graduate(2 * frameIntervalMillis)
	assert.Equal(t, 2, strip.Shows)
	assert.Equal(t, uint8(2), c.actual[0].R)
}

func TestConvergedFrameDoesNotCommit(t *testing.T) {
	c, strip, _ := newTestController()
	// already at target everywhere
	c.graduate(frameIntervalMillis)
	assert.Equal(t, 0, strip.Shows)
}

func TestFullScaleConvergesWithin255Frames(t *testing.T) {
	c, _, _ := newTestController()
	c.target[0] = palette.Color{R: 255, G: 255, B: 255}
	c.targetBrightness = 255

	now := uint32(0)
	for i := 0; i < 255; i++ {
		now += frameIntervalMillis
		c.graduate(now)
	}
	assert.Equal(t, c.target[0], c.actual[0])
	assert.Equal(t, uint8(255), c.actualBrightness)
}

func TestTickDecodesAppliesAndPersists(t *testing.T) {
	c, _, st := newTestController()
	startColor := c.Settings().ColorIndex

	// tap button A: press, hold past the debounce window, release, settle
	for now := uint32(0); now < 600; now++ {
		rawA := now >= 100 && now < 300
		c.Tick(rawA, false, now)
	}

	want := (startColor + 1) % palette.NumColors
	assert.Equal(t, want, c.Settings().ColorIndex)
	v, err := st.ReadByte(2)
	require.NoError(t, err)
	assert.Equal(t, want, v, "change must be persisted immediately")
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
