// Package palette holds the immutable color and brightness tables for the
// night light, plus the static per-position role maps the animation modes
// index into. Nothing in here is mutated after init.
package palette

// Color is a raw 8-bit-per-channel RGB value. No gamma or perceptual
// correction is applied anywhere; the strip gets these bytes as-is.
type Color struct {
	R, G, B uint8
}

const (
	// NumColors is the size of the selectable palette.
	NumColors = 8
	// NumLevels is the number of brightness steps.
	NumLevels = 5
	// NumLeds is the fixed number of addressable elements on the strip.
	NumLeds = 10
)

// Base is the selectable palette, indexed by the persisted color index.
var Base = [NumColors]Color{
	{255, 255, 255}, // white
	{255, 0, 0},     // red
	{255, 96, 0},    // orange
	{255, 200, 0},   // yellow
	{0, 255, 0},     // green
	{0, 200, 255},   // cyan
	{0, 0, 255},     // blue
	{255, 0, 128},   // pink
}

// Complementary is index-aligned with Base: Complementary[i] is the paired
// accent color shown by the complementary and rain modes.
var Complementary = [NumColors]Color{
	{255, 140, 0}, // amber
	{0, 255, 255}, // cyan
	{0, 128, 255}, // azure
	{128, 0, 255}, // violet
	{255, 0, 255}, // magenta
	{255, 64, 0},  // vermilion
	{255, 255, 0}, // yellow
	{0, 255, 128}, // mint
}

// BrightnessLevels maps the persisted brightness level (0..4) to the strip
// brightness byte. Monotonically increasing.
var BrightnessLevels = [NumLevels]uint8{10, 40, 90, 160, 255}

// Role is a position's fixed front/rear assignment, used by the
// complementary mode.
type Role uint8

const (
	Front Role = iota
	Rear
)

var roles [NumLeds]Role
var phases [NumLeds]uint8

func init() {
	for i := 0; i < NumLeds; i++ {
		if i%2 == 0 {
			roles[i] = Front
		} else {
			roles[i] = Rear
		}
		phases[i] = uint8(i % 3)
	}
}

// RoleAt returns the static front/rear role of an LED position.
func RoleAt(i int) Role { return roles[i] }

// PhaseAt returns the static rain phase id (0..2) of an LED position.
func PhaseAt(i int) uint8 { return phases[i] }

// Blend returns the halfway mix of a and b, per channel. Integer division
// truncates toward the lower endpoint on odd differences, so the blend of
// 255 and 0 is 127. Downstream rendering depends on that exact rounding.
func Blend(a, b Color) Color {
	return Color{
		R: halfway(a.R, b.R),
		G: halfway(a.G, b.G),
		B: halfway(a.B, b.B),
	}
}

func halfway(a, b uint8) uint8 {
	if a < b {
		return a + (b-a)/2
	}
	if a > b {
		return b + (a-b)/2
	}
	return a
}
