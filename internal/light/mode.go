package light

// Mode selects how target colors are computed across the strip.
type Mode uint8

const (
	// ModeUnified shows the selected base color on every position.
	ModeUnified Mode = iota
	// ModeComplementary shows the base color on front positions and the
	// paired complementary color on rear positions.
	ModeComplementary
	// ModeRain rotates base, blended and complementary colors across the
	// three position phases every second.
	ModeRain

	modeCount
)

// Next returns the following mode, wrapping after the last one.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

func (m Mode) String() string {
	switch m {
	case ModeUnified:
		return "unified"
	case ModeComplementary:
		return "complementary"
	case ModeRain:
		return "rain"
	default:
		return "unknown"
	}
}
