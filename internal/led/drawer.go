package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
)

// refreshKHz is the WS2812 NRZ bit rate in kilohertz.
const refreshKHz physic.Frequency = 800

// DrawerStrip adapts any periph display.Drawer (nrzled over SPI on hardware,
// the console screen device in simulation) to the Strip capability. Pixels
// are staged in a 1-row image; brightness is applied by integer channel
// scaling at Show time, since NRZ strips have no global brightness register.
type DrawerStrip struct {
	drawer display.Drawer
	staged []colorRGB
	frame  *image.NRGBA
	level  uint8
}

type colorRGB struct {
	r, g, b uint8
}

// NewDrawerStrip wraps an already-open drawer driving count pixels.
func NewDrawerStrip(d display.Drawer, count int) *DrawerStrip {
	return &DrawerStrip{
		drawer: d,
		staged: make([]colorRGB, count),
		frame:  image.NewNRGBA(image.Rect(0, 0, count, 1)),
	}
}

// OpenSPI opens the named SPI port (empty string picks the first one) and
// wires an nrzled device for count pixels behind a DrawerStrip.
func OpenSPI(dev string, count int) (*DrawerStrip, error) {
	p, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", dev, err)
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      ((refreshKHz * 3) + 100) * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("init nrzled: %w", err)
	}
	return NewDrawerStrip(d, count), nil
}

// NewScreen returns a strip rendered as ANSI blocks on the console.
func NewScreen(count int) *DrawerStrip {
	return NewDrawerStrip(screen.New(count), count)
}

func (s *DrawerStrip) SetPixel(i int, r, g, b uint8) {
	if i < 0 || i >= len(s.staged) {
		return
	}
	s.staged[i] = colorRGB{r, g, b}
}

func (s *DrawerStrip) SetBrightness(v uint8) {
	s.level = v
}

// Show scales the staged pixels by the staged brightness and commits the
// frame to the drawer.
func (s *DrawerStrip) Show() error {
	for i, c := range s.staged {
		s.frame.SetNRGBA(i, 0, scaleNRGBA(c, s.level))
	}
	if err := s.drawer.Draw(s.drawer.Bounds(), s.frame, image.Point{}); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Close halts the drawer, blanking NRZ strips.
func (s *DrawerStrip) Close() error {
	return s.drawer.Halt()
}

func scaleNRGBA(c colorRGB, level uint8) color.NRGBA {
	return color.NRGBA{
		R: uint8(uint16(c.r) * uint16(level) / 255),
		G: uint8(uint16(c.g) * uint16(level) / 255),
		B: uint8(uint16(c.b) * uint16(level) / 255),
		A: 255,
	}
}
