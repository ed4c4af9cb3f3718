package led

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"
)

// captureDrawer records the last frame handed to Draw.
type captureDrawer struct {
	bounds image.Rectangle
	last   *image.NRGBA
	draws  int
	halted bool
}

func (d *captureDrawer) String() string          { return "capture" }
func (d *captureDrawer) Halt() error             { d.halted = true; return nil }
func (d *captureDrawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *captureDrawer) Bounds() image.Rectangle { return d.bounds }

func (d *captureDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.draws++
	d.last = image.NewNRGBA(r)
	for x := r.Min.X; x < r.Max.X; x++ {
		d.last.Set(x, 0, src.At(x, 0))
	}
	return nil
}

func TestShowScalesByBrightness(t *testing.T) {
	cd := &captureDrawer{bounds: image.Rect(0, 0, 4, 1)}
	s := NewDrawerStrip(cd, 4)

	s.SetPixel(0, 255, 0, 100)
	s.SetPixel(3, 10, 20, 30)
	s.SetBrightness(128)
	require.NoError(t, s.Show())

	assert.Equal(t, 1, cd.draws)
	got := cd.last.NRGBAAt(0, 0)
	assert.Equal(t, uint8(128), got.R, "255 * 128/255")
	assert.Equal(t, uint8(0), got.G)
	assert.Equal(t, uint8(50), got.B, "100 * 128/255")
}

func TestStagedPixelsPersistAcrossShows(t *testing.T) {
	cd := &captureDrawer{bounds: image.Rect(0, 0, 2, 1)}
	s := NewDrawerStrip(cd, 2)
	s.SetBrightness(255)
	s.SetPixel(1, 7, 8, 9)
	require.NoError(t, s.Show())
	require.NoError(t, s.Show())

	got := cd.last.NRGBAAt(1, 0)
	assert.Equal(t, color.NRGBA{R: 7, G: 8, B: 9, A: 255}, got)
}

func TestCloseHaltsDrawer(t *testing.T) {
	cd := &captureDrawer{bounds: image.Rect(0, 0, 1, 1)}
	s := NewDrawerStrip(cd, 1)
	require.NoError(t, s.Close())
	assert.True(t, cd.halted)
}

func TestShowOverNRZRecorder(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := nrzled.NewSPI(spitest.NewRecordRaw(&buf), &nrzled.Opts{
		NumPixels: 10,
		Channels:  3,
		Freq:      2500 * physic.KiloHertz,
	})
	require.NoError(t, err)

	s := NewDrawerStrip(d, 10)
	s.SetBrightness(255)
	s.SetPixel(0, 255, 0, 0)
	require.NoError(t, s.Show())
	assert.NotZero(t, buf.Len(), "frame must reach the SPI transport")
}
