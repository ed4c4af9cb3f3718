// Package fake records staged pixels and commits for headless tests.
package fake

// Strip implements led.Strip in memory. Pixels and Brightness hold the
// currently staged values; Shows counts committed frames.
type Strip struct {
	Pixels     [][3]uint8
	Brightness uint8
	Shows      int
	Closed     bool
}

func New(count int) *Strip {
	return &Strip{Pixels: make([][3]uint8, count)}
}

func (s *Strip) SetPixel(i int, r, g, b uint8) {
	if i < 0 || i >= len(s.Pixels) {
		return
	}
	s.Pixels[i] = [3]uint8{r, g, b}
}

func (s *Strip) SetBrightness(v uint8) {
	s.Brightness = v
}

func (s *Strip) Show() error {
	s.Shows++
	return nil
}

func (s *Strip) Close() error {
	s.Closed = true
	return nil
}
