// Package led abstracts the addressable strip: stage pixel colors and a
// global brightness, then commit the frame in one Show.
package led

// Strip is the transport the animation engine writes to. SetPixel and
// SetBrightness only stage values; nothing reaches the hardware until Show.
type Strip interface {
	SetPixel(i int, r, g, b uint8)
	SetBrightness(v uint8)
	Show() error
	Close() error
}
