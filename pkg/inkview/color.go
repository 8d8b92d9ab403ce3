package inkview

import (
	"image/color"

	"inkview/internal/convert"
)

// Color is a drawing color stored as 0x00RRGGBB.
type Color int32

var _ color.Color = Color(0)

// Gray levels of the e-ink palette.
const (
	White     = Color(WHITE)
	LightGray = Color(LGRAY)
	DarkGray  = Color(DGRAY)
	Black     = Color(BLACK)
)

// RGB builds a color from its channels.
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// Gray builds a gray color of the given intensity.
func Gray(v uint8) Color {
	return Color(int32(v) * 0x010101)
}

// Channels splits c into its red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Luma is the perceived brightness of c.
func (c Color) Luma() uint8 {
	return convert.Luma(c.Channels())
}

// RGBA implements color.Color; the result is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := c.Channels()
	r = uint32(cr)
	r |= r << 8
	g = uint32(cg)
	g |= g << 8
	b = uint32(cb)
	b |= b << 8
	return r, g, b, 0xffff
}
