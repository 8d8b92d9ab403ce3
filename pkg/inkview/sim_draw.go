//go:build !(linux && arm && cgo)

package inkview

import (
	"image"

	"inkview/internal/convert"
)

// framebuffer is the simulator's screen memory. All coordinates are
// clipped to clip, which is always inside the image bounds.
type framebuffer struct {
	img  *image.RGBA
	clip image.Rectangle
}

func newFramebuffer(w, h int) *framebuffer {
	fb := &framebuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	fb.clip = fb.img.Bounds()
	fb.fill(fb.clip, White)
	return fb
}

func area(x, y, w, h int32) image.Rectangle {
	return image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h))
}

func (fb *framebuffer) setClip(r image.Rectangle) {
	fb.clip = r.Canon().Intersect(fb.img.Bounds())
}

func (fb *framebuffer) set(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(fb.clip) {
		return
	}
	r, g, b := c.Channels()
	i := fb.img.PixOffset(x, y)
	fb.img.Pix[i+0] = r
	fb.img.Pix[i+1] = g
	fb.img.Pix[i+2] = b
	fb.img.Pix[i+3] = 0xff
}

func (fb *framebuffer) at(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(fb.img.Bounds()) {
		return White
	}
	i := fb.img.PixOffset(x, y)
	return RGB(fb.img.Pix[i], fb.img.Pix[i+1], fb.img.Pix[i+2])
}

// line draws with Bresenham's algorithm. keep decides per pixel index
// whether the pixel is drawn; nil draws all of them.
func (fb *framebuffer) line(x1, y1, x2, y2 int, c Color, keep func(i int) bool) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for i := 0; ; i++ {
		if keep == nil || keep(i) {
			fb.set(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func (fb *framebuffer) fill(r image.Rectangle, c Color) {
	r = r.Intersect(fb.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fb.set(x, y, c)
		}
	}
}

func (fb *framebuffer) rect(r image.Rectangle, c Color) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	fb.line(x0, y0, x1, y0, c, nil)
	fb.line(x0, y1, x1, y1, c, nil)
	fb.line(x0, y0, x0, y1, c, nil)
	fb.line(x1, y0, x1, y1, c, nil)
}

func (fb *framebuffer) roundRect(r image.Rectangle, c Color, radius int) {
	if r.Empty() {
		return
	}
	maxR := min(r.Dx(), r.Dy()) / 2
	if radius > maxR {
		radius = maxR
	}
	if radius <= 0 {
		fb.rect(r, c)
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	fb.line(x0+radius, y0, x1-radius, y0, c, nil)
	fb.line(x0+radius, y1, x1-radius, y1, c, nil)
	fb.line(x0, y0+radius, x0, y1-radius, c, nil)
	fb.line(x1, y0+radius, x1, y1-radius, c, nil)
	fb.arcs(x0+radius, y0+radius, x1-radius, y1-radius, radius, c)
}

// arcs draws the four quarter circles of radius rad centered on the
// corners of the inner rectangle (x0,y0)-(x1,y1).
func (fb *framebuffer) arcs(x0, y0, x1, y1, rad int, c Color) {
	x, y, d := rad, 0, 1-rad
	for x >= y {
		for _, p := range [][2]int{{x, y}, {y, x}} {
			fb.set(x1+p[0], y1+p[1], c)
			fb.set(x0-p[0], y1+p[1], c)
			fb.set(x1+p[0], y0-p[1], c)
			fb.set(x0-p[0], y0-p[1], c)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (fb *framebuffer) circle(cx, cy, radius int, c Color) {
	if radius <= 0 {
		fb.set(cx, cy, c)
		return
	}
	fb.arcs(cx, cy, cx, cy, radius, c)
}

// invert flips every channel; bw additionally snaps the result to black
// or white.
func (fb *framebuffer) invert(r image.Rectangle, bw bool) {
	r = r.Intersect(fb.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := White - fb.at(x, y)
			if bw {
				c = Gray(convert.Quantize(c.Luma(), 2))
			}
			fb.set(x, y, c)
		}
	}
}

// dim multiplies each channel by the matching channel of c.
func (fb *framebuffer) dim(r image.Rectangle, c Color) {
	cr, cg, cb := c.Channels()
	r = r.Intersect(fb.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pr, pg, pb := fb.at(x, y).Channels()
			fb.set(x, y, RGB(mul8(pr, cr), mul8(pg, cg), mul8(pb, cb)))
		}
	}
}

// transparent moves each pixel percent of the way towards white.
func (fb *framebuffer) transparent(r image.Rectangle, percent int) {
	percent = max(0, min(100, percent))
	r = r.Intersect(fb.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pr, pg, pb := fb.at(x, y).Channels()
			fb.set(x, y, RGB(lighten(pr, percent), lighten(pg, percent), lighten(pb, percent)))
		}
	}
}

// hatch draws diagonal lines step pixels apart.
func (fb *framebuffer) hatch(r image.Rectangle, step int, c Color) {
	if step <= 0 {
		step = 1
	}
	r = r.Intersect(fb.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if (x-r.Min.X+y-r.Min.Y)%step == 0 {
				fb.set(x, y, c)
			}
		}
	}
}

// selection draws a double frame.
func (fb *framebuffer) selection(r image.Rectangle, c Color) {
	fb.rect(r, c)
	fb.rect(r.Inset(1), c)
}

func (fb *framebuffer) dither(r image.Rectangle, levels int, m Dither) {
	method := convert.Threshold
	switch m {
	case DitherPattern:
		method = convert.Pattern
	case DitherDiffusion:
		method = convert.Diffusion
	}
	convert.Dither(fb.img, r.Intersect(fb.clip), levels, method)
}

// clipped returns the framebuffer restricted to the clip rectangle, for
// draw.Draw based text rendering.
func (fb *framebuffer) clipped() *image.RGBA {
	return fb.img.SubImage(fb.clip).(*image.RGBA)
}

func (fb *framebuffer) gray() *image.Gray {
	return convert.ToGray(fb.img)
}

func mul8(a, b uint8) uint8 {
	return uint8((int(a)*int(b) + 127) / 255)
}

func lighten(v uint8, percent int) uint8 {
	return uint8(int(v) + (255-int(v))*percent/100)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
