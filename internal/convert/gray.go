// Package convert holds the pixel math shared by the host simulator:
// luma, gray-level quantization and the three dithering methods of the
// native library, all working on image.RGBA framebuffers.
package convert

import (
	"image"
	"image/color"
)

// Method selects a dithering algorithm.
type Method int

const (
	Threshold Method = iota
	Pattern
	Diffusion
)

// Luma returns the perceptual brightness of an RGB triple.
//
//	Y = 0.299R + 0.587G + 0.114B
func Luma(r, g, b uint8) uint8 {
	y := (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
	return uint8(y)
}

// Quantize maps y onto the nearest of levels evenly spaced gray levels.
// levels < 2 is treated as 2.
func Quantize(y uint8, levels int) uint8 {
	if levels < 2 {
		levels = 2
	}
	if levels >= 256 {
		return y
	}
	step := 255 / (levels - 1)
	n := (int(y) + step/2) / step
	v := n * step
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// bayer4 is the 4x4 ordered-dither matrix scaled to 0..15.
var bayer4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Dither reduces the pixels of img inside r to levels gray levels using m.
// r is clipped to the image bounds. The result is written back as opaque gray.
func Dither(img *image.RGBA, r image.Rectangle, levels int, m Method) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	if levels < 2 {
		levels = 2
	}
	switch m {
	case Pattern:
		step := 255 / (levels - 1)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				l := int(lumaAt(img, x, y))
				bias := (bayer4[y&3][x&3]*step)/16 - step/2
				setGray(img, x, y, Quantize(clamp(l+bias), levels))
			}
		}
	case Diffusion:
		w := r.Dx()
		cur := make([]int, w+2)
		next := make([]int, w+2)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for i := range next {
				next[i] = 0
			}
			for i := 0; i < w; i++ {
				x := r.Min.X + i
				old := int(lumaAt(img, x, y)) + cur[i+1]
				q := int(Quantize(clamp(old), levels))
				setGray(img, x, y, uint8(q))
				e := old - q
				cur[i+2] += e * 7 / 16
				next[i] += e * 3 / 16
				next[i+1] += e * 5 / 16
				next[i+2] += e / 16
			}
			cur, next = next, cur
		}
	default:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				setGray(img, x, y, Quantize(lumaAt(img, x, y), levels))
			}
		}
	}
}

// ToGray converts an RGBA framebuffer into an 8-bit gray image.
func ToGray(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetGray(x, y, color.Gray{Y: lumaAt(img, x, y)})
		}
	}
	return out
}

// AverageLuma returns the mean luma of img over r, or 255 (white) when r
// does not intersect img.
func AverageLuma(img *image.RGBA, r image.Rectangle) uint8 {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return 255
	}
	sum := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sum += int(lumaAt(img, x, y))
		}
	}
	return uint8(sum / (r.Dx() * r.Dy()))
}

func lumaAt(img *image.RGBA, x, y int) uint8 {
	i := img.PixOffset(x, y)
	return Luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
}

func setGray(img *image.RGBA, x, y int, v uint8) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = v
	img.Pix[i+1] = v
	img.Pix[i+2] = v
	img.Pix[i+3] = 0xff
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
