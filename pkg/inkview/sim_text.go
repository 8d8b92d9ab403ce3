//go:build !(linux && arm && cgo)

package inkview

import (
	"fmt"
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font is an opened font. The simulator renders every font with the
// 7x13 bitmap face; Name and Size are kept for the caller.
type Font struct {
	Name string
	Size int32

	face   font.Face
	closed bool
}

// OpenFont opens the named font. The simulator accepts any name.
func OpenFont(name string, size int32, antialias bool) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("inkview: open font %q size %d failed", name, size)
	}
	return &Font{Name: name, Size: size, face: basicfont.Face7x13}, nil
}

// Close releases the font.
func (f *Font) Close() {
	if f == nil {
		return
	}
	f.closed = true
	sim.mu.Lock()
	if sim.font == f {
		sim.font = nil
	}
	sim.mu.Unlock()
}

// SetFont selects the font and color for subsequent text calls.
func SetFont(f *Font, c Color) {
	if f == nil || f.closed {
		return
	}
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.font = f
	sim.fontColor = c
}

func (s *simulator) face() font.Face {
	if s.font != nil {
		return s.font.face
	}
	return basicfont.Face7x13
}

// DrawString draws s with its top-left corner at x, y.
func DrawString(x, y int32, s string) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.drawString(int(x), int(y), s)
}

func (s *simulator) drawString(x, y int, str string) {
	face := s.face()
	d := font.Drawer{
		Dst:  s.fb.clipped(),
		Src:  image.NewUniform(s.fontColor),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(str)
}

func StringWidth(s string) int32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return int32(measureString(sim.face(), s))
}

func measureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// DrawTextRect draws s wrapped into the rectangle, aligned by flags
// (ALIGN_*, VALIGN_*). It returns the part of s that did not fit.
func DrawTextRect(x, y, w, h int32, s string, flags int32) string {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	face := sim.face()
	lh := face.Metrics().Height.Ceil()
	if w <= 0 || h < int32(lh) {
		return s
	}
	measure := func(t string) int { return measureString(face, t) }
	lines, rest := wrapText(s, int(w), int(h)/lh, measure)

	top := int(y)
	switch {
	case flags&VALIGN_BOTTOM != 0:
		top = int(y+h) - len(lines)*lh
	case flags&VALIGN_MIDDLE != 0:
		top = int(y) + (int(h)-len(lines)*lh)/2
	}
	for i, line := range lines {
		lx := int(x)
		switch {
		case flags&ALIGN_RIGHT != 0:
			lx = int(x+w) - measure(line)
		case flags&ALIGN_CENTER != 0:
			lx = int(x) + (int(w)-measure(line))/2
		}
		sim.drawString(lx, top+i*lh, line)
	}
	return rest
}

// wrapText breaks s into at most maxLines lines no wider than width,
// breaking at spaces where possible and inside words otherwise. Newlines
// force a break. It returns the lines and the unconsumed suffix of s.
func wrapText(s string, width, maxLines int, measure func(string) int) ([]string, string) {
	var lines []string
	pos := 0
	skipSpaces := func() {
		for pos < len(s) && s[pos] == ' ' {
			pos++
		}
	}
	for len(lines) < maxLines {
		skipSpaces()
		if pos >= len(s) {
			return lines, ""
		}
		if s[pos] == '\n' {
			lines = append(lines, "")
			pos++
			continue
		}

		end := -1
		for i := pos; i < len(s) && s[i] != '\n'; {
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\n' {
				j++
			}
			if measure(s[pos:j]) > width {
				break
			}
			end = j
			i = j
			for i < len(s) && s[i] == ' ' {
				i++
			}
		}
		if end < 0 {
			// A single word wider than the line: break it by runes.
			end = pos
			for end < len(s) {
				_, n := utf8.DecodeRuneInString(s[end:])
				if end > pos && measure(s[pos:end+n]) > width {
					break
				}
				end += n
			}
		}
		lines = append(lines, s[pos:end])
		pos = end
		skipSpaces()
		if pos < len(s) && s[pos] == '\n' {
			pos++
		}
	}
	skipSpaces()
	if pos >= len(s) {
		return lines, ""
	}
	return lines, s[pos:]
}
