//go:build linux && arm && cgo

// cgo-backed binding of libinkview.
//
// This file is built only for the device: GOOS=linux, GOARCH=arm and
// CGO_ENABLED=1 with the PocketBook SDK sysroot on the compiler's search
// path. Every function forwards to the native call of the same name with
// the same argument order and units.

package inkview

/*
#cgo LDFLAGS: -linkview

#include <stdlib.h>
#include <inkview.h>

extern int ivTrampoline(int, int, int);

static void iv_main(void) { InkViewMain(ivTrampoline); }
static void iv_send(int type, int par1, int par2) { SendEvent(ivTrampoline, type, par1, par2); }
*/
import "C"

import (
	"fmt"
	"image"
	"runtime"
	"unsafe"
)

func runMain() error {
	// The native loop and every drawing call are bound to this thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	C.iv_main()
	return nil
}

// Exit puts EventExit into the application queue and closes the application.
func Exit() { C.CloseApp() }

// Repaint puts EventShow into the application queue.
func Repaint() { C.Repaint() }

// SendEvent queues an event for the application's own handler.
func SendEvent(ev Event, par1, par2 int32) {
	C.iv_send(C.int(ev), C.int(par1), C.int(par2))
}

func ScreenWidth() int32 { return int32(C.ScreenWidth()) }
func ScreenHeight() int32 { return int32(C.ScreenHeight()) }

func ClearScreen() { C.ClearScreen() }

func SetClip(x, y, w, h int32) {
	C.SetClip(C.int(x), C.int(y), C.int(w), C.int(h))
}

func DrawPixel(x, y int32, c Color) {
	C.DrawPixel(C.int(x), C.int(y), C.int(c))
}

func DrawLine(x1, y1, x2, y2 int32, c Color) {
	C.DrawLine(C.int(x1), C.int(y1), C.int(x2), C.int(y2), C.int(c))
}

// DrawDotLine draws every step-th pixel of the line.
func DrawDotLine(x1, y1, x2, y2 int32, c Color, step int32) {
	C.DrawLineEx(C.int(x1), C.int(y1), C.int(x2), C.int(y2), C.int(c), C.int(step))
}

// DrawDashLine alternates fill drawn pixels with space skipped ones.
func DrawDashLine(x1, y1, x2, y2 int32, c Color, fill, space uint32) {
	C.DrawDashLine(C.int(x1), C.int(y1), C.int(x2), C.int(y2), C.int(c), C.uint(fill), C.uint(space))
}

func DrawRect(x, y, w, h int32, c Color) {
	C.DrawRect(C.int(x), C.int(y), C.int(w), C.int(h), C.int(c))
}

func DrawRectRound(x, y, w, h int32, c Color, radius int32) {
	C.DrawRectRound(C.int(x), C.int(y), C.int(w), C.int(h), C.int(c), C.int(radius))
}

func FillArea(x, y, w, h int32, c Color) {
	C.FillArea(C.int(x), C.int(y), C.int(w), C.int(h), C.int(c))
}

func InvertArea(x, y, w, h int32) {
	C.InvertArea(C.int(x), C.int(y), C.int(w), C.int(h))
}

func InvertAreaBW(x, y, w, h int32) {
	C.InvertAreaBW(C.int(x), C.int(y), C.int(w), C.int(h))
}

func DimArea(x, y, w, h int32, c Color) {
	C.DimArea(C.int(x), C.int(y), C.int(w), C.int(h), C.int(c))
}

func DrawSelection(x, y, w, h int32, c Color) {
	C.DrawSelection(C.int(x), C.int(y), C.int(w), C.int(h), C.int(c))
}

func DrawCircle(x, y, radius int32, c Color) {
	C.DrawCircle(C.int(x), C.int(y), C.int(radius), C.int(c))
}

func DrawPickOut(x, y, w, h int32, key string) {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))
	C.DrawPickOut(C.int(x), C.int(y), C.int(w), C.int(h), ck)
}

func DitherArea(x, y, w, h, levels int32, method Dither) {
	C.DitherArea(C.int(x), C.int(y), C.int(w), C.int(h), C.int(levels), C.int(method))
}

func DitherAreaQuick2Level(x, y, w, h int32) {
	C.DitherAreaQuick2Level(C.int(x), C.int(y), C.int(w), C.int(h))
}

func DitherAreaPattern2Level(x, y, w, h int32) {
	C.DitherAreaPattern2Level(C.int(x), C.int(y), C.int(w), C.int(h))
}

func DrawDiagonalHatch(x, y, w, h, step int32, c Color) {
	C.DrawDiagonalHatch(C.int(x), C.int(y), C.int(w), C.int(h), C.int(step), C.int(c))
}

// Transparent blends the area towards white by percent.
func Transparent(x, y, w, h, percent int32) {
	C.Transparent(C.int(x), C.int(y), C.int(w), C.int(h), C.int(percent))
}

func FullUpdate() { C.FullUpdate() }
func SoftUpdate() { C.SoftUpdate() }

func PartialUpdate(x, y, w, h int32) {
	C.PartialUpdate(C.int(x), C.int(y), C.int(w), C.int(h))
}

// Font is an opened native font.
type Font struct {
	f    *C.ifont
	Name string
	Size int32
}

// OpenFont opens the named system font.
func OpenFont(name string, size int32, antialias bool) (*Font, error) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	aa := C.int(0)
	if antialias {
		aa = 1
	}
	f := C.OpenFont(cn, C.int(size), aa)
	if f == nil {
		return nil, fmt.Errorf("inkview: open font %q size %d failed", name, size)
	}
	return &Font{f: f, Name: name, Size: size}, nil
}

// Close releases the font. The font must not be in use by SetFont.
func (f *Font) Close() {
	if f == nil || f.f == nil {
		return
	}
	C.CloseFont(f.f)
	f.f = nil
}

// SetFont selects the font and color for subsequent text calls.
func SetFont(f *Font, c Color) {
	if f == nil || f.f == nil {
		return
	}
	C.SetFont(f.f, C.int(c))
}

func DrawString(x, y int32, s string) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	C.DrawString(C.int(x), C.int(y), cs)
}

func StringWidth(s string) int32 {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return int32(C.StringWidth(cs))
}

// DrawTextRect draws s wrapped into the rectangle, aligned by flags
// (ALIGN_*, VALIGN_*, DOTS, ...). It returns the part of s that did not fit.
func DrawTextRect(x, y, w, h int32, s string, flags int32) string {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	rest := C.DrawTextRect(C.int(x), C.int(y), C.int(w), C.int(h), cs, C.int(flags))
	if rest == nil {
		return ""
	}
	off := int(uintptr(unsafe.Pointer(rest)) - uintptr(unsafe.Pointer(cs)))
	if off < 0 || off >= len(s) {
		return ""
	}
	return s[off:]
}

// BatteryPower returns the battery level in percent.
func BatteryPower() int32 { return int32(C.GetBatteryPower()) }

func IsCharging() bool { return C.IsCharging() != 0 }

func nativePanelType() int32 { return int32(C.GetPanelType()) }
func setNativePanelType(t int32) { C.SetPanelType(C.int(t)) }

// Canvas copies the framebuffer into a gray image. Only 8-bit canvases
// are supported.
func Canvas() (*image.Gray, error) {
	c := C.GetCanvas()
	if c == nil {
		return nil, fmt.Errorf("inkview: no canvas")
	}
	if c.depth != 8 {
		return nil, fmt.Errorf("inkview: canvas depth %d: %w", int(c.depth), ErrNotImplemented)
	}
	w, h, stride := int(c.width), int(c.height), int(c.scanline)
	img := image.NewGray(image.Rect(0, 0, w, h))
	src := unsafe.Slice((*byte)(unsafe.Pointer(c.addr)), stride*h)
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w], src[y*stride:y*stride+w])
	}
	return img, nil
}
