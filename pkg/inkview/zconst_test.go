package inkview

import (
	"errors"
	"fmt"
	"image/color"
	"testing"
)

// roundTrip checks that every value converts to int32 and back to itself,
// that the list is strictly ascending and that each value is valid.
func roundTrip[T ~int32](vals []T, from func(int32) (T, bool), valid func(T) bool) []string {
	var errs []string
	if len(vals) == 0 {
		return []string{"no values"}
	}
	for i, v := range vals {
		if i > 0 && vals[i-1] >= v {
			errs = append(errs, fmt.Sprintf("values not strictly ascending at %d", i))
		}
		got, ok := from(int32(v))
		if !ok || got != v {
			errs = append(errs, fmt.Sprintf("from(%d) = %d, %v", int32(v), int32(got), ok))
		}
		if !valid(v) {
			errs = append(errs, fmt.Sprintf("%d not valid", int32(v)))
		}
	}
	return errs
}

func TestValuesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		check func() []string
	}{
		{"Button", func() []string { return roundTrip(ButtonValues(), ButtonFromInt32, Button.Valid) }},
		{"Dither", func() []string { return roundTrip(DitherValues(), DitherFromInt32, Dither.Valid) }},
		{"Event", func() []string { return roundTrip(EventValues(), EventFromInt32, Event.Valid) }},
		{"Icon", func() []string { return roundTrip(IconValues(), IconFromInt32, Icon.Valid) }},
		{"Key", func() []string { return roundTrip(KeyValues(), KeyFromInt32, Key.Valid) }},
		{"Request", func() []string { return roundTrip(RequestValues(), RequestFromInt32, Request.Valid) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, e := range tt.check() {
				t.Error(e)
			}
		})
	}
}

func TestEnumNames(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{EventInit.String(), "INIT"},
		{EventKeypressExt.String(), "KEYPRESS_EXT"},
		{KeyOk.String(), "OK"},
		{Key0.String(), "KEY0"},
		{IconWifi.String(), "WIFI"},
		{DitherDiffusion.String(), "DIFFUSION"},
		{RequestLibrary.String(), "LIBRARY"},
		{Event(27).String(), "Event(27)"},
		{Key(-1).String(), "Key(-1)"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("String() = %q, want %q", c.got, c.want)
		}
	}
}

func TestKeyDigits(t *testing.T) {
	for i, k := range []Key{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9} {
		if int32(k) != int32('0'+i) {
			t.Errorf("%v = %d, want %d", k, k, '0'+i)
		}
	}
}

func TestFromInt32Unknown(t *testing.T) {
	if _, ok := KeyFromInt32(7); ok {
		t.Errorf("KeyFromInt32(7) ok")
	}
	if _, ok := ButtonFromInt32(1); ok {
		t.Errorf("ButtonFromInt32(1) ok")
	}
	if v, ok := ButtonFromInt32(65536); !ok || v != ButtonButton2 {
		t.Errorf("ButtonFromInt32(65536) = %v, %v", v, ok)
	}
}

func TestPanelTypeFromInt32(t *testing.T) {
	for _, n := range []int32{0, 2, 6, 0xe} {
		if _, err := PanelTypeFromInt32(n); err != nil {
			t.Errorf("PanelTypeFromInt32(%#x): %v", n, err)
		}
	}
	for _, n := range []int32{-1, 0x10, 0x7fffffff} {
		_, err := PanelTypeFromInt32(n)
		var fe *FlagRangeError
		if !errors.As(err, &fe) {
			t.Fatalf("PanelTypeFromInt32(%#x) = %v, want *FlagRangeError", n, err)
		}
		if fe.Value != int64(n) || fe.Mask != uint64(PanelTypeMask) {
			t.Errorf("error = %+v", fe)
		}
	}
}

func TestPanelTypeString(t *testing.T) {
	cases := map[PanelType]string{
		PanelTypeDisabled:                          "DISABLED",
		PanelTypeEnabled:                           "ENABLED",
		PanelTypeEnabled | PanelTypeNoFbOffset:     "ENABLED|NO_FB_OFFSET",
		PanelTypeEventNoHandling | PanelType(0x10): "EVENT_NO_HANDLING|0x10",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("%#x.String() = %q, want %q", uint32(f), got, want)
		}
	}
	f := PanelTypeEnabled | PanelTypeEventNoHandling
	if !f.Has(PanelTypeEnabled) || f.Has(PanelTypeNoFbOffset) {
		t.Errorf("Has mismatch for %v", f)
	}
}

func TestColor(t *testing.T) {
	if c := RGB(0x12, 0x34, 0x56); c != 0x123456 {
		t.Errorf("RGB = %#x", int32(c))
	}
	if c := Gray(0x80); c != 0x808080 {
		t.Errorf("Gray = %#x", int32(c))
	}
	if White != 0xffffff || Black != 0 || LightGray != 0xaaaaaa || DarkGray != 0x555555 {
		t.Errorf("palette mismatch")
	}
	if White.Luma() != 255 || Black.Luma() != 0 {
		t.Errorf("luma: white %d black %d", White.Luma(), Black.Luma())
	}
	got := color.GrayModel.Convert(LightGray).(color.Gray)
	if got.Y != 0xaa {
		t.Errorf("gray model = %#x", got.Y)
	}
	_, _, _, a := RGB(1, 2, 3).RGBA()
	if a != 0xffff {
		t.Errorf("alpha = %#x", a)
	}
}

func TestEventClasses(t *testing.T) {
	cases := []struct {
		ev                  Event
		key, pointer, panel bool
	}{
		{EventKeypress, true, false, false},
		{EventKeyrepeat, true, false, false},
		{EventKeypressExt, false, false, false},
		{EventPointerdown, false, true, false},
		{EventPointerdrag, false, true, false},
		{EventPanelClock, false, false, true},
		{EventTab, false, false, true},
		{EventShow, false, false, false},
	}
	for _, c := range cases {
		if c.ev.IsKey() != c.key || c.ev.IsPointer() != c.pointer || c.ev.IsPanel() != c.panel {
			t.Errorf("%v: key %v pointer %v panel %v", c.ev, c.ev.IsKey(), c.ev.IsPointer(), c.ev.IsPanel())
		}
	}
}
