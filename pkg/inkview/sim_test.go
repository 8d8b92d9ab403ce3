//go:build !(linux && arm && cgo)

package inkview

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	appLog "inkview/internal/log"
)

// withScreen gives the simulator a fresh w by h framebuffer for one test.
func withScreen(t *testing.T, w, h int) {
	t.Helper()
	sim.mu.Lock()
	prev := sim.fb
	sim.fb = newFramebuffer(w, h)
	sim.mu.Unlock()
	t.Cleanup(func() {
		sim.mu.Lock()
		sim.fb = prev
		sim.mu.Unlock()
	})
}

func pixel(t *testing.T, x, y int) Color {
	t.Helper()
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.fb.at(x, y)
}

func TestScreenSize(t *testing.T) {
	withScreen(t, 40, 30)
	if ScreenWidth() != 40 || ScreenHeight() != 30 {
		t.Fatalf("size = %dx%d", ScreenWidth(), ScreenHeight())
	}
}

func TestFillAndClip(t *testing.T) {
	withScreen(t, 20, 20)

	FillArea(2, 2, 4, 4, Black)
	if pixel(t, 2, 2) != Black || pixel(t, 5, 5) != Black || pixel(t, 6, 6) != White {
		t.Fatalf("fill bounds wrong")
	}

	SetClip(10, 10, 5, 5)
	FillArea(0, 0, 20, 20, DarkGray)
	if pixel(t, 9, 9) != White || pixel(t, 10, 10) != DarkGray || pixel(t, 15, 15) != White {
		t.Fatalf("clip not honored")
	}
	SetClip(0, 0, 20, 20)

	ClearScreen()
	if pixel(t, 2, 2) != White || pixel(t, 12, 12) != White {
		t.Fatalf("ClearScreen left pixels")
	}
}

func TestLines(t *testing.T) {
	withScreen(t, 20, 5)

	DrawLine(0, 0, 9, 0, Black)
	for x := 0; x <= 9; x++ {
		if pixel(t, x, 0) != Black {
			t.Fatalf("line gap at %d", x)
		}
	}

	DrawDotLine(0, 2, 9, 2, Black, 3)
	for x := 0; x <= 9; x++ {
		want := White
		if x%3 == 0 {
			want = Black
		}
		if pixel(t, x, 2) != want {
			t.Errorf("dot line at %d = %#x", x, int32(pixel(t, x, 2)))
		}
	}

	DrawDashLine(0, 4, 9, 4, Black, 2, 3)
	for x := 0; x <= 9; x++ {
		want := White
		if x%5 < 2 {
			want = Black
		}
		if pixel(t, x, 4) != want {
			t.Errorf("dash line at %d = %#x", x, int32(pixel(t, x, 4)))
		}
	}
}

func TestRectAndInvert(t *testing.T) {
	withScreen(t, 10, 10)

	DrawRect(1, 1, 5, 5, Black)
	if pixel(t, 1, 1) != Black || pixel(t, 5, 5) != Black || pixel(t, 3, 3) != White {
		t.Fatalf("rect outline wrong")
	}

	InvertArea(0, 0, 10, 10)
	if pixel(t, 1, 1) != White || pixel(t, 3, 3) != Black {
		t.Fatalf("invert wrong")
	}

	FillArea(0, 0, 10, 10, LightGray)
	InvertAreaBW(0, 0, 10, 10)
	if pixel(t, 0, 0) != Black {
		t.Fatalf("InvertAreaBW = %#x, want black", int32(pixel(t, 0, 0)))
	}
}

func TestDimAndTransparent(t *testing.T) {
	withScreen(t, 4, 4)

	DimArea(0, 0, 2, 2, Gray(0x80))
	if got := pixel(t, 0, 0); got != Gray(0x80) {
		t.Errorf("dim = %#x", int32(got))
	}
	FillArea(0, 0, 4, 4, Black)
	Transparent(0, 0, 4, 4, 50)
	if got := pixel(t, 1, 1); got != Gray(127) {
		t.Errorf("transparent = %#x", int32(got))
	}
}

func TestDitherQuick(t *testing.T) {
	withScreen(t, 4, 4)
	FillArea(0, 0, 4, 4, DarkGray)
	DitherAreaQuick2Level(0, 0, 4, 4)
	if got := pixel(t, 2, 2); got != Black {
		t.Fatalf("dither = %#x, want black", int32(got))
	}
}

func TestCanvas(t *testing.T) {
	withScreen(t, 8, 6)
	FillArea(0, 0, 4, 6, Black)

	img, err := Canvas()
	if err != nil {
		t.Fatalf("Canvas: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("bounds = %v", b)
	}
	if img.GrayAt(0, 0).Y != 0 || img.GrayAt(7, 0).Y != 255 {
		t.Fatalf("canvas pixels = %d %d", img.GrayAt(0, 0).Y, img.GrayAt(7, 0).Y)
	}
}

func TestDrawString(t *testing.T) {
	withScreen(t, 60, 20)
	f, err := OpenFont("LiberationSans", 12, true)
	if err != nil {
		t.Fatalf("OpenFont: %v", err)
	}
	defer f.Close()
	SetFont(f, Black)

	DrawString(0, 0, "HH")
	var dark int
	for y := 0; y < 13; y++ {
		for x := 0; x < 14; x++ {
			if pixel(t, x, y).Luma() < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatalf("no text pixels drawn")
	}
	if w := StringWidth("HH"); w != 14 {
		t.Fatalf("StringWidth = %d, want 14", w)
	}

	if _, err := OpenFont("x", 0, false); err == nil {
		t.Fatalf("OpenFont with size 0 succeeded")
	}
}

func TestDrawTextRectRest(t *testing.T) {
	withScreen(t, 100, 100)
	// 7px glyphs, 13px lines: two lines of at most 9 runes.
	rest := DrawTextRect(0, 0, 63, 26, "one two three four", ALIGN_LEFT)
	if rest != "four" {
		t.Fatalf("rest = %q, want %q", rest, "four")
	}
	if rest := DrawTextRect(0, 0, 35, 5, "short", 0); rest != "short" {
		t.Fatalf("too short rect consumed text: %q", rest)
	}
}

func TestWrapText(t *testing.T) {
	measure := func(s string) int { return len(s) }
	cases := []struct {
		in       string
		width    int
		maxLines int
		lines    []string
		rest     string
	}{
		{"a bb ccc", 4, 5, []string{"a bb", "ccc"}, ""},
		{"a bb ccc", 4, 1, []string{"a bb"}, "ccc"},
		{"abcdefgh", 3, 5, []string{"abc", "def", "gh"}, ""},
		{"ab\ncd", 10, 5, []string{"ab", "cd"}, ""},
		{"", 10, 5, nil, ""},
	}
	for _, c := range cases {
		lines, rest := wrapText(c.in, c.width, c.maxLines, measure)
		if strings.Join(lines, "|") != strings.Join(c.lines, "|") || rest != c.rest {
			t.Errorf("wrapText(%q) = %q, %q; want %q, %q", c.in, lines, rest, c.lines, c.rest)
		}
	}
}

func TestPanelType(t *testing.T) {
	defer SetPanelType(PanelTypeEnabled)

	SetPanelType(PanelTypeEnabled | PanelTypeNoFbOffset)
	got, err := GetPanelType()
	if err != nil || got != PanelTypeEnabled|PanelTypeNoFbOffset {
		t.Fatalf("GetPanelType() = %v, %v", got, err)
	}

	SetPanelType(PanelType(0x30))
	if _, err := GetPanelType(); err == nil {
		t.Fatalf("out of range panel type accepted")
	}
}

func TestParseEnv(t *testing.T) {
	if w, h := parseSize("600x800"); w != 600 || h != 800 {
		t.Errorf("parseSize = %dx%d", w, h)
	}
	if w, h := parseSize("bogus"); w != defaultSimWidth || h != defaultSimHeight {
		t.Errorf("parseSize(bogus) = %dx%d", w, h)
	}
	if n, c := parseBattery("42+"); n != 42 || !c {
		t.Errorf("parseBattery(42+) = %d, %v", n, c)
	}
	if n, c := parseBattery(""); n != 100 || c {
		t.Errorf("parseBattery(\"\") = %d, %v", n, c)
	}
}

// headless replaces the terminal with a simulation screen for one test.
func headless(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	prev := newScreen
	newScreen = func() (tcell.Screen, error) { return scr, nil }
	t.Cleanup(func() { newScreen = prev })
	return scr
}

func TestMainLoop(t *testing.T) {
	withScreen(t, 40, 40)
	headless(t)

	r := &recorder{}
	var nested error
	h := HandlerFunc(func(ev Event, par1, par2 int32) int32 {
		r.HandleEvent(ev, par1, par2)
		switch ev {
		case EventInit:
			nested = Main(HandlerFunc(func(Event, int32, int32) int32 { return 0 }))
		case EventShow:
			FillArea(0, 0, 10, 10, Black)
			FullUpdate()
			SendEvent(EventKeypress, int32(KeyOk), 0)
			Exit()
		}
		return 0
	})

	if err := Main(h); err != nil {
		t.Fatalf("Main: %v", err)
	}
	if !errors.Is(nested, ErrLoopRunning) {
		t.Fatalf("nested Main = %v, want ErrLoopRunning", nested)
	}

	want := []Event{EventInit, EventShow, EventKeypress, EventExit}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", r.events, want)
		}
	}
	if r.params[2][0] != int32(KeyOk) {
		t.Fatalf("key param = %d", r.params[2][0])
	}
	if sim.updates == 0 {
		t.Fatalf("FullUpdate did not present")
	}
}

func TestMainLoopKeys(t *testing.T) {
	withScreen(t, 40, 40)
	scr := headless(t)

	r := &recorder{}
	h := HandlerFunc(func(ev Event, par1, par2 int32) int32 {
		r.HandleEvent(ev, par1, par2)
		if ev == EventShow {
			scr.InjectKey(tcell.KeyRune, '5', tcell.ModNone)
			scr.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		}
		return 0
	})
	if err := Main(h); err != nil {
		t.Fatalf("Main: %v", err)
	}

	want := []Event{EventInit, EventShow, EventKeypress, EventKeyrelease, EventExit}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", r.events, want)
		}
	}
	if r.params[2][0] != int32(Key5) {
		t.Fatalf("key = %d, want %d", r.params[2][0], Key5)
	}
}

func TestRequestsWithoutLoop(t *testing.T) {
	// Must not block or panic when nothing is running.
	Exit()
	Repaint()
	SendEvent(EventShow, 0, 0)
}

func TestSimLogFollowsOutput(t *testing.T) {
	var buf bytes.Buffer
	appLog.SetOutput(&buf)
	appLog.SetLevel(appLog.LevelDebug)
	t.Cleanup(func() {
		appLog.SetOutput(os.Stderr)
		appLog.SetLevel(appLog.LevelInfo)
	})

	tests := []struct {
		name string
		post func()
	}{
		{"exit", Exit},
		{"repaint", Repaint},
		{"send", func() { SendEvent(EventShow, 0, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.post()
			out := buf.String()
			if !strings.Contains(out, "no event loop, request dropped") || !strings.Contains(out, "inkview.sim") {
				t.Fatalf("request log not redirected, got %q", out)
			}
		})
	}
}
