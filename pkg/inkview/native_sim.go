//go:build !(linux && arm && cgo)

// Desktop simulator of libinkview.
//
// Drawing goes to an in-memory RGB framebuffer. The event loop runs in a
// terminal through tcell: the framebuffer is shown with half-block cells,
// keys and mouse are translated into device events. INKVIEW_SIM_SIZE sets
// the screen size ("WxH"), INKVIEW_SIM_BATTERY the battery level ("87",
// or "87+" while charging) and INKVIEW_SIM_HEADLESS=1 runs the loop on an
// off-screen terminal.

package inkview

import (
	"image"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"

	"inkview/internal/convert"
	appLog "inkview/internal/log"
)

const (
	defaultSimWidth  = 758
	defaultSimHeight = 1024
)

type simulator struct {
	mu        sync.Mutex
	fb        *framebuffer
	font      *Font
	fontColor Color
	panel     int32
	battery   int32
	charging  bool

	screen  tcell.Screen
	scale   int
	updates int
}

var sim = newSimulator()

// newScreen opens the terminal the loop runs in.
var newScreen = func() (tcell.Screen, error) {
	if os.Getenv("INKVIEW_SIM_HEADLESS") == "1" {
		return tcell.NewSimulationScreen(""), nil
	}
	return tcell.NewScreen()
}

func newSimulator() *simulator {
	w, h := parseSize(os.Getenv("INKVIEW_SIM_SIZE"))
	level, charging := parseBattery(os.Getenv("INKVIEW_SIM_BATTERY"))
	return &simulator{
		fb:        newFramebuffer(w, h),
		fontColor: Black,
		panel:     int32(PanelTypeEnabled),
		battery:   level,
		charging:  charging,
		scale:     1,
	}
}

func parseSize(s string) (int, int) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return defaultSimWidth, defaultSimHeight
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return defaultSimWidth, defaultSimHeight
	}
	return w, h
}

func parseBattery(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	charging := strings.HasSuffix(s, "+")
	n, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
	if err != nil || n < 0 || n > 100 {
		return 100, charging
	}
	return int32(n), charging
}

// Requests posted to the loop as tcell interrupt events.
type (
	exitRequest    struct{}
	repaintRequest struct{}
	sendRequest    struct {
		ev         Event
		par1, par2 int32
	}
)

func (s *simulator) post(req any) {
	s.mu.Lock()
	scr := s.screen
	s.mu.Unlock()
	if scr == nil {
		simLog().Debug("no event loop, request dropped", "request", req)
		return
	}
	if err := scr.PostEvent(tcell.NewEventInterrupt(req)); err != nil {
		simLog().Warn("event queue full, request dropped", "request", req)
	}
}

// simLog resolves the named logger at each use so it follows SetOutput.
func simLog() hclog.Logger { return appLog.Named("sim") }

// Exit puts EventExit into the application queue and closes the application.
func Exit() { sim.post(exitRequest{}) }

// Repaint puts EventShow into the application queue.
func Repaint() { sim.post(repaintRequest{}) }

// SendEvent queues an event for the application's own handler.
func SendEvent(ev Event, par1, par2 int32) {
	sim.post(sendRequest{ev: ev, par1: par1, par2: par2})
}

func ScreenWidth() int32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return int32(sim.fb.img.Bounds().Dx())
}

func ScreenHeight() int32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return int32(sim.fb.img.Bounds().Dy())
}

// ClearScreen fills the whole screen with white, ignoring the clip.
func ClearScreen() {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	clip := sim.fb.clip
	sim.fb.clip = sim.fb.img.Bounds()
	sim.fb.fill(sim.fb.clip, White)
	sim.fb.clip = clip
}

func SetClip(x, y, w, h int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.setClip(area(x, y, w, h))
}

func DrawPixel(x, y int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.set(int(x), int(y), c)
}

func DrawLine(x1, y1, x2, y2 int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.line(int(x1), int(y1), int(x2), int(y2), c, nil)
}

// DrawDotLine draws every step-th pixel of the line.
func DrawDotLine(x1, y1, x2, y2 int32, c Color, step int32) {
	st := max(int(step), 1)
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.line(int(x1), int(y1), int(x2), int(y2), c, func(i int) bool { return i%st == 0 })
}

// DrawDashLine alternates fill drawn pixels with space skipped ones.
func DrawDashLine(x1, y1, x2, y2 int32, c Color, fill, space uint32) {
	period := int(fill) + int(space)
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if fill == 0 {
		return
	}
	sim.fb.line(int(x1), int(y1), int(x2), int(y2), c, func(i int) bool { return i%period < int(fill) })
}

func DrawRect(x, y, w, h int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.rect(area(x, y, w, h), c)
}

func DrawRectRound(x, y, w, h int32, c Color, radius int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.roundRect(area(x, y, w, h), c, int(radius))
}

func FillArea(x, y, w, h int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.fill(area(x, y, w, h), c)
}

func InvertArea(x, y, w, h int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.invert(area(x, y, w, h), false)
}

func InvertAreaBW(x, y, w, h int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.invert(area(x, y, w, h), true)
}

func DimArea(x, y, w, h int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.dim(area(x, y, w, h), c)
}

func DrawSelection(x, y, w, h int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.selection(area(x, y, w, h), c)
}

func DrawCircle(x, y, radius int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.circle(int(x), int(y), int(radius), c)
}

// DrawPickOut draws a rounded frame with key centered inside it.
func DrawPickOut(x, y, w, h int32, key string) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	r := area(x, y, w, h)
	sim.fb.fill(r.Inset(1), White)
	sim.fb.roundRect(r, Black, int(min(w, h)/4))
	face := sim.face()
	tw := measureString(face, key)
	th := face.Metrics().Height.Ceil()
	sim.drawString(r.Min.X+(r.Dx()-tw)/2, r.Min.Y+(r.Dy()-th)/2, key)
}

func DitherArea(x, y, w, h, levels int32, method Dither) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.dither(area(x, y, w, h), int(levels), method)
}

func DitherAreaQuick2Level(x, y, w, h int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.dither(area(x, y, w, h), 2, DitherThreshold)
}

func DitherAreaPattern2Level(x, y, w, h int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.dither(area(x, y, w, h), 2, DitherPattern)
}

func DrawDiagonalHatch(x, y, w, h, step int32, c Color) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.hatch(area(x, y, w, h), int(step), c)
}

// Transparent blends the area towards white by percent.
func Transparent(x, y, w, h, percent int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.fb.transparent(area(x, y, w, h), int(percent))
}

func FullUpdate() { sim.present() }
func SoftUpdate() { sim.present() }

// PartialUpdate redraws the terminal; the simulator has no partial refresh.
func PartialUpdate(x, y, w, h int32) { sim.present() }

// BatteryPower returns the battery level in percent.
func BatteryPower() int32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.battery
}

func IsCharging() bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.charging
}

func nativePanelType() int32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.panel
}

func setNativePanelType(t int32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.panel = t
}

// Canvas copies the framebuffer into a gray image.
func Canvas() (*image.Gray, error) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.fb.gray(), nil
}

// present shows the framebuffer on the attached terminal. Every cell
// covers a k by 2k block of pixels drawn as an upper half block.
func (s *simulator) present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen == nil {
		return
	}
	s.updates++

	b := s.fb.img.Bounds()
	sw, sh := s.screen.Size()
	if sw <= 0 || sh <= 0 {
		return
	}
	k := max(1, (b.Dx()+sw-1)/sw, (b.Dy()+2*sh-1)/(2*sh))
	s.scale = k

	s.screen.Clear()
	for cy := 0; cy*2*k < b.Dy() && cy < sh; cy++ {
		for cx := 0; cx*k < b.Dx() && cx < sw; cx++ {
			x0, y0 := cx*k, cy*2*k
			top := convert.AverageLuma(s.fb.img, image.Rect(x0, y0, x0+k, y0+k))
			bot := convert.AverageLuma(s.fb.img, image.Rect(x0, y0+k, x0+k, y0+2*k))
			style := tcell.StyleDefault.
				Foreground(grayColor(top)).
				Background(grayColor(bot))
			s.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	s.screen.Show()
}

func grayColor(v uint8) tcell.Color {
	return tcell.NewRGBColor(int32(v), int32(v), int32(v))
}

func (s *simulator) attach(scr tcell.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = scr
	s.updates = 0
}

func (s *simulator) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = nil
}

// toPixel maps a terminal cell to the framebuffer pixel under it.
func (s *simulator) toPixel(cx, cy int) (int32, int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int32(cx * s.scale), int32(cy * 2 * s.scale)
}

var keyMap = map[tcell.Key]Key{
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyEnter:      KeyOk,
	tcell.KeyEscape:     KeyBack,
	tcell.KeyBackspace:  KeyBack,
	tcell.KeyBackspace2: KeyBack,
	tcell.KeyHome:       KeyHome,
	tcell.KeyPgUp:       KeyPrev,
	tcell.KeyPgDn:       KeyNext,
	tcell.KeyF1:         KeyMenu,
	tcell.KeyDelete:     KeyDelete,
}

var runeMap = map[rune]Key{
	'+': KeyPlus,
	'-': KeyMinus,
	'm': KeyMenu,
	'p': KeyPower,
}

func translateKey(ev *tcell.EventKey) (Key, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= '0' && r <= '9' {
			return Key0 + Key(r-'0'), true
		}
		k, ok := runeMap[r]
		return k, ok
	}
	k, ok := keyMap[ev.Key()]
	return k, ok
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

func runMain() error {
	scr, err := newScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	scr.EnableMouse()
	sim.attach(scr)
	defer func() {
		sim.detach()
		scr.Fini()
	}()

	log := simLog()
	log.Debug("event loop started", "width", ScreenWidth(), "height", ScreenHeight())

	dispatch(EventInit, 0, 0)
	dispatch(EventShow, 0, 0)

	var down bool
	for {
		switch ev := scr.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if isQuit(ev) {
				dispatch(EventExit, 0, 0)
				return nil
			}
			k, ok := translateKey(ev)
			if !ok {
				continue
			}
			dispatch(EventKeypress, int32(k), 0)
			dispatch(EventKeyrelease, int32(k), 0)
		case *tcell.EventMouse:
			x, y := sim.toPixel(ev.Position())
			pressed := ev.Buttons()&tcell.Button1 != 0
			switch {
			case pressed && !down:
				down = true
				dispatch(EventPointerdown, x, y)
			case pressed:
				dispatch(EventPointermove, x, y)
			case down:
				down = false
				dispatch(EventPointerup, x, y)
			}
		case *tcell.EventResize:
			scr.Sync()
			sim.present()
		case *tcell.EventInterrupt:
			switch req := ev.Data().(type) {
			case exitRequest:
				dispatch(EventExit, 0, 0)
				log.Debug("event loop finished")
				return nil
			case repaintRequest:
				dispatch(EventShow, 0, 0)
			case sendRequest:
				dispatch(req.ev, req.par1, req.par2)
			}
		}
	}
}
