package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"inkview/internal/agenda"
	"inkview/internal/battery"
	"inkview/internal/capture"
	"inkview/internal/config"
	appLog "inkview/internal/log"
	"inkview/pkg/inkview"
)

const (
	margin         = 16
	refreshTimeout = 30 * time.Second
)

// app is the ivagenda event handler. Every method runs on the event loop.
type app struct {
	cfg      *config.AgendaConfig
	builder  *agenda.Builder
	battery  battery.Reader
	dumpPath string
	log      hclog.Logger

	font    *inkview.Font
	agenda  *agenda.Agenda
	lastErr error
	pages   [][]agenda.Line
	page    int
}

func newApp(cfg *config.AgendaConfig, dumpPath string) *app {
	return &app{
		cfg:      cfg,
		builder:  agenda.NewBuilder(cfg),
		battery:  battery.DefaultReader(),
		dumpPath: dumpPath,
		log:      appLog.Named("ivagenda"),
	}
}

func (a *app) HandleEvent(ev inkview.Event, par1, par2 int32) int32 {
	switch ev {
	case inkview.EventInit:
		a.init()
	case inkview.EventShow:
		a.draw()
		if a.dumpPath != "" {
			a.dump()
			inkview.Exit()
		}
	case inkview.EventKeypress:
		return a.key(inkview.Key(par1))
	case inkview.EventPointerup:
		if par2 < inkview.ScreenHeight()/2 {
			return a.turn(-1)
		}
		return a.turn(1)
	case inkview.EventExit:
		a.font.Close()
		a.font = nil
	}
	return 0
}

func (a *app) init() {
	f, err := inkview.OpenFont(a.cfg.FontName, int32(a.cfg.FontSize), true)
	if err != nil {
		a.log.Error("font unavailable", "font", a.cfg.FontName, "error", err)
	} else {
		a.font = f
	}
	a.refresh()
}

func (a *app) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	ag, err := a.builder.Build(ctx)
	if err != nil {
		a.log.Error("agenda refresh failed", "error", err)
		a.lastErr = err
		return
	}
	a.agenda = ag
	a.lastErr = nil
	a.pages = nil
	a.page = 0
}

func (a *app) key(k inkview.Key) int32 {
	switch k {
	case inkview.KeyNext, inkview.KeyNext2, inkview.KeyRight, inkview.KeyDown, inkview.KeyPlus:
		return a.turn(1)
	case inkview.KeyPrev, inkview.KeyPrev2, inkview.KeyLeft, inkview.KeyUp, inkview.KeyMinus:
		return a.turn(-1)
	case inkview.KeyOk:
		a.refresh()
		a.draw()
		return 1
	case inkview.KeyBack, inkview.KeyHome:
		inkview.Exit()
		return 1
	}
	return 0
}

func (a *app) turn(delta int) int32 {
	next := a.page + delta
	if next < 0 || next >= len(a.pages) {
		return 0
	}
	a.page = next
	a.draw()
	return 1
}

func (a *app) lineHeight() int32 {
	return int32(a.cfg.FontSize + a.cfg.FontSize/2)
}

func (a *app) draw() {
	if a.font != nil {
		inkview.SetFont(a.font, inkview.Black)
	}
	inkview.ClearScreen()

	w, h := inkview.ScreenWidth(), inkview.ScreenHeight()
	lh := a.lineHeight()
	body := h - 2*lh - 2*margin
	a.layout(int(body / lh))

	a.header(w, lh)

	y := int32(margin) + lh
	if a.page < len(a.pages) {
		for _, l := range a.pages[a.page] {
			a.line(l, y, w, lh)
			y += lh
		}
	}

	a.footer(w, h, lh)
	inkview.FullUpdate()
}

// layout splits the agenda into pages of perPage lines, keeping the
// current page where possible.
func (a *app) layout(perPage int) {
	if a.agenda == nil {
		a.pages = nil
		return
	}
	a.pages = agenda.Paginate(agenda.Lines(a.agenda.Days, a.cfg.Highlight), perPage)
	if a.page >= len(a.pages) {
		a.page = len(a.pages) - 1
	}
}

func (a *app) header(w, lh int32) {
	title := "Agenda"
	if a.agenda != nil {
		title += "  " + a.agenda.Generated.Format("Mon 02 Jan 15:04")
	}
	inkview.DrawTextRect(margin, margin, w-2*margin, lh, title, inkview.ALIGN_LEFT|inkview.VALIGN_MIDDLE)

	st, err := a.battery.Read(context.Background())
	if err != nil {
		a.log.Debug("battery unavailable", "error", err)
	} else {
		inkview.DrawTextRect(margin, margin, w-2*margin, lh, st.String(), inkview.ALIGN_RIGHT|inkview.VALIGN_MIDDLE)
	}
	inkview.DrawLine(margin, margin+lh-1, w-margin, margin+lh-1, inkview.Black)
}

func (a *app) line(l agenda.Line, y, w, lh int32) {
	x := int32(margin)
	switch l.Kind {
	case agenda.LineDay:
		inkview.FillArea(margin, y+2, w-2*margin, lh-4, inkview.LightGray)
	case agenda.LineEvent, agenda.LineEmpty:
		x += 2 * margin
	}
	inkview.DrawTextRect(x, y, w-x-margin, lh, l.Text, inkview.ALIGN_LEFT|inkview.VALIGN_MIDDLE|inkview.DOTS)
	if l.Highlight {
		inkview.InvertArea(x-4, y+2, w-x-margin+8, lh-4)
	}
}

func (a *app) footer(w, h, lh int32) {
	y := h - margin - lh
	inkview.DrawLine(margin, y, w-margin, y, inkview.DarkGray)

	var status string
	switch {
	case a.lastErr != nil:
		status = "refresh failed"
	case a.agenda != nil && len(a.agenda.Errors) > 0:
		status = fmt.Sprintf("%d source(s) unavailable", len(a.agenda.Errors))
	}
	if status != "" {
		inkview.DrawTextRect(margin, y, w-2*margin, lh, status, inkview.ALIGN_LEFT|inkview.VALIGN_MIDDLE)
	}
	if n := len(a.pages); n > 1 {
		inkview.DrawTextRect(margin, y, w-2*margin, lh, fmt.Sprintf("%d/%d", a.page+1, n), inkview.ALIGN_RIGHT|inkview.VALIGN_MIDDLE)
	}
}

func (a *app) dump() {
	if err := capture.DumpScreen(capture.Options{OutputPath: a.dumpPath}); err != nil {
		a.log.Error("screen dump failed", "path", a.dumpPath, "error", err)
		return
	}
	a.log.Info("screen dumped", "path", a.dumpPath)
}
