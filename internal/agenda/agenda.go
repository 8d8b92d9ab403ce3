// Package agenda builds the day-by-day calendar view drawn by ivagenda:
// it loads ICS sources, expands recurrences and lays the result out as
// pages of text lines.
package agenda

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"inkview/internal/config"
	appLog "inkview/internal/log"
)

// Day is one calendar day and the occurrences touching it.
type Day struct {
	Date        time.Time
	Occurrences []Occurrence
}

// LineKind tells a day header from an event line.
type LineKind int

const (
	LineDay LineKind = iota
	LineEvent
	LineEmpty
)

// Line is one rendered row of the agenda.
type Line struct {
	Kind      LineKind
	Text      string
	Highlight bool
}

// Agenda is the result of a refresh.
type Agenda struct {
	Days      []Day
	Generated time.Time
	// Errors holds per-source load and parse failures; the agenda is still
	// built from the sources that worked.
	Errors []error
}

// Builder turns the configured sources into an Agenda.
type Builder struct {
	cfg    *config.AgendaConfig
	loader *Loader
	now    func() time.Time
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg *config.AgendaConfig) *Builder {
	return &Builder{
		cfg:    cfg,
		loader: NewLoader(cfg.CachePath()),
		now:    time.Now,
	}
}

// Build loads, parses and expands every source over the configured
// horizon starting today. It fails only when no source could be used.
func (b *Builder) Build(ctx context.Context) (*Agenda, error) {
	loc := b.cfg.Location()
	now := b.now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, b.cfg.HorizonDays)

	sources := SourcesFrom(b.cfg.Sources)
	results, errs := b.loader.LoadAll(ctx, sources)

	var events []Event
	for _, res := range results {
		evs, err := Parse(res.Source, res.Body, loc)
		if err != nil {
			appLog.Error("calendar parse failed", err, "id", res.Source.ID)
			errs = append(errs, fmt.Errorf("%s: %w", res.Source.ID, err))
			continue
		}
		events = append(events, evs...)
	}
	if len(sources) > 0 && len(errs) == len(sources) {
		return nil, errors.Join(errs...)
	}

	occ, _, err := Expand(events, Window{Start: from, End: to, Loc: loc})
	if err != nil {
		return nil, err
	}
	if !b.cfg.ShowAllDay {
		occ = dropAllDay(occ)
	}
	appLog.Info("agenda built", "sources", len(results), "events", len(events), "occurrences", len(occ))
	return &Agenda{
		Days:      GroupByDay(occ, from, b.cfg.HorizonDays),
		Generated: now,
		Errors:    errs,
	}, nil
}

func dropAllDay(occ []Occurrence) []Occurrence {
	out := occ[:0:0]
	for _, o := range occ {
		if !o.AllDay {
			out = append(out, o)
		}
	}
	return out
}

// GroupByDay returns days consecutive days starting at from, each holding
// the occurrences that overlap it: all-day ones first, then by start.
func GroupByDay(occ []Occurrence, from time.Time, days int) []Day {
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		next := d.AddDate(0, 0, 1)
		day := Day{Date: d}
		for _, o := range occ {
			if overlaps(o.Start, o.End, d, next) {
				day.Occurrences = append(day.Occurrences, o)
			}
		}
		sort.SliceStable(day.Occurrences, func(a, b int) bool {
			oa, ob := day.Occurrences[a], day.Occurrences[b]
			if oa.AllDay != ob.AllDay {
				return oa.AllDay
			}
			return oa.Start.Before(ob.Start)
		})
		out = append(out, day)
	}
	return out
}

// Highlighted reports whether the summary contains one of keywords,
// ignoring case.
func Highlighted(o Occurrence, keywords []string) bool {
	s := strings.ToLower(o.Summary)
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Lines flattens days into rows: a header per day, then its events, or a
// single empty row for a free day.
func Lines(days []Day, keywords []string) []Line {
	var out []Line
	for _, d := range days {
		out = append(out, Line{Kind: LineDay, Text: d.Date.Format("Mon 02 Jan")})
		if len(d.Occurrences) == 0 {
			out = append(out, Line{Kind: LineEmpty, Text: "No events"})
			continue
		}
		for _, o := range d.Occurrences {
			out = append(out, Line{
				Kind:      LineEvent,
				Text:      eventText(o, d.Date),
				Highlight: Highlighted(o, keywords),
			})
		}
	}
	return out
}

func eventText(o Occurrence, day time.Time) string {
	var when string
	switch {
	case o.AllDay:
		when = "all day"
	case o.Start.Before(day):
		when = "...-" + o.End.Format("15:04")
	case o.End.Equal(o.Start):
		when = o.Start.Format("15:04")
	default:
		when = o.Start.Format("15:04") + "-" + o.End.Format("15:04")
	}
	text := when + "  " + o.Summary
	if o.Location != "" {
		text += " (" + o.Location + ")"
	}
	return text
}

// Paginate splits lines into pages of at most perPage rows. A day header
// is never left alone at the bottom of a page.
func Paginate(lines []Line, perPage int) [][]Line {
	if perPage < 2 {
		perPage = 2
	}
	var pages [][]Line
	var cur []Line
	for i, l := range lines {
		last := len(cur) == perPage-1
		if l.Kind == LineDay && last && i+1 < len(lines) {
			pages = append(pages, cur)
			cur = nil
		}
		cur = append(cur, l)
		if len(cur) == perPage {
			pages = append(pages, cur)
			cur = nil
		}
	}
	if len(cur) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}
	return pages
}
