package agenda

import (
	"errors"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	appLog "inkview/internal/log"
)

const defaultMaxOccurrences = 5000

// Occurrence is one concrete instance of an event, in the display zone.
type Occurrence struct {
	SourceID string
	UID      string
	// Key identifies the instance of a recurring event.
	Key string

	Summary  string
	Location string
	AllDay   bool

	Start time.Time
	End   time.Time
}

// Window is the time range and zone occurrences are expanded into.
type Window struct {
	Start time.Time
	End   time.Time
	Loc   *time.Location
	// Max caps the instances produced per event; zero means 5000.
	Max int
}

// Expand turns events into occurrences overlapping w, sorted by start.
// Overrides (RECURRENCE-ID) replace the matching instance of their base
// event. It returns the UIDs whose expansion hit the cap.
func Expand(events []Event, w Window) ([]Occurrence, []string, error) {
	if w.End.Before(w.Start) {
		return nil, nil, errors.New("expand: window end before start")
	}
	if w.Loc == nil {
		w.Loc = time.UTC
	}
	if w.Max <= 0 {
		w.Max = defaultMaxOccurrences
	}

	base := make(map[string][]Event)
	overrides := make(map[string][]Event)
	var uids []string
	for _, ev := range events {
		if ev.RecurrenceID != nil {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
			continue
		}
		if _, seen := base[ev.UID]; !seen {
			uids = append(uids, ev.UID)
		}
		base[ev.UID] = append(base[ev.UID], ev)
	}

	var out []Occurrence
	var truncated []string
	for _, uid := range uids {
		capped := false
		for _, ev := range base[uid] {
			occ, hit := expandEvent(ev, overrides[uid], w)
			capped = capped || hit
			out = append(out, occ...)
		}
		if capped {
			truncated = append(truncated, uid)
			appLog.Warn("occurrences truncated", "uid", uid, "cap", w.Max)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Summary < out[j].Summary
	})
	return out, truncated, nil
}

func expandEvent(ev Event, overrides []Event, w Window) ([]Occurrence, bool) {
	if ev.RRule == "" {
		start, end, inst := ev.Start, ev.End, ev
		if o, ok := findOverride(overrides, start); ok {
			start, end, inst = o.Start, o.End, o
		}
		if !overlaps(start, end, w.Start, w.End) {
			return nil, false
		}
		return []Occurrence{occurrence(inst, start, end, ev.Start, w.Loc)}, false
	}

	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		appLog.Warn("bad RRULE", "uid", ev.UID, "rrule", ev.RRule, "error", err)
		return nil, false
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	dur := ev.End.Sub(ev.Start)
	// Instances starting before the window still count when they run into it.
	from := w.Start.Add(-dur).In(ev.Start.Location())
	to := w.End.In(ev.Start.Location())
	starts := set.Between(from, to, true)

	hit := false
	if len(starts) > w.Max {
		starts = starts[:w.Max]
		hit = true
	}

	out := make([]Occurrence, 0, len(starts))
	for _, s := range starts {
		e := s.Add(dur)
		if ev.AllDay {
			s = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
			days := max(1, int(dur.Hours()+12)/24)
			e = s.AddDate(0, 0, days)
		}
		start, end, inst := s, e, ev
		if o, ok := findOverride(overrides, s); ok {
			start, end, inst = o.Start, o.End, o
		}
		if !overlaps(start, end, w.Start, w.End) {
			continue
		}
		out = append(out, occurrence(inst, start, end, s, w.Loc))
	}
	return out, hit
}

// findOverride returns the override whose RECURRENCE-ID is the instance start.
func findOverride(overrides []Event, start time.Time) (Event, bool) {
	for _, o := range overrides {
		if o.RecurrenceID != nil && o.RecurrenceID.Equal(start) {
			return o, true
		}
	}
	return Event{}, false
}

func occurrence(ev Event, start, end, instance time.Time, loc *time.Location) Occurrence {
	if ev.AllDay {
		// All-day dates stay on the calendar day they name in any zone.
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	} else {
		start, end = start.In(loc), end.In(loc)
	}
	return Occurrence{
		SourceID: ev.Source.ID,
		UID:      ev.UID,
		Key:      ev.UID + "@" + instance.UTC().Format(time.RFC3339),
		Summary:  ev.Summary,
		Location: ev.Location,
		AllDay:   ev.AllDay,
		Start:    start,
		End:      end,
	}
}

// overlaps treats a zero-length event as occupying its start instant.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Equal(aStart) {
		return !aStart.Before(bStart) && aStart.Before(bEnd)
	}
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
