package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// Reasons an event is left out of an import.
var (
	ErrAllDay   = errors.New("all-day event")
	ErrMultiDay = errors.New("event spans more than one day")
	ErrNoStart  = errors.New("event has no start")
)

// Skipped is a VEVENT that could not become an interval.
type Skipped struct {
	UID     string
	Summary string
	Err     error
}

// ImportResult holds the intervals read from a calendar and the events left out.
type ImportResult struct {
	Intervals []*schedule.Interval
	Skipped   []Skipped
}

// ReadICS parses a calendar into intervals. Times with a zone (UTC or TZID)
// are converted to loc; floating times are taken as wall-clock time.
// Repeating events with COUNT or UNTIL are expanded into one interval per
// occurrence. Nothing is written anywhere.
func ReadICS(r io.Reader, loc *time.Location) (*ImportResult, error) {
	if loc == nil {
		loc = time.Local
	}

	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	res := &ImportResult{}
	for _, ve := range cal.Events() {
		ivs, err := fromVEvent(ve, loc)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{
				UID:     propValue(ve, ics.ComponentPropertyUniqueId),
				Summary: propValue(ve, ics.ComponentPropertySummary),
				Err:     err,
			})
			continue
		}
		res.Intervals = append(res.Intervals, ivs...)
	}
	return res, nil
}

func fromVEvent(ve *ics.VEvent, loc *time.Location) ([]*schedule.Interval, error) {
	startProp := ve.GetProperty(ics.ComponentPropertyDtStart)
	if startProp == nil || startProp.Value == "" {
		return nil, ErrNoStart
	}
	if isDateOnly(startProp) {
		return nil, ErrAllDay
	}

	start, err := eventTime(startProp, loc, func() (time.Time, error) { return ve.GetStartAt() })
	if err != nil {
		return nil, fmt.Errorf("DTSTART: %w", err)
	}

	var end time.Time
	if endProp := ve.GetProperty(ics.ComponentPropertyDtEnd); endProp != nil && endProp.Value != "" {
		end, err = eventTime(endProp, loc, func() (time.Time, error) { return ve.GetEndAt() })
		if err != nil {
			return nil, fmt.Errorf("DTEND: %w", err)
		}
	} else {
		// No DTEND: RFC 5545 gives the event zero duration; make it one slot.
		end = start.Add(15 * time.Minute)
	}

	endsAtMidnight := false
	if !dateutil.SameDay(start, end) {
		// An event ending exactly at midnight still fits its day.
		if !(end.Hour() == 0 && end.Minute() == 0 && dateutil.SameDay(start, end.Add(-time.Minute))) {
			return nil, ErrMultiDay
		}
		endsAtMidnight = true
	}

	days := []time.Time{dateutil.TruncateToDay(start)}
	if rule := propValue(ve, ics.ComponentPropertyRrule); rule != "" {
		days, err = dateutil.Expand(rule, dateutil.TruncateToDay(start))
		if err != nil {
			return nil, err
		}
	}

	summary := propValue(ve, ics.ComponentPropertySummary)
	description := propValue(ve, ics.ComponentPropertyDescription)
	from := clock(start)
	to := clock(end)
	if endsAtMidnight {
		// The grid has no 24:00; the last slot is the latest end it can place.
		to = timeline.LastSlot.String()
	}

	ivs := make([]*schedule.Interval, 0, len(days))
	for _, day := range days {
		iv, err := schedule.New(dateutil.Key(day), from, to, summary, description)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}
	return ivs, nil
}

// eventTime resolves a DTSTART/DTEND property. Zoned values go through the
// library so TZID is honoured; floating values keep their wall clock.
func eventTime(p *ics.IANAProperty, loc *time.Location, zoned func() (time.Time, error)) (time.Time, error) {
	v := strings.TrimSpace(p.Value)
	if !strings.HasSuffix(v, "Z") && param(p, "TZID") == "" {
		return time.ParseInLocation(floatingLayout, v, loc)
	}
	t, err := zoned()
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func isDateOnly(p *ics.IANAProperty) bool {
	if strings.EqualFold(param(p, "VALUE"), "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func param(p *ics.IANAProperty, name string) string {
	if p.ICalParameters == nil {
		return ""
	}
	if vs, ok := p.ICalParameters[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func propValue(ve *ics.VEvent, name ics.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

func clock(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
