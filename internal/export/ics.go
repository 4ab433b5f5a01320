// Package export converts a day's intervals to and from external formats:
// iCalendar for other calendar apps and SVG for a printable timeline.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// ProductID identifies daytimeline in exported calendars.
const ProductID = "-//daytimeline//EN"

// floatingLayout is an iCalendar date-time without zone: wall-clock time,
// which is what an interval stores.
const floatingLayout = "20060102T150405"

// uidNamespace seeds stable UIDs for persisted intervals, so exporting the
// same interval twice yields the same UID.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/javiermolinar/daytimeline"))

// WriteICS encodes intervals as a VCALENDAR with one VEVENT each.
func WriteICS(w io.Writer, ivs []*schedule.Interval, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, iv := range ivs {
		cal.Children = append(cal.Children, toVEvent(iv, now))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

// UID returns the iCalendar UID of an interval.
func UID(iv *schedule.Interval) string {
	if !iv.Persisted() {
		return uuid.NewString()
	}
	name := fmt.Sprintf("%d/%s", iv.ID, dateutil.Key(iv.Date))
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

func toVEvent(iv *schedule.Interval, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, UID(iv))
	ve.Props.SetText(ical.PropSummary, iv.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.Set(floating(ical.PropDateTimeStart, iv.Date, iv.Start))
	ve.Props.Set(floating(ical.PropDateTimeEnd, iv.Date, iv.End))

	if iv.Description != "" {
		ve.Props.SetText(ical.PropDescription, iv.Description)
	}
	return ve
}

func floating(name string, date time.Time, t schedule.TimeOfDay) *ical.Prop {
	at := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(t.Minutes()) * time.Minute)
	p := ical.NewProp(name)
	p.Value = at.Format(floatingLayout)
	return p
}
