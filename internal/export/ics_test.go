package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

func mustInterval(t *testing.T, id int64, date, start, end, title, desc string) *schedule.Interval {
	t.Helper()
	iv, err := schedule.New(date, start, end, title, desc)
	if err != nil {
		t.Fatalf("schedule.New: %v", err)
	}
	iv.ID = id
	return iv
}

func TestWriteICS(t *testing.T) {
	ivs := []*schedule.Interval{
		mustInterval(t, 1, "2025-01-20", "09:00", "10:00", "Standup", "daily sync"),
		mustInterval(t, 2, "2025-01-20", "10:00", "10:15", "Coffee", ""),
	}
	now := time.Date(2025, 1, 19, 8, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteICS(&buf, ivs, now); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ProductID,
		"SUMMARY:Standup",
		"DESCRIPTION:daily sync",
		"DTSTART:20250120T090000",
		"DTEND:20250120T100000",
		"DTSTART:20250120T100000",
		"DTEND:20250120T101500",
		"DTSTAMP:20250119T080000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("got %d VEVENTs, want 2", n)
	}
}

func TestUID_Stable(t *testing.T) {
	a := mustInterval(t, 7, "2025-01-20", "09:00", "10:00", "A", "")
	b := mustInterval(t, 7, "2025-01-20", "11:00", "12:00", "A renamed", "")
	c := mustInterval(t, 8, "2025-01-20", "09:00", "10:00", "A", "")

	if UID(a) != UID(b) {
		t.Error("same ID and date must give the same UID")
	}
	if UID(a) == UID(c) {
		t.Error("different IDs must give different UIDs")
	}

	draft := mustInterval(t, 0, "2025-01-20", "09:00", "10:00", "A", "")
	first, second := UID(draft), UID(draft)
	if first == second {
		t.Error("unpersisted intervals get a fresh UID each time")
	}
}

func TestICSRoundTrip(t *testing.T) {
	ivs := []*schedule.Interval{
		mustInterval(t, 1, "2025-01-20", "09:00", "10:00", "Standup", "daily sync"),
		mustInterval(t, 2, "2025-01-20", "13:30", "14:45", "Review", ""),
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, ivs, time.Now()); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}

	res, err := ReadICS(&buf, time.UTC)
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skipped events: %+v", res.Skipped)
	}
	if len(res.Intervals) != len(ivs) {
		t.Fatalf("got %d intervals, want %d", len(res.Intervals), len(ivs))
	}
	for i, got := range res.Intervals {
		want := ivs[i]
		if got.Title != want.Title || got.Description != want.Description {
			t.Errorf("[%d] got %q/%q, want %q/%q", i, got.Title, got.Description, want.Title, want.Description)
		}
		if got.Start != want.Start || got.End != want.End {
			t.Errorf("[%d] got %s-%s, want %s-%s", i, got.Start, got.End, want.Start, want.End)
		}
		if !dateutil.SameDay(got.Date, want.Date) {
			t.Errorf("[%d] got date %s, want %s", i, dateutil.Key(got.Date), dateutil.Key(want.Date))
		}
		if got.Persisted() {
			t.Errorf("[%d] imported interval must not carry an ID", i)
		}
	}
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:utc@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Call\r\n" +
	"DTSTART:20250120T090000Z\r\n" +
	"DTEND:20250120T093000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:allday@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Holiday\r\n" +
	"DTSTART;VALUE=DATE:20250121\r\n" +
	"DTEND;VALUE=DATE:20250122\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Gym\r\n" +
	"DTSTART:20250120T180000\r\n" +
	"DTEND:20250120T190000\r\n" +
	"RRULE:FREQ=WEEKLY;COUNT=3\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:forever@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Forever\r\n" +
	"DTSTART:20250120T200000\r\n" +
	"DTEND:20250120T210000\r\n" +
	"RRULE:FREQ=DAILY\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:overnight@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Night shift\r\n" +
	"DTSTART:20250120T220000\r\n" +
	"DTEND:20250121T060000\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:midnight@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Late\r\n" +
	"DTSTART:20250122T230000\r\n" +
	"DTEND:20250123T000000\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestReadICS(t *testing.T) {
	res, err := ReadICS(strings.NewReader(sampleICS), time.UTC)
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}

	var got []string
	for _, iv := range res.Intervals {
		got = append(got, dateutil.Key(iv.Date)+" "+iv.Start.String()+"-"+iv.End.String()+" "+iv.Title)
	}
	want := []string{
		"2025-01-20 09:00-09:30 Call",
		"2025-01-20 18:00-19:00 Gym",
		"2025-01-27 18:00-19:00 Gym",
		"2025-02-03 18:00-19:00 Gym",
		"2025-01-22 23:00-23:45 Late",
	}
	if len(got) != len(want) {
		t.Fatalf("got intervals %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	skipped := map[string]error{}
	for _, s := range res.Skipped {
		skipped[s.UID] = s.Err
	}
	if !errors.Is(skipped["allday@test"], ErrAllDay) {
		t.Errorf("all-day event: got %v, want %v", skipped["allday@test"], ErrAllDay)
	}
	if !errors.Is(skipped["forever@test"], dateutil.ErrUnboundedRule) {
		t.Errorf("open repeat: got %v, want %v", skipped["forever@test"], dateutil.ErrUnboundedRule)
	}
	if !errors.Is(skipped["overnight@test"], ErrMultiDay) {
		t.Errorf("overnight: got %v, want %v", skipped["overnight@test"], ErrMultiDay)
	}
}

func TestReadICS_ConvertsZonedTimes(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	res, err := ReadICS(strings.NewReader(sampleICS), loc)
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}
	if len(res.Intervals) == 0 {
		t.Fatal("no intervals")
	}
	call := res.Intervals[0]
	if call.Title != "Call" || call.Start.String() != "12:00" || call.End.String() != "12:30" {
		t.Errorf("Call = %s, want 12:00-12:30 in UTC+3", call)
	}
	gym := res.Intervals[1]
	if gym.Start.String() != "18:00" {
		t.Errorf("floating Gym start = %s, want wall-clock 18:00", gym.Start)
	}
}

func TestReadICS_Invalid(t *testing.T) {
	if _, err := ReadICS(strings.NewReader("not a calendar"), time.UTC); err == nil {
		t.Error("expected error for garbage input")
	}
}
