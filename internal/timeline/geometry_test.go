package timeline

import (
	"errors"
	"testing"

	"github.com/javiermolinar/daytimeline/internal/schedule"
)

func TestPosition_NineToTen(t *testing.T) {
	g := BuildGrid()
	h := DefaultHeights

	span, err := g.Position(h, schedule.MustParseTime("09:00"), schedule.MustParseTime("10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 09:00, 10:00 are hour slots; 09:15, 09:30, 09:45 are quarters.
	// Inclusive walk: 40 + 3*20 + 40 = 140, minus half of each boundary slot.
	wantHeight := 2*h.Hour + 3*h.Quarter - h.Hour/2 - h.Hour/2
	if span.Height != wantHeight {
		t.Errorf("Height = %v, want %v", span.Height, wantHeight)
	}
	if span.Height != 100 {
		t.Errorf("Height = %v, want 100", span.Height)
	}

	// Nine full hours precede 09:00, then half of the 09:00 slot.
	wantTop := 9*(h.Hour+3*h.Quarter) + h.Hour/2
	if span.Top != wantTop {
		t.Errorf("Top = %v, want %v", span.Top, wantTop)
	}
	if span.Bottom() != wantTop+wantHeight {
		t.Errorf("Bottom() = %v, want %v", span.Bottom(), wantTop+wantHeight)
	}
}

func TestPosition(t *testing.T) {
	g := BuildGrid()
	h := DefaultHeights

	tests := []struct {
		name       string
		start, end string
		wantTop    float64
		wantHeight float64
	}{
		// start 00:00 (hour, 40): top 20; height 40+20 - 20 - 10 = 30
		{name: "first quarter hour", start: "00:00", end: "00:15", wantTop: 20, wantHeight: 30},
		// 00:15 quarter: top 40+10 = 50; height 20+20 - 10 - 10 = 20
		{name: "quarter to quarter", start: "00:15", end: "00:30", wantTop: 50, wantHeight: 20},
		// 00:45 quarter -> 01:00 hour: top 40+20+20+10 = 90; height 20+40 - 10 - 20 = 30
		{name: "quarter to hour", start: "00:45", end: "01:00", wantTop: 90, wantHeight: 30},
		// 23:00 -> 23:45: top 23*100 + 20 = 2320; height 40+20+20+20 - 20 - 10 = 70
		{name: "end of day", start: "23:00", end: "23:45", wantTop: 2320, wantHeight: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := g.Position(h, schedule.MustParseTime(tt.start), schedule.MustParseTime(tt.end))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if span.Top != tt.wantTop || span.Height != tt.wantHeight {
				t.Errorf("Position(%s, %s) = %+v, want top %v height %v",
					tt.start, tt.end, span, tt.wantTop, tt.wantHeight)
			}
		})
	}
}

func TestPosition_Errors(t *testing.T) {
	g := BuildGrid()

	tests := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{name: "start equals end", start: "09:00", end: "09:00", wantErr: ErrEmptySpan},
		{name: "end before start", start: "10:00", end: "09:00", wantErr: ErrEmptySpan},
		{name: "unaligned start", start: "09:10", end: "10:00", wantErr: ErrUnaligned},
		{name: "unaligned end", start: "09:00", end: "09:50", wantErr: ErrUnaligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Position(DefaultHeights, schedule.MustParseTime(tt.start), schedule.MustParseTime(tt.end))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapPosition(t *testing.T) {
	g := BuildGrid()

	snapped, err := g.SnapPosition(DefaultHeights, schedule.MustParseTime("09:05"), schedule.MustParseTime("09:58"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exact, _ := g.Position(DefaultHeights, schedule.MustParseTime("09:00"), schedule.MustParseTime("10:00"))
	if snapped != exact {
		t.Errorf("SnapPosition = %+v, want %+v", snapped, exact)
	}

	_, err = g.SnapPosition(DefaultHeights, schedule.MustParseTime("09:01"), schedule.MustParseTime("09:05"))
	if !errors.Is(err, ErrEmptySpan) {
		t.Errorf("collapsed span error = %v, want %v", err, ErrEmptySpan)
	}
}

func TestTotalHeight(t *testing.T) {
	g := BuildGrid()
	if got := g.TotalHeight(DefaultHeights); got != 2400 {
		t.Errorf("TotalHeight = %v, want 2400", got)
	}
	if got := g.TotalHeight(TerminalHeights); got != 120 {
		t.Errorf("TotalHeight(terminal) = %v, want 120", got)
	}
	if got := g.SlotTop(DefaultHeights, 36); got != 900 {
		t.Errorf("SlotTop(36) = %v, want 900", got)
	}
}

func TestLayout(t *testing.T) {
	g := BuildGrid()
	ivs := []*schedule.Interval{
		{ID: 1, Start: schedule.MustParseTime("09:00"), End: schedule.MustParseTime("10:00"), Title: "A"},
		{ID: 2, Start: schedule.MustParseTime("10:10"), End: schedule.MustParseTime("10:50"), Title: "B"},
	}

	t.Run("reject unaligned", func(t *testing.T) {
		blocks, rejected := g.Layout(DefaultHeights, ivs, false)
		if len(blocks) != 1 || blocks[0].Interval.ID != 1 {
			t.Fatalf("blocks = %+v, want only A", blocks)
		}
		if len(rejected) != 1 || !errors.Is(rejected[0].Err, ErrUnaligned) {
			t.Fatalf("rejected = %+v, want B unaligned", rejected)
		}
	})

	t.Run("snap unaligned", func(t *testing.T) {
		blocks, rejected := g.Layout(DefaultHeights, ivs, true)
		if len(rejected) != 0 {
			t.Fatalf("rejected = %+v, want none", rejected)
		}
		if len(blocks) != 2 {
			t.Fatalf("len(blocks) = %d, want 2", len(blocks))
		}
		if blocks[0].Snapped {
			t.Error("A is aligned and must not be marked snapped")
		}
		if !blocks[1].Snapped {
			t.Error("B must be marked snapped")
		}
		want, _ := g.Position(DefaultHeights, schedule.MustParseTime("10:15"), schedule.MustParseTime("10:45"))
		if blocks[1].Span != want {
			t.Errorf("B span = %+v, want %+v", blocks[1].Span, want)
		}
		if blocks[0].Span.Bottom() > blocks[1].Span.Top {
			t.Error("blocks of non-overlapping intervals must not overlap")
		}
	})
}
