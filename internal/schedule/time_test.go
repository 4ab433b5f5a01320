package schedule

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TimeOfDay
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "noon", input: "12:00", want: 720},
		{name: "with minutes", input: "09:30", want: 570},
		{name: "last quarter", input: "23:45", want: 1425},
		{name: "last minute", input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTime(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTime_Errors(t *testing.T) {
	inputs := []string{
		"",
		"9:00",
		"09:0",
		"0900",
		"09:00:00",
		"ab:cd",
		"24:00",
		"12:60",
		"-1:00",
		"09:3x",
		" 09:30",
	}

	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := ParseTime(input)
			if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ParseTime(%q) error = %v, want %v", input, err, ErrInvalidTime)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name  string
		input TimeOfDay
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "9am", input: 540, want: "09:00"},
		{name: "with minutes", input: 570, want: "09:30"},
		{name: "11:59pm", input: 1439, want: "23:59"},
		{name: "negative clamps to zero", input: -10, want: "00:00"},
		{name: "over 24h clamps", input: 1500, want: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.input); got != tt.want {
				t.Errorf("FormatTime(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s := fmt.Sprintf("%02d:%02d", h, m)
			got, err := ParseTime(s)
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", s, err)
			}
			if FormatTime(got) != s {
				t.Fatalf("FormatTime(ParseTime(%q)) = %q", s, FormatTime(got))
			}
		}
	}
}

func TestTimeOfDayAdd(t *testing.T) {
	start := MustParseTime("23:30")
	if got := start.Add(15); got.String() != "23:45" {
		t.Errorf("Add(15) = %s, want 23:45", got)
	}
	if got := start.Add(60); got.String() != "23:59" {
		t.Errorf("Add(60) = %s, want clamp to 23:59", got)
	}
	if got := MustParseTime("00:10").Add(-15); got != 0 {
		t.Errorf("Add(-15) = %s, want 00:00", got)
	}
}

func TestFromTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2025-01-20T09:30:00Z", want: "09:30"},
		{input: "2025-01-20T09:30:00+00:00", want: "09:30"},
		{input: "2025-01-20 14:15:00", want: "14:15"},
		{input: "2025-01-20", wantErr: true},
		{input: "2025-01-20T9:30", wantErr: true},
		{input: "2025-01-20X09:30:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := FromTimestamp(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTime) {
					t.Fatalf("FromTimestamp(%q) error = %v, want %v", tt.input, err, ErrInvalidTime)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromTimestamp(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("FromTimestamp(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
