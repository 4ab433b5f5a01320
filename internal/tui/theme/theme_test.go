package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "load light theme", themeName: "light", wantName: "light"},
		{name: "case and spaces", themeName: " Latte ", wantName: "latte"},
		{name: "empty name uses default", themeName: "", wantName: DefaultName},
		{name: "invalid theme falls back to default", themeName: "nonexistent", wantName: DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_AllThemesComplete(t *testing.T) {
	for _, name := range Available() {
		theme, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) unexpected error: %v", name, err)
		}

		colors := map[string]string{
			"Bg":          theme.Bg,
			"BgHighlight": theme.BgHighlight,
			"BgSelection": theme.BgSelection,
			"Fg":          theme.Fg,
			"FgMuted":     theme.FgMuted,
			"Accent":      theme.Accent,
			"Event":       theme.Event,
			"Current":     theme.Current,
			"Warning":     theme.Warning,
			"Grid":        theme.Grid,
			"BaseBg":      theme.BaseBg,
			"ModalBorder": theme.ModalBorder,
			"TextPrimary": theme.TextPrimary,
			"TextMuted":   theme.TextMuted,
			"Highlight":   theme.Highlight,
		}
		for field, hex := range colors {
			if len(hex) != 7 || hex[0] != '#' {
				t.Errorf("%s: %s = %q, want #rrggbb", name, field, hex)
			}
		}
	}
}

func TestLoad_LightOverridesModalBorder(t *testing.T) {
	theme, err := Load("light")
	if err != nil {
		t.Fatal(err)
	}
	if theme.ModalBorder != "#9e9e9e" {
		t.Errorf("ModalBorder = %q, want #9e9e9e", theme.ModalBorder)
	}
	if theme.TextPrimary != theme.Fg {
		t.Errorf("TextPrimary = %q, want Fg %q", theme.TextPrimary, theme.Fg)
	}
}

func TestAvailable(t *testing.T) {
	expected := []string{"mocha", "macchiato", "frappe", "latte", "light"}
	available := Available()
	if len(available) != len(expected) {
		t.Fatalf("Available() returned %d themes, want %d", len(available), len(expected))
	}
	for i, want := range expected {
		if available[i] != want {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		theme    string
		expected bool
	}{
		{theme: "mocha", expected: true},
		{theme: "Frappe", expected: true},
		{theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		if got := IsAvailable(tt.theme); got != tt.expected {
			t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
		}
	}
}

func TestColor(t *testing.T) {
	hex := "#8caaee"
	if c := Color(hex); string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
