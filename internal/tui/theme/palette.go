package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds lipgloss colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Event       lipgloss.Color
	Current     lipgloss.Color
	Warning     lipgloss.Color
	Grid        lipgloss.Color

	// Block backgrounds. Alt shades alternate between adjacent intervals.
	EventBg    lipgloss.Color
	EventBgAlt lipgloss.Color
	PastBg     lipgloss.Color
	PastBgAlt  lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnEvent   lipgloss.Color
	TextOnCurrent lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors
}

// ModalColors holds form and dialog colors.
type ModalColors struct {
	Bg        lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
}

// NewPalette derives a Palette from t. A nil theme uses DefaultName.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t.Bg)
	eventBg := blockBg(t.Event, t.Bg, light)
	pastBg := pastBg(t.Event, t.Bg, light)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Event:       lipgloss.Color(t.Event),
		Current:     lipgloss.Color(t.Current),
		Warning:     lipgloss.Color(t.Warning),
		Grid:        lipgloss.Color(t.Grid),

		EventBg:    lipgloss.Color(eventBg),
		EventBgAlt: lipgloss.Color(alternateShade(eventBg, light)),
		PastBg:     lipgloss.Color(pastBg),
		PastBgAlt:  lipgloss.Color(alternateShade(pastBg, light)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnEvent:   lipgloss.Color(chooseTextColor(eventBg, t.Bg, t.Fg)),
		TextOnCurrent: lipgloss.Color(chooseTextColor(t.Current, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:        lipgloss.Color(coalesce(t.BaseBg, t.BgHighlight, t.Bg)),
			Border:    lipgloss.Color(coalesce(t.ModalBorder, t.Accent)),
			Text:      lipgloss.Color(coalesce(t.TextPrimary, t.Fg)),
			Muted:     lipgloss.Color(coalesce(t.TextMuted, t.FgMuted)),
			Highlight: lipgloss.Color(coalesce(t.Highlight, t.BgSelection, t.Accent)),
		},
	}
}

// IsLight reports whether a background is light enough to need dark text.
func IsLight(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func blockBg(event, bg string, light bool) string {
	if light {
		return blend(event, bg, 0.75)
	}
	return scale(event, 0.50, 40)
}

func pastBg(event, bg string, light bool) string {
	if light {
		return blend(event, bg, 0.88)
	}
	return scale(event, 0.30, 30)
}

// alternateShade makes adjacent blocks distinguishable.
func alternateShade(hex string, light bool) string {
	if light {
		return blend(hex, "#000000", 0.10)
	}
	return blend(hex, "#ffffff", 0.30)
}

// scale multiplies each channel by factor with a floor so dark themes keep
// blocks visible.
func scale(hex string, factor float64, floor uint8) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	ch := func(v uint8) uint8 {
		s := uint8(float64(v) * factor)
		if s < floor {
			return floor
		}
		return s
	}
	return colorful.Color{
		R: float64(ch(r)) / 255,
		G: float64(ch(g)) / 255,
		B: float64(ch(b)) / 255,
	}.Hex()
}

// blend mixes a towards b by ratio in RGB space.
func blend(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG luminance of a hex color, 0 for invalid input.
func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
