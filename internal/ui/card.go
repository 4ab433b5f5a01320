package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/tui/theme"
)

// CardProps is the content of the demo card. Empty fields use the
// localized defaults.
type CardProps struct {
	Title       string
	Description string
	Tag         string
	MoreText    string
}

func (a *App) cardCmd() *cobra.Command {
	var (
		props CardProps
		lang  string
		width int
	)

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render the demo card",
		Long: `Render a small card component with the configured theme and
language, to check how styles and translations look in your terminal.`,
		Example: `  daytimeline card
  daytimeline card --lang en --tag Go`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg := a.msg
			if lang != "" {
				msg = i18n.New(lang)
			}
			t, err := theme.Load(a.config.UI.Theme)
			if err != nil {
				return err
			}
			if a.noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			if width <= 0 {
				width = min(termWidth(), 72)
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderCard(props.withDefaults(msg), theme.NewPalette(t), width))
			return nil
		},
	}

	cmd.Flags().StringVar(&props.Title, "title", "", "Card title")
	cmd.Flags().StringVar(&props.Description, "desc", "", "Card text")
	cmd.Flags().StringVar(&props.Tag, "tag", "", "Tag label")
	cmd.Flags().StringVar(&props.MoreText, "more", "", "Button label")
	cmd.Flags().StringVar(&lang, "lang", "", "Language, ru or en (default: ui.locale)")
	cmd.Flags().IntVar(&width, "width", 0, "Card width (default: terminal width, at most 72)")
	return cmd
}

func (p CardProps) withDefaults(msg *i18n.Printer) CardProps {
	if p.Title == "" {
		p.Title = msg.T(i18n.CardTitle)
	}
	if p.Description == "" {
		p.Description = msg.T(i18n.CardBody)
	}
	if p.Tag == "" {
		p.Tag = msg.T(i18n.CardTag)
	}
	if p.MoreText == "" {
		p.MoreText = msg.T(i18n.CardMore)
	}
	return p
}

// RenderCard lays out the card: an icon column with the tag, a divider, and
// the title, text and button on the right.
func RenderCard(p CardProps, pal *theme.Palette, width int) string {
	const sideWidth = 14
	if width < sideWidth+20 {
		width = sideWidth + 20
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Modal.Border).
		Padding(1, 2)
	inner := width - frame.GetHorizontalFrameSize()
	bodyWidth := inner - sideWidth - 3

	icon := lipgloss.NewStyle().
		Foreground(pal.TextOnAccent).
		Background(pal.Accent).
		Bold(true).
		Padding(0, 1).
		Render(" i ")
	tag := lipgloss.NewStyle().
		Foreground(pal.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Accent).
		Padding(0, 1).
		MaxWidth(sideWidth).
		Render("# " + p.Tag)
	side := lipgloss.NewStyle().
		Width(sideWidth).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, icon, "", tag))

	title := lipgloss.NewStyle().
		Foreground(pal.Accent).
		Bold(true).
		Width(bodyWidth).
		Render(p.Title)
	text := lipgloss.NewStyle().
		Foreground(pal.Modal.Muted).
		Width(bodyWidth).
		Render(p.Description)
	button := lipgloss.NewStyle().
		Foreground(pal.TextOnAccent).
		Background(pal.Accent).
		Bold(true).
		Padding(0, 2).
		Render(p.MoreText)
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", text, "", button)

	divider := lipgloss.NewStyle().
		Foreground(pal.Grid).
		Render(lipgloss.JoinVertical(lipgloss.Left, repeatLines("│", lipgloss.Height(body))...))

	row := lipgloss.JoinHorizontal(lipgloss.Center, side, " ", divider, " ", body)
	return frame.Render(row)
}

func repeatLines(s string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = s
	}
	return lines
}
