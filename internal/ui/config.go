package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/config"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Environment variables prefixed with ` + config.EnvPrefix + ` override the file,
e.g. ` + config.EnvPrefix + `DB_PATH or ` + config.EnvPrefix + `LOCALE. They can also be
set in .env or .env.local in the working directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), a.configPath)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := toml.Marshal(a.config)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.configPath, data)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", a.configPath)
			}
			if err := config.Default().SaveTo(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.configPath)
			return nil
		},
	})

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	p := &prompter{r: reader, w: out}
	cfg.Timeline.ScrollTo = p.value("Scroll to (HH:MM)", cfg.Timeline.ScrollTo)
	cfg.Timeline.ShowPast = p.bool("Mute past events", cfg.Timeline.ShowPast)
	cfg.Timeline.SnapUnaligned = p.bool("Snap off-grid times instead of hiding them", cfg.Timeline.SnapUnaligned)
	cfg.Timeline.HourHeight = p.float("SVG hour slot height (px)", cfg.Timeline.HourHeight)
	cfg.Timeline.QuarterHeight = p.float("SVG quarter slot height (px)", cfg.Timeline.QuarterHeight)
	cfg.LLM.Provider = p.choice("LLM provider", cfg.LLM.Provider,
		llm.ProviderOllama, llm.ProviderLMStudio, llm.ProviderOpenAI, llm.ProviderCopilot)
	cfg.LLM.Model = p.value("LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = p.value("LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.choice("UI theme", cfg.UI.Theme, theme.Available()...)
	cfg.UI.Locale = p.choice("Language", cfg.UI.Locale, "ru", "en")
	cfg.Log.Level = p.choice("Log level", cfg.Log.Level, "debug", "info", "warn", "error")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[timeline]")
	fmt.Fprintf(w, "  scroll_to      = %s\n", cfg.Timeline.ScrollTo)
	fmt.Fprintf(w, "  show_past      = %t\n", cfg.Timeline.ShowPast)
	fmt.Fprintf(w, "  snap_unaligned = %t\n", cfg.Timeline.SnapUnaligned)
	fmt.Fprintf(w, "  hour_height    = %g\n", cfg.Timeline.HourHeight)
	fmt.Fprintf(w, "  quarter_height = %g\n", cfg.Timeline.QuarterHeight)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider       = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model          = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url       = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme          = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  locale         = %s\n", cfg.UI.Locale)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level          = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  path           = %s\n", cfg.Log.Path)
}

func promptYesNo(r *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter asks for one value at a time; an empty answer keeps the current one.
// At end of input it stops asking again and keeps current values.
type prompter struct {
	r   *bufio.Reader
	w   io.Writer
	eof bool
}

func (p *prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input, err := p.r.ReadString('\n')
	if err != nil {
		p.eof = true
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p *prompter) bool(label string, current bool) bool {
	for {
		v := p.value(label+" (true/false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
		if p.eof {
			return current
		}
		fmt.Fprintf(p.w, "  Invalid value %q\n", v)
	}
}

func (p *prompter) float(label string, current float64) float64 {
	for {
		v := p.value(label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f > 0 {
			return f
		}
		if p.eof {
			return current
		}
		fmt.Fprintf(p.w, "  Invalid value %q, want a positive number\n", v)
	}
}

func (p *prompter) choice(label, current string, options ...string) string {
	list := strings.Join(options, ", ")
	for {
		v := strings.ToLower(p.value(fmt.Sprintf("%s (%s)", label, list), current))
		for _, o := range options {
			if v == o {
				return v
			}
		}
		if p.eof {
			return current
		}
		fmt.Fprintf(p.w, "  Invalid value %q. Available: %s\n", v, list)
	}
}
