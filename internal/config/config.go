// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DAYTIMELINE_"

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// TimelineConfig holds day grid settings.
type TimelineConfig struct {
	HourHeight    float64 `toml:"hour_height"`    // pixels per hour slot in SVG export
	QuarterHeight float64 `toml:"quarter_height"` // pixels per quarter slot in SVG export
	SnapUnaligned bool    `toml:"snap_unaligned"` // snap off-grid times instead of rejecting them
	ShowPast      bool    `toml:"show_past"`      // grey out intervals that already ended
	ScrollTo      string  `toml:"scroll_to"`      // e.g., "08:00", first visible row in the TUI

	// Working hours searched by add --next.
	DayStart string   `toml:"day_start"` // e.g., "09:00"
	DayEnd   string   `toml:"day_end"`   // e.g., "18:00"
	Workdays []string `toml:"workdays"`  // e.g., ["monday", "tuesday", ...]
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "lmstudio", "copilot"
	Model    string `toml:"model"`    // e.g., "llama3.2"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI and CLI presentation settings.
type UIConfig struct {
	Theme  string `toml:"theme"`  // "mocha", "macchiato", "frappe", "latte", "light"
	Locale string `toml:"locale"` // "ru" or "en"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	Path  string `toml:"path"`  // debug log file, used with --debug
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			HourHeight:    40,
			QuarterHeight: 20,
			SnapUnaligned: false,
			ShowPast:      true,
			ScrollTo:      "08:00",
			DayStart:      "09:00",
			DayEnd:        "18:00",
			Workdays:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:  "frappe",
			Locale: "ru",
		},
		Log: LogConfig{
			Level: "warn",
			Path:  "daytimeline-debug.log",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daytimeline.db"
	}
	return filepath.Join(home, ".local", "share", "daytimeline", "daytimeline.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daytimeline", "config.toml")
}

// LoadEnvFiles loads dotenv files that exist, in order. Variables already set
// in the environment win, and earlier files win over later ones.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies DAYTIMELINE_* environment variables.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	env := func(name string) string {
		return os.Getenv(EnvPrefix + name)
	}

	// Timeline overrides
	if v := env("SNAP_UNALIGNED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSNAP_UNALIGNED: %w", EnvPrefix, err)
		}
		cfg.Timeline.SnapUnaligned = b
	}
	if v := env("SHOW_PAST"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSHOW_PAST: %w", EnvPrefix, err)
		}
		cfg.Timeline.ShowPast = b
	}
	if v := env("SCROLL_TO"); v != "" {
		cfg.Timeline.ScrollTo = v
	}
	if v := env("DAY_START"); v != "" {
		cfg.Timeline.DayStart = v
	}
	if v := env("DAY_END"); v != "" {
		cfg.Timeline.DayEnd = v
	}
	if v := env("WORKDAYS"); v != "" {
		cfg.Timeline.Workdays = strings.Split(v, ",")
	}

	// LLM overrides
	if v := env("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := env("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := env("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// Storage overrides
	if v := env("DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := env("UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := env("LOCALE"); v != "" {
		cfg.UI.Locale = v
	}

	// Log overrides
	if v := env("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := env("LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeline.HourHeight <= 0 || c.Timeline.QuarterHeight <= 0 {
		return errors.New("hour_height and quarter_height must be positive")
	}
	if err := validateTime(c.Timeline.ScrollTo, "scroll_to"); err != nil {
		return err
	}
	if err := validateTime(c.Timeline.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Timeline.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Timeline.DayStart >= c.Timeline.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	for _, d := range c.Timeline.Workdays {
		if !isOneOf(strings.TrimSpace(d), "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday") {
			return fmt.Errorf("invalid workday: %s", d)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !isOneOf(c.UI.Locale, "ru", "en") {
		return fmt.Errorf("unsupported locale: %s", c.UI.Locale)
	}
	if !isOneOf(c.Log.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) || hour > "23" || min > "59" {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isOneOf(v string, allowed ...string) bool {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
