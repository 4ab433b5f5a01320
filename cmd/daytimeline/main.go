package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/daytimeline/internal/config"
	"github.com/javiermolinar/daytimeline/internal/ui"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := ui.NewApp(cfg)
	err = app.Execute()
	_ = app.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", app.Describe(err))
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	// Keys from .env files never override the real environment.
	if err := config.LoadEnvFiles(".env.local", ".env"); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
