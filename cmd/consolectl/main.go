package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/opsconsole/internal/cli"
	"github.com/JonMunkholm/opsconsole/internal/config"
	_ "github.com/JonMunkholm/opsconsole/internal/core/screens" // Register all screens
	"github.com/JonMunkholm/opsconsole/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine.
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	presets, err := config.LoadPresets(cfg.Table.PresetsFile, cfg.Table)
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}

	st, err := store.Open(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	app := cli.NewApp(st, cfg, presets, os.Stdout)
	defer app.Close()
	return app.Execute()
}
