// Package cli implements consolectl, the headless client of the console.
// Each command mounts the screens it needs in-process, the same way the web
// server does, and prints the result.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/opsconsole/internal/config"
	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/logging"
	"github.com/JonMunkholm/opsconsole/internal/store"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store   store.Store
	service *core.Service
	root    *cobra.Command
	out     io.Writer

	logLevel  string
	logFormat string
}

// NewApp creates the CLI over st. A nil cfg uses the default table settings.
func NewApp(st store.Store, cfg *config.Config, presets config.Presets, out io.Writer) *App {
	a := &App{
		store:     st,
		service:   core.NewService(st, cfg, presets),
		out:       out,
		logFormat: "text",
	}
	if cfg != nil {
		a.logFormat = cfg.Logging.Format
	}

	a.root = &cobra.Command{
		Use:   "consolectl",
		Short: "Query the operations console from the terminal",
		Long: `consolectl mounts console screens without the web UI.

It reads DATABASE_URL like the server does; without it the built-in
sample dataset is used.`,
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			slog.SetDefault(logging.New(os.Stderr, a.logLevel, a.logFormat))
		},
	}
	a.root.SetOut(out)
	a.root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level written to stderr: debug, info, warn, error")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.screensCmd())
	a.root.AddCommand(a.queryCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.actionsCmd())
	a.root.AddCommand(a.migrateCmd())
	a.root.AddCommand(a.seedCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "consolectl %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application with os.Args.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Run executes the CLI with args instead of os.Args.
func (a *App) Run(args ...string) error {
	a.root.SetArgs(args)
	return a.root.Execute()
}

// Close drops every mounted table. The store is owned by the caller.
func (a *App) Close() {
	a.service.Close()
}
