package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"satscan/internal/config"
	"satscan/internal/events"
	"satscan/internal/httpapi"
	"satscan/internal/patrol"
	"satscan/internal/scene"
	"satscan/internal/seeker"
)

var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "satscan",
		Short:         "Satellite patrol and scout simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Scene/service config file (.yaml|.yml|.json|.toml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults SATSCAN_LOG_LEVEL or info)")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "Emit JSON logs instead of console output")

	root.AddCommand(newServeCmd(g), newSimulateCmd(g), &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	})
	return root
}

// loadConfig resolves the effective config: file (if any), then env, then
// flags, then defaults.
func loadConfig(g *globalFlags) (config.Config, error) {
	var cfg config.Config
	if g.configPath != "" {
		c, err := config.Load(g.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := cfg.FromEnv(); err != nil {
		return cfg, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.logJSON {
		cfg.LogJSON = true
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(w io.Writer, level string, asJSON bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if !asJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// installLogger hands l to every package that logs.
func installLogger(l zerolog.Logger) {
	events.Default().SetLogger(l)
	patrol.SetLogger(l)
	seeker.SetLogger(l)
	scene.SetLogger(l)
	httpapi.SetLogger(l)
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stderr() io.Writer { return os.Stderr }
