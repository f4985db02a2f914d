// Package cmd implements the uiforge command line.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/uiforge/internal/config"
	"github.com/felixgeelhaar/uiforge/internal/log"
	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/telemetry"
	"github.com/felixgeelhaar/uiforge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "uiforge",
	Short: "Turn natural-language instructions into UI plans and React code",
	Long: `uiforge asks a language model for a structured UI plan, validates it
against a fixed component schema, and compiles it into a React/TSX module.

Plans can be generated one-shot, refined interactively in a terminal chat,
served over HTTP, diffed between versions, and shipped to an OCI registry.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE: setup,
}

var (
	configFile string
	logLevel   string
	logFormat  string
)

// runtime state shared by subcommands, built in setup
var (
	appConfig  *config.Config
	appLogger  *log.Logger
	appMetrics *metrics.Metrics
	appReg     *prometheus.Registry
	cmdSpan    trace.Span
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./uiforge.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands observe for
// cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup loads configuration and builds the logger, metrics and tracer used
// by every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		if _, err := os.Stat("uiforge.yaml"); err == nil {
			path = "uiforge.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if _, err := log.ParseLevel(logLevel); err != nil {
			return err
		}
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	info := version.GetInfo()

	logCfg, err := log.FromSettings(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logCfg.Version = info.Version
	appLogger = log.New(logCfg)
	log.SetDefaultLogger(appLogger)

	appReg, appMetrics = metrics.NewRegistry()
	appConfig = cfg

	telemCfg := cfg.Telemetry
	telemCfg.ServiceVersion = info.Version
	if _, err := telemetry.InitProvider(cmd.Context(), telemCfg); err != nil {
		appLogger.Warn("Failed to initialize telemetry", "error", err)
	}

	ctx, span := telemetry.StartCommandSpan(cmd.Context(), cmd.Name())
	cmdSpan = span
	cmd.SetContext(ctx)

	return nil
}

// instrumented wraps a RunE so every command records its duration, outcome
// and span, and flushes telemetry before returning.
func instrumented(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := run(cmd, args)

		appMetrics.RecordCommand(cmd.Name(), err == nil, time.Since(start))
		if cmdSpan != nil {
			if err != nil {
				telemetry.RecordError(cmdSpan, err)
			} else {
				telemetry.RecordSuccess(cmdSpan)
			}
			cmdSpan.End()
			cmdSpan = nil
		}
		if err != nil {
			appMetrics.RecordError(err, cmd.Name())
			appLogger.Debug("Command failed", "command", cmd.Name(), "error", err)
		}

		if shutdownErr := telemetry.Shutdown(context.WithoutCancel(cmd.Context())); shutdownErr != nil {
			appLogger.Warn("Failed to flush telemetry", "error", shutdownErr)
		}
		return err
	}
}
