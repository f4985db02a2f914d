package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/felixgeelhaar/uiforge/internal/health"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/server"
	"github.com/felixgeelhaar/uiforge/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agent over HTTP",
	Long: `Start an HTTP server exposing the generation step.

Endpoints:
  POST /api/agent     - run one step: {mode, message, currentPlan?}
  GET  /openapi.json  - OpenAPI 3 description of the API
  GET  /healthz       - readiness (includes an oracle reachability check)
  GET  /health/ready  - readiness
  GET  /health/live   - liveness
  GET  /metrics       - Prometheus metrics

The server drains connections on SIGTERM or SIGINT.

Example:
  uiforge serve --address 0.0.0.0:8080`,
	Args: cobra.NoArgs,
	RunE: instrumented(runServe),
}

var (
	serveAddress         string
	serveShutdownTimeout time.Duration
	serveWriteTimeout    time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "address to bind to (default from config)")
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 0, "maximum time to drain connections (default from config)")
	serveCmd.Flags().DurationVar(&serveWriteTimeout, "write-timeout", 5*time.Minute, "maximum time to answer one request")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	info := version.GetInfo()

	addr := appConfig.Server.Address
	if serveAddress != "" {
		addr = serveAddress
	}
	shutdownTimeout := appConfig.Server.ShutdownTimeout
	if serveShutdownTimeout > 0 {
		shutdownTimeout = serveShutdownTimeout
	}

	agent, err := newAgent()
	if err != nil {
		return err
	}

	pm := health.NewProbeManager(info.Version)
	pm.AddChecker(health.NewOracleChecker(
		oracle.DisplayName(appConfig.Oracle.Provider),
		oracle.Endpoint(appConfig.Oracle),
		&http.Client{Timeout: 3 * time.Second},
	))

	router, err := server.NewRouter(agent, server.Options{
		Logger:   appLogger,
		Metrics:  appMetrics,
		Gatherer: appReg,
		Probes:   pm,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	var handler http.Handler = router
	if appConfig.Telemetry.Enabled {
		handler = otelhttp.NewHandler(router, "uiforge-api")
	}

	srv := server.NewServer(handler, pm, server.Config{
		Address:         addr,
		ShutdownTimeout: shutdownTimeout,
		WriteTimeout:    serveWriteTimeout,
	})

	appLogger.Info("Server listening",
		"address", addr,
		"version", info.Version,
		"provider", appConfig.Oracle.Provider,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "uiforge %s listening on http://%s (Ctrl+C to stop)\n", info.Short(), addr)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	appLogger.Info("Server stopped")
	return nil
}
