package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"satscan/internal/httpapi"
	"satscan/internal/scene"
	"satscan/internal/telemetry"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		addr        string
		corsOrigins string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scene loop and the HTTP control API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if origins := splitCSV(corsOrigins); len(origins) > 0 {
				cfg.CORS.Enabled = true
				cfg.CORS.Origins = origins
			}
			log := newLogger(stderr(), cfg.LogLevel, cfg.LogJSON)
			installLogger(log)
			httpapi.SetDefaultLogLevel(cfg.LogLevel)
			httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownTracing, err := telemetry.Setup(ctx, "satscan", cfg.OTLPEndpoint)
			if err != nil {
				return err
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracing(flushCtx); err != nil {
					log.Warn().Err(err).Msg("trace flush failed")
				}
			}()

			mgr, err := scene.NewManager(cfg.Scene, scene.Options{Tick: cfg.Tick()})
			if err != nil {
				return err
			}
			defer mgr.Close()

			srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(mgr), ReadHeaderTimeout: 5 * time.Second}
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Str("scene", cfg.Scene.Name).Msg("satscan listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()
			go func() { _ = mgr.Run(ctx) }()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					stop()
					return err
				}
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults SATSCAN_ADDR or config)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated CORS origins; enables CORS when set")
	return cmd
}
