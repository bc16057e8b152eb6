package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/config"
	"github.com/helmcode/seo-ai/pkg/server"
	"github.com/helmcode/seo-ai/pkg/session"
)

const shutdownTimeout = 5 * time.Second

func NewServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		Long: `Start the HTTP API behind the SEO dashboard.

Routes:
  GET  /healthz
  POST /api/analyze                    {"url": "..."}
  POST /api/recommendations            {"url": "...", "issues": [...]}
  POST /api/sessions
  GET  /api/sessions/{id}
  POST /api/sessions/{id}/analyze      {"url": "..."}
  POST /api/sessions/{id}/reset
  POST /api/sessions/{id}/upgrade
  GET  /api/sessions/{id}/dashboard
  GET  /api/sessions/{id}/watch        (websocket)

Configuration is read from the environment and an optional .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen address (overrides PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, port string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Port = config.NormalizePort(port)
	}

	fetcher, err := newFetcher(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if !fetcher.Configured() {
		log.Printf("Warning: no API key configured for %s; recommendations will return a configuration notice", cfg.LLMProvider)
	}

	a := analyzer.New(analyzer.WithDelay(cfg.AnalysisDelay))
	sessions, err := session.NewManager(a, fetcher, cfg.SessionCapacity,
		session.WithAnalysisTimeout(cfg.AnalysisTimeout))
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	defer sessions.Close()

	h := server.NewHandler(a, fetcher, sessions, cfg.AnalysisTimeout)
	srv := server.New(cfg.Port, server.NewMux(h, cfg.RateLimitRPS, cfg.RateLimitBurst))

	log.Printf("Starting API server on %s (provider %s)", srv.Addr(), cfg.LLMProvider)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exiting")
	return nil
}
