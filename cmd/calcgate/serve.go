package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/calcgate/internal/cli"
	httpAdapter "github.com/aretw0/calcgate/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts calcgate in server mode, exposing POST /calculate, /history, /metrics and the optional static frontend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("static") {
			cfg.StaticDir, _ = cmd.Flags().GetString("static")
		}

		app, err := cli.Build(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		logger := app.Logger

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(app.Metrics.Handler()),
			httpAdapter.WithStaticDir(cfg.StaticDir),
		}
		if app.Journal != nil {
			opts = append(opts, httpAdapter.WithJournal(app.Journal))
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: httpAdapter.NewHandler(app.Calculator, opts...),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Server running", "address", srv.Addr, "evaluator", cfg.Evaluator.Kind, "command", cfg.Evaluator.Command)
			fmt.Printf("Open: http://localhost:%d\n", cfg.Port)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 3000, "Port to listen on")
	serveCmd.Flags().String("static", "", "Directory served at / (e.g. ./frontend)")
}
