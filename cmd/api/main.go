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

	"backend/internal/config"
	"backend/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	debug bool
	port  int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Contact manager HTTP backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, opts)
		},
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", true, "run in debug mode (overrides DEBUG)")
	root.PersistentFlags().IntVar(&opts.port, "port", 0, "listen port (overrides PORT)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, opts)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Migrate()
		},
	})

	return root
}

// newApp loads the environment config and applies command line overrides.
// Running the binary directly defaults to debug mode unless DEBUG is set.
func newApp(cmd *cobra.Command, opts *options) (*server.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if _, set := os.LookupEnv("DEBUG"); !set || cmd.Flags().Changed("debug") {
		cfg.Debug = opts.debug
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = opts.port
	}

	return server.NewApp(cfg)
}

func serve(cmd *cobra.Command, opts *options) error {
	app, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Migrate(); err != nil {
		return err
	}

	srv := server.NewServer(app)
	log := app.Log

	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("http server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case <-quit:
	}

	log.Info("Shutting down server gracefully ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server Shutdown")
	}
	log.Info("Server exiting")
	return nil
}
