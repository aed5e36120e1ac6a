package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	handler "github.com/XiaoChennnng/Deadliner-Client/internal/handler/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local storage API for the desktop UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		router := handler.NewHandler(a.service, a.logger).Init()
		server := &http.Server{
			Addr:         a.cfg.HTTP.Address,
			Handler:      router,
			ReadTimeout:  a.cfg.HTTP.RequestTimeout,
			WriteTimeout: a.cfg.HTTP.RequestTimeout,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info().Str("address", server.Addr).Msg("local API listening")
			errCh <- server.ListenAndServe()
		}()

		select {
		case err = <-errCh:
			return err
		case <-ctx.Done():
		}

		a.logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err = server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
