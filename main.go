package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/elibrary/config"
	"github.com/haguru/elibrary/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := config.CONFIG_PATH
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	// create and initialize the app
	application, err := app.NewApp(ctx, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	select {
	case err = <-errCh:
		if err != nil {
			application.Logger.Error("server stopped", "error", err)
		}
	case <-ctx.Done():
		application.Logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), application.Config.ShutdownTimeout)
	defer cancel()
	if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil {
		application.Logger.Error("shutdown failed", "error", shutdownErr)
		err = shutdownErr
	}

	if err != nil {
		os.Exit(1)
	}
}
