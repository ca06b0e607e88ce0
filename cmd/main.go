package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yungbote/shortsview-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			a.Log.Error("Server failed", "error", err)
			exitCode = 1
		}
	case <-ctx.Done():
		a.Log.Info("Shutdown signal received")
	}

	deadline := a.Cfg.ShutdownDeadline
	if deadline <= 0 {
		deadline = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		a.Log.Error("Shutdown incomplete", "error", err)
		exitCode = 1
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
