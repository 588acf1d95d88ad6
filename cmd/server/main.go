package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"trade-journal-go/internal/api"
	"trade-journal-go/internal/app"
)

func main() {
	a, err := app.New("./configs")
	if err != nil {
		// the logger may not exist yet
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	server := api.NewServer(&a.Config.Server, a.Journal, a.Logger)
	server.Start()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	<-sigchan
	a.Logger.Info("Shutdown signal received, gracefully shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		a.Logger.Error("Server shutdown failed", zap.Error(err))
	}
	a.Logger.Info("Server has been shut down.")
}
