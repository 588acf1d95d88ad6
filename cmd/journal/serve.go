package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trade-journal-go/internal/api"
)

func newServeCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(&a.Config.Server, a.Journal, a.Logger)
			server.Start()
			<-ctx.Done()

			shutdown, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
			defer cancel()
			return server.Stop(shutdown)
		},
	}
}
