package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trade-journal-go/internal/app"
)

type rootConfig struct {
	configPath string
}

func (rc *rootConfig) open() (*app.App, error) {
	return app.New(rc.configPath)
}

func newRootCmd() *cobra.Command {
	rc := &rootConfig{}
	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Trading journal: record trades, track equity, review statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&rc.configPath, "config", "./configs", "directory containing config.yml")

	cmd.AddCommand(
		newServeCmd(rc),
		newStatsCmd(rc),
		newTradesCmd(rc),
		newExportCmd(rc),
		newTransactionCmd(rc, "deposit"),
		newTransactionCmd(rc, "withdraw"),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
