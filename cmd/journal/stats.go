package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Journal.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			return nil
		},
	}
}
