package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTradesCmd(rc *rootConfig) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List recent trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open()
			if err != nil {
				return err
			}
			defer a.Close()

			trades, err := a.Journal.ListTrades(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(trades) > limit {
				trades = trades[:limit]
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTrades(trades))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of trades to show, 0 for all")
	return cmd
}
