package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

// newTransactionCmd builds the deposit and withdraw commands.
func newTransactionCmd(rc *rootConfig, use string) *cobra.Command {
	txType := models.Deposit
	if use == "withdraw" {
		txType = models.Withdrawal
	}

	var date, note string
	cmd := &cobra.Command{
		Use:   use + " <amount>",
		Short: fmt.Sprintf("Record a %s", txType),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}

			a, err := rc.open()
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.Journal.CreateTransaction(cmd.Context(), journal.TransactionRequest{
				Date:   date,
				Type:   string(txType),
				Amount: decimal.NewNullDecimal(amount),
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s #%d of %s\n", tx.Type, tx.ID, tx.Amount.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "transaction date")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	return cmd
}
