package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ymykhal/pocket/internal/cli"
)

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a transaction by id",
		Long: `Remove a transaction from the ledger.

Removing an id that does not exist is not an error; the ledger is simply
left unchanged. Use 'pocket list' to find transaction ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			store, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			before := store.Len()
			if err := store.Remove(ctx, id); err != nil {
				return fmt.Errorf("failed to remove transaction: %w", err)
			}

			if store.Len() == before {
				fmt.Println(cli.FormatWarning("No transaction with id " + id))
				return nil
			}
			fmt.Println(cli.FormatSuccess("Removed transaction " + id))
			return nil
		},
	}
}
