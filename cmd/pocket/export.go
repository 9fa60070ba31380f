package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ymykhal/pocket/internal/cli"
	"github.com/ymykhal/pocket/internal/export"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all transactions to CSV",
		Long: `Write the full ledger to a CSV file, most recent transaction first.

When the ledger is empty no file is produced.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			path := output
			if path == "" {
				path = export.Filename(time.Now())
			}

			if err := export.WriteFile(path, store.Transactions()); err != nil {
				if errors.Is(err, export.ErrNoTransactions) {
					fmt.Println(cli.FormatWarning("Nothing to export: the ledger is empty."))
					return nil
				}
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", store.Len(), path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: transactions_<date>.csv)")

	return cmd
}
