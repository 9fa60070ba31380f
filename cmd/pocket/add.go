package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ymykhal/pocket/internal/cli"
	"github.com/ymykhal/pocket/internal/ledger"
	"github.com/ymykhal/pocket/internal/model"
)

func addCmd() *cobra.Command {
	var (
		date     string
		amount   float64
		typeName string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Record a new transaction",
		Long: `Record a new income or expense transaction.

Examples:
  # An expense in the default category
  pocket add --amount 4.50 coffee

  # Categorized income on a specific date
  pocket add --amount 2500 --type income --category Salary --date 2024-03-01 "March salary"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return model.ErrEmptyDescription
			}

			store, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			txn, err := store.Add(ctx, ledger.NewTransaction{
				Date:        date,
				Description: description,
				Amount:      amount,
				Type:        model.TransactionType(typeName),
				Category:    category,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %.2f (%s) on %s",
				txn.Type, txn.Amount, txn.Category, txn.Date)))
			fmt.Println(cli.SubtleStyle.Render("id: " + txn.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(model.DateLayout), "transaction date (YYYY-MM-DD)")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount as a non-negative magnitude")
	cmd.Flags().StringVarP(&typeName, "type", "t", string(model.TypeExpense), "transaction type (income, expense)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default: "+model.DefaultCategory+")")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
