package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ymykhal/pocket/internal/cli"
	"github.com/ymykhal/pocket/internal/model"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all transactions",
		Long:  `Display all recorded transactions, most recent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			transactions := store.Transactions()
			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'pocket add' to record one."))
				return nil
			}

			// The ledger itself is unordered; ordering is a view concern.
			sort.SliceStable(transactions, func(i, j int) bool {
				return transactions[i].Date > transactions[j].Date
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Date"),
				headerStyle.Render("Description"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Category"),
				headerStyle.Render("ID"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 30),
				strings.Repeat("-", 10),
				strings.Repeat("-", 15),
				strings.Repeat("-", 36))

			for _, t := range transactions {
				amount := fmt.Sprintf("%+.2f", t.SignedAmount())
				if t.Type == model.TypeIncome {
					amount = cli.IncomeStyle.Render(amount)
				} else {
					amount = cli.ExpenseStyle.Render(amount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.Date, t.Description, amount, t.Category,
					cli.SubtleStyle.Render(t.ID))
			}

			return nil
		},
	}
}
