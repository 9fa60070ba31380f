package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ymykhal/pocket/internal/aggregate"
	"github.com/ymykhal/pocket/internal/cli"
	"github.com/ymykhal/pocket/internal/model"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals and spending breakdowns",
		Long:  `Display income/expense totals, the running balance, and expense breakdowns by category and by month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, db, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			transactions := store.Transactions()
			summary := aggregate.Summarize(transactions)

			totals := fmt.Sprintf("%s  %s\n%s  %s\n%s  %s",
				"Total Income:  ", cli.IncomeStyle.Render(fmt.Sprintf("%.2f", summary.TotalIncome)),
				"Total Expenses:", cli.ExpenseStyle.Render(fmt.Sprintf("%.2f", summary.TotalExpenses)),
				"Balance:       ", fmt.Sprintf("%+.2f", summary.Balance()))
			fmt.Println(cli.RenderBox("Summary", totals))

			byCategory := aggregate.ByCategory(transactions, model.TypeExpense)
			byMonth := aggregate.ByMonth(transactions, model.TypeExpense)
			if len(byCategory) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No expense data yet."))
				return nil
			}

			// Map order is unspecified; sort by amount for display.
			categories := make([]string, 0, len(byCategory))
			for name := range byCategory {
				categories = append(categories, name)
			}
			sort.Slice(categories, func(i, j int) bool {
				if byCategory[categories[i]] != byCategory[categories[j]] {
					return byCategory[categories[i]] > byCategory[categories[j]]
				}
				return categories[i] < categories[j]
			})

			var b strings.Builder
			for i, name := range categories {
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "%-20s %10.2f", name, byCategory[name])
			}
			fmt.Println(cli.RenderBox("Spending by Category", b.String()))

			b.Reset()
			for i, month := range byMonth {
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "%-20s %10.2f", month.Label(), month.Sum)
			}
			fmt.Println(cli.RenderBox("Spending by Month", b.String()))

			return nil
		},
	}
}
