package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ymykhal/pocket/internal/cli"
	"github.com/ymykhal/pocket/internal/ledger"
	"github.com/ymykhal/pocket/internal/model"
	"github.com/ymykhal/pocket/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import a single file
  pocket import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import everything in a directory
  pocket import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Existing entries count toward deduplication so re-importing the same
	// statement is safe.
	seen := make(map[string]bool)
	for _, t := range store.Transactions() {
		seen[importKey(t)] = true
	}

	parser := ofx.NewParser()
	var parsed []model.Transaction
	duplicates := 0

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		for _, t := range transactions {
			key := importKey(t)
			if seen[key] {
				duplicates++
				continue
			}
			seen[key] = true
			parsed = append(parsed, t)
		}
	}

	if len(parsed) == 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("No new transactions to import (%d duplicates skipped).", duplicates)))
		return nil
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: would import %d transactions (%d duplicates skipped):", len(parsed), duplicates)))
		for _, t := range parsed {
			fmt.Printf("  %s  %-30s  %+.2f\n", t.Date, t.Description, t.SignedAmount())
		}
		return nil
	}

	bar := progressbar.Default(int64(len(parsed)), "importing")
	added := 0
	for _, t := range parsed {
		_, err := store.Add(ctx, ledger.NewTransaction{
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    t.Category,
		})
		if err != nil {
			slog.Warn("Skipping transaction that failed validation",
				"date", t.Date,
				"description", t.Description,
				"error", err)
			continue
		}
		added++
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d duplicates skipped).", added, duplicates)))
	return nil
}

// importKey identifies a statement entry for deduplication. The ledger
// assigns fresh ids on every add, so identity has to come from the visible
// fields instead.
func importKey(t model.Transaction) string {
	return fmt.Sprintf("%s|%.2f|%s|%s", t.Date, t.Amount, t.Type, t.Description)
}
