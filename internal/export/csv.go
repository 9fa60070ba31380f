// Package export renders a transaction collection as a CSV blob suitable for
// handing to a spreadsheet. It touches neither storage nor the terminal; the
// caller decides where the text goes.
package export

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ymykhal/pocket/internal/model"
)

// ErrNoTransactions is returned when there is nothing to export. Callers must
// check for it before producing a file; a header-only CSV is never emitted.
var ErrNoTransactions = errors.New("no transactions to export")

// Header is the fixed column row. Column names and order are a compatibility
// contract with downstream consumers of exported files.
const Header = "Date,Description,Amount,Type,Category"

// CSV formats the collection as comma-delimited UTF-8 text, most recent date
// first. The input is sorted on a copy; the caller's slice is left untouched.
//
// Only the description field is quote-escaped. Category is emitted verbatim,
// matching the legacy export format byte for byte (see the known-limitations
// note in DESIGN.md).
func CSV(transactions []model.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", ErrNoTransactions
	}

	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	// ISO dates compare lexicographically in chronological order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	var b strings.Builder
	b.WriteString(Header)
	for _, t := range sorted {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s,%s,%.2f,%s,%s",
			t.Date,
			quoteField(t.Description),
			t.Amount,
			t.Type,
			t.Category,
		)
	}
	return b.String(), nil
}

// quoteField wraps a field in double quotes, doubling any embedded quotes per
// standard CSV escaping.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename returns the default export filename for the given moment,
// e.g. transactions_2024-03-15.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", now.Format(model.DateLayout))
}

// WriteFile formats the collection and writes it to path. The file is only
// created when there is something to export.
func WriteFile(path string, transactions []model.Transaction) error {
	content, err := CSV(transactions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
