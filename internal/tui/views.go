package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ymykhal/pocket/internal/aggregate"
	"github.com/ymykhal/pocket/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#74A0F2")).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2).
			MarginRight(1)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	incomeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	expenseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	balanceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74A0F2"))

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74A0F2"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3"))
)

// chartBarWidth is the widest a breakdown bar can grow.
const chartBarWidth = 30

// reloadRows rebuilds the transaction table from a fresh ledger snapshot,
// most recent first. ids stays aligned with the table rows so the cursor can
// be mapped back to a transaction.
func (m *Model) reloadRows() {
	transactions := m.store.Transactions()
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date > transactions[j].Date
	})

	rows := make([]table.Row, 0, len(transactions))
	ids := make([]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, table.Row{
			t.Date,
			t.Description,
			fmt.Sprintf("%+.2f", t.SignedAmount()),
			t.Category,
		})
		ids = append(ids, t.ID)
	}
	m.table.SetRows(rows)
	m.ids = ids
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// rowID maps a table cursor position back to a transaction id.
func (m Model) rowID(cursor int) string {
	if cursor < 0 || cursor >= len(m.ids) {
		return ""
	}
	return m.ids[cursor]
}

// View implements tea.Model.
func (m Model) View() string {
	transactions := m.store.Transactions()

	sections := []string{
		titleStyle.Render("👛 pocket"),
		m.renderSummary(transactions),
		m.renderChart(transactions),
		m.table.View(),
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSummary shows the three totals cards.
func (m Model) renderSummary(transactions []model.Transaction) string {
	summary := aggregate.Summarize(transactions)

	card := func(label string, value string) string {
		return cardStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			cardLabelStyle.Render(label),
			value,
		))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		card("Total Income", incomeStyle.Render(fmt.Sprintf("%.2f", summary.TotalIncome))),
		card("Total Expenses", expenseStyle.Render(fmt.Sprintf("%.2f", summary.TotalExpenses))),
		card("Balance", balanceStyle.Render(fmt.Sprintf("%+.2f", summary.Balance()))),
	)
}

// renderChart shows the active spending breakdown.
func (m Model) renderChart(transactions []model.Transaction) string {
	var title string
	var entries []barEntry

	switch m.chartView {
	case ChartByCategory:
		title = "Spending by Category"
		byCategory := aggregate.ByCategory(transactions, model.TypeExpense)
		for name, sum := range byCategory {
			entries = append(entries, barEntry{label: name, value: sum})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].value != entries[j].value {
				return entries[i].value > entries[j].value
			}
			return entries[i].label < entries[j].label
		})
	case ChartByMonth:
		title = "Spending by Month"
		for _, month := range aggregate.ByMonth(transactions, model.TypeExpense) {
			entries = append(entries, barEntry{label: month.Label(), value: month.Sum})
		}
	}

	if len(entries) == 0 {
		return titleStyle.UnsetMarginBottom().Render(title) + "\n" +
			emptyStyle.Render("No expense data. Add some expense transactions to see spending analysis.")
	}

	return titleStyle.UnsetMarginBottom().Render(title) + "\n" + renderBars(entries, chartBarWidth)
}

type barEntry struct {
	label string
	value float64
}

// renderBars draws horizontal bars scaled so the largest value fills width
// cells. Every non-zero value gets at least one cell.
func renderBars(entries []barEntry, width int) string {
	var max float64
	for _, e := range entries {
		if e.value > max {
			max = e.value
		}
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		cells := 0
		if max > 0 && e.value > 0 {
			cells = int(e.value / max * float64(width))
			if cells < 1 {
				cells = 1
			}
		}
		fmt.Fprintf(&b, "%-15s %s %.2f",
			e.label,
			barStyle.Render(strings.Repeat("█", cells)),
			e.value)
	}
	return b.String()
}
