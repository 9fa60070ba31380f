// Package tui implements the interactive dashboard. It is a pure consumer of
// the ledger: it reads snapshots and aggregation results, and routes every
// mutation back through the ledger store.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ymykhal/pocket/internal/ledger"
)

// ChartView selects which spending breakdown the chart pane shows.
type ChartView int

const (
	// ChartByCategory shows expense totals grouped by category.
	ChartByCategory ChartView = iota
	// ChartByMonth shows expense totals grouped by calendar month.
	ChartByMonth
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	store     *ledger.Store
	table     table.Model
	help      help.Model
	keys      KeyMap
	chartView ChartView
	ids       []string
	status    string
	width     int
	height    int
}

// New creates a dashboard over the given ledger store.
func New(store *ledger.Store) Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Description", Width: 30},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 15},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	m := Model{
		store:     store,
		table:     t,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		chartView: ChartByCategory,
	}
	m.reloadRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.ToggleChart):
			if m.chartView == ChartByCategory {
				m.chartView = ChartByMonth
			} else {
				m.chartView = ChartByCategory
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			return m.deleteSelected(), nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the highlighted transaction through the ledger
// store and refreshes the view.
func (m Model) deleteSelected() Model {
	row := m.table.SelectedRow()
	if row == nil {
		return m
	}
	id := m.rowID(m.table.Cursor())
	if id == "" {
		return m
	}

	if err := m.store.Remove(context.Background(), id); err != nil {
		m.status = "delete failed: " + err.Error()
		return m
	}
	m.status = fmt.Sprintf("deleted %q", row[1])
	m.reloadRows()
	return m
}
