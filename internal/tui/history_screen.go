package tui

import (
	"context"
	"fmt"

	"github.com/andy/invoicer/internal/app"
	"github.com/andy/invoicer/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historyLimit = 100

type historyDataMsg struct {
	invoices []*domain.GeneratedInvoice
	err      error
}

// HistoryModel lists generated invoices and opens them in the system viewer
type HistoryModel struct {
	app       *app.App
	invoices  []*domain.GeneratedInvoice
	cursor    int
	loading   bool
	err       error
	statusMsg string
}

// NewHistoryModel creates the history screen
func NewHistoryModel(a *app.App) tea.Model {
	return &HistoryModel{app: a, loading: true}
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.loadHistory()
}

func (m *HistoryModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.app.InvoiceService.History(context.Background(), historyLimit)
		return historyDataMsg{invoices: invoices, err: err}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadHistory()

	case historyDataMsg:
		m.loading = false
		m.err = msg.err
		m.invoices = msg.invoices
		if m.cursor >= len(m.invoices) {
			m.cursor = max(0, len(m.invoices)-1)
		}
		return m, nil

	case fileOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.statusMsg = "Opened " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.err = nil
		m.statusMsg = ""

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Open):
			if m.cursor < len(m.invoices) {
				return m, openFile(m.app, m.invoices[m.cursor].FilePath)
			}
		}
	}
	return m, nil
}

func (m *HistoryModel) View() string {
	if m.loading {
		return "Loading history..."
	}

	s := titleStyle.Render("Generated Invoices") + "\n\n"

	if m.statusMsg != "" {
		s += successStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No invoices generated yet. Press 'g' to create one.") + "\n"
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %-10s %-18s %-25s %12s", "Number", "Date", "Client", "Total")) + "\n"
	for i, inv := range m.invoices {
		row := fmt.Sprintf("  %-10s %-18s %-25s %12s",
			truncateStr(inv.InvoiceNumber, 10),
			truncateStr(inv.InvoiceDate, 18),
			truncateStr(inv.ClientName, 25),
			formatMoney(inv.Total),
		)
		if i == m.cursor {
			row = selectedStyle.Render(row)
		}
		s += row + "\n"
	}

	if m.cursor < len(m.invoices) {
		s += "\n" + lipgloss.NewStyle().Foreground(mutedColor).Render("  "+m.invoices[m.cursor].FilePath) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter/o: open PDF")
	return s
}
