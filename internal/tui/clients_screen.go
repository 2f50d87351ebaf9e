package tui

import (
	"context"
	"fmt"

	"github.com/andy/invoicer/internal/app"
	"github.com/andy/invoicer/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	fieldName = iota
	fieldAddress1
	fieldAddress2
	fieldEmail
	fieldRate
	fieldCount
)

// ClientsModel displays a navigable list of saved clients with create/edit forms
type ClientsModel struct {
	app          *app.App
	clients      []*domain.SavedClient
	cursor       int
	showArchived bool
	invoiced     map[string]*clientTotals
	loading      bool
	err          error
	statusMsg    string

	// Form state
	mode      clientMode
	form      *form
	editingID int64 // 0 for new client
}

// clientTotals summarizes generated invoices per client name
type clientTotals struct {
	count int
	total decimal.Decimal
}

type clientsDataMsg struct {
	clients  []*domain.SavedClient
	invoiced map[string]*clientTotals
	err      error
}

type clientSavedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:      a,
		invoiced: make(map[string]*clientTotals),
		loading:  true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	showArchived := m.showArchived
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientRepo.List(ctx, showArchived)
		if err != nil {
			return clientsDataMsg{err: err}
		}

		invoiced := make(map[string]*clientTotals)
		history, err := m.app.InvoiceService.History(ctx, 0)
		if err == nil {
			for _, inv := range history {
				t := invoiced[inv.ClientName]
				if t == nil {
					t = &clientTotals{}
					invoiced[inv.ClientName] = t
				}
				t.count++
				t.total = t.total.Add(inv.Total)
			}
		}

		return clientsDataMsg{clients: clients, invoiced: invoiced}
	}
}

func (m *ClientsModel) initForm(editing *domain.SavedClient) {
	m.form = newForm(
		formField{label: "Name:", placeholder: "Client name", width: 40, limit: 100},
		formField{label: "Address Line 1:", placeholder: "1 Main Street", width: 50},
		formField{label: "Address Line 2:", placeholder: "Optional", width: 50},
		formField{label: "Email:", placeholder: "email@example.com", width: 40, limit: 100},
		formField{label: "Default Rate ($/hr):", placeholder: "150.00", width: 15, limit: 15},
	)

	if editing != nil {
		m.form.set(fieldName, editing.Name)
		m.form.set(fieldAddress1, editing.AddressLine1)
		m.form.set(fieldAddress2, editing.AddressLine2)
		m.form.set(fieldEmail, editing.Email)
		m.form.set(fieldRate, editing.HourlyRate.StringFixed(2))
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}
}

func (m *ClientsModel) saveClient() tea.Cmd {
	name := m.form.value(fieldName)
	address1 := m.form.value(fieldAddress1)
	address2 := m.form.value(fieldAddress2)
	email := m.form.value(fieldEmail)
	rateStr := m.form.value(fieldRate)
	editingID := m.editingID

	return func() tea.Msg {
		ctx := context.Background()

		rate, err := parseAmount("rate", rateStr)
		if err != nil {
			return clientSavedMsg{err: err}
		}

		if editingID > 0 {
			client, err := m.app.ClientRepo.GetByID(ctx, editingID)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			client.Name = name
			client.AddressLine1 = address1
			client.AddressLine2 = address2
			client.Email = email
			client.HourlyRate = rate

			if err := m.app.ClientRepo.Update(ctx, client); err != nil {
				return clientSavedMsg{err: err}
			}
			return clientSavedMsg{name: name}
		}

		client := domain.NewSavedClient(name, address1, rate)
		client.AddressLine2 = address2
		client.Email = email

		if err := m.app.ClientRepo.Create(ctx, client); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: name}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.invoiced = msg.invoiced
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
			}
		case key.Matches(msg, DefaultKeyMap.Archive):
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				return m, m.toggleArchive(m.clients[m.cursor])
			}
		case key.Matches(msg, DefaultKeyMap.Toggle):
			m.showArchived = !m.showArchived
			m.cursor = 0
			m.loading = true
			return m, m.loadClients()
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.mode = clientModeList
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if submit {
		return m, m.saveClient()
	}
	return m, cmd
}

func (m *ClientsModel) toggleArchive(client *domain.SavedClient) tea.Cmd {
	reload := m.loadClients()
	return func() tea.Msg {
		ctx := context.Background()

		var err error
		if client.IsArchived {
			err = m.app.ClientRepo.Unarchive(ctx, client.ID)
		} else {
			err = m.app.ClientRepo.Archive(ctx, client.ID)
		}
		if err != nil {
			return clientsDataMsg{err: err}
		}

		return reload()
	}
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		s += titleStyle.Render("New Client") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	s += m.form.view() + "\n"

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	header := "Clients"
	if m.showArchived {
		header += subtitleStyle.Render("  (showing archived)")
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.statusMsg != "" {
		s += successStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		s += subtitleStyle.Render("  Press 'a' to toggle archived clients") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: archive/unarchive  a: toggle archived")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.SavedClient) string {
	selected := index == m.cursor

	name := client.Name
	if client.IsArchived {
		name += " (archived)"
	}

	invoiced := "No invoices yet"
	if t := m.invoiced[client.Name]; t != nil {
		invoiced = fmt.Sprintf("Invoiced: %d  %s", t.count, formatMoney(t.total))
	}

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, name)
	line2 := fmt.Sprintf("    Rate: %s/hr  |  %s", formatMoney(client.HourlyRate), invoiced)
	line3 := "    " + truncateStr(client.AddressLine1, 50)
	if client.Email != "" {
		line3 += "  " + client.Email
	}

	nameStyle := lipgloss.NewStyle()
	detailStyle := subtitleStyle
	if client.IsArchived {
		nameStyle = nameStyle.Foreground(mutedColor)
		detailStyle = lipgloss.NewStyle().Foreground(mutedColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + detailStyle.Render(line2) + "\n" + detailStyle.Render(line3)
}
