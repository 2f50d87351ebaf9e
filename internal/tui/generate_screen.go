package tui

import (
	"context"
	"fmt"

	"github.com/andy/invoicer/internal/app"
	"github.com/andy/invoicer/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// generate form field indices
const (
	genClientName = iota
	genClientAddress1
	genClientAddress2
	genClientEmail
	genDescription
	genRate
	genHours
	genNotes
	genDate
	genNumber
	genTemplate
	genFieldCount
)

type generateDataMsg struct {
	last    *domain.ClientData
	clients []*domain.SavedClient
}

// GenerateModel is the invoice form. Esc leaves the form so the global
// navigation keys work; enter returns to it.
type GenerateModel struct {
	app        *app.App
	form       *form
	editing    bool
	clients    []*domain.SavedClient
	clientIdx  int
	generating bool
	lastPath   string
	err        error
	statusMsg  string
}

// NewGenerateModel creates the generate screen
func NewGenerateModel(a *app.App) tea.Model {
	m := &GenerateModel{app: a, clientIdx: -1, editing: true}
	m.form = newForm(
		formField{label: "Client Name:", placeholder: "ACME Corp", width: 40},
		formField{label: "Client Address Line 1:", placeholder: "1 Main Street", width: 50},
		formField{label: "Client Address Line 2:", placeholder: "Optional", width: 50},
		formField{label: "Client Email:", placeholder: "Optional", width: 40},
		formField{label: "Service Description:", placeholder: "Professional Services", width: 50},
		formField{label: "Hourly Rate:", placeholder: "100.00", width: 15, limit: 15},
		formField{label: "Hours Worked:", placeholder: "40", width: 15, limit: 15},
		formField{label: "Notes:", placeholder: "Optional", width: 60},
		formField{label: "Invoice Date:", placeholder: "today", width: 30},
		formField{label: "Invoice Number:", placeholder: "next in sequence", width: 20},
		formField{label: "Filename Template:", placeholder: "INV_{sequence}", width: 40},
	)
	m.form.set(genDescription, a.Config.Invoice.DefaultServiceDescription)
	m.form.set(genTemplate, a.Config.Invoice.FilenameTemplate)
	return m
}

// IsCapturingInput returns true while the form has focus
func (m *GenerateModel) IsCapturingInput() bool {
	return m.editing
}

func (m *GenerateModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *GenerateModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := generateDataMsg{}
		if last, err := m.app.SettingsRepo.GetLastClient(ctx); err == nil {
			msg.last = &last
		}
		msg.clients, _ = m.app.ClientRepo.List(ctx, false)
		return msg
	}
}

func (m *GenerateModel) fillClient(c domain.ClientData) {
	filled := domain.FormFromClient(c)
	m.form.set(genClientName, filled.ClientName)
	m.form.set(genClientAddress1, filled.ClientAddressLine1)
	m.form.set(genClientAddress2, filled.ClientAddressLine2)
	m.form.set(genClientEmail, filled.ClientEmail)
}

// nextClient cycles the form through the saved clients
func (m *GenerateModel) nextClient() {
	if len(m.clients) == 0 {
		m.statusMsg = "No saved clients"
		return
	}
	m.clientIdx = (m.clientIdx + 1) % len(m.clients)
	c := m.clients[m.clientIdx]
	m.fillClient(c.ToClientData())
	if c.HourlyRate.IsPositive() {
		m.form.set(genRate, c.HourlyRate.StringFixed(2))
	}
	m.statusMsg = fmt.Sprintf("Loaded client %s", c.Name)
}

func (m *GenerateModel) buildForm() (domain.InvoiceForm, error) {
	rate, err := parseAmount("hourly rate", m.form.value(genRate))
	if err != nil {
		return domain.InvoiceForm{}, err
	}
	hours, err := parseAmount("hours worked", m.form.value(genHours))
	if err != nil {
		return domain.InvoiceForm{}, err
	}
	return domain.InvoiceForm{
		ClientName:         m.form.value(genClientName),
		ClientAddressLine1: m.form.value(genClientAddress1),
		ClientAddressLine2: m.form.value(genClientAddress2),
		ClientEmail:        m.form.value(genClientEmail),
		ServiceDescription: m.form.value(genDescription),
		HourlyRate:         rate,
		HoursWorked:        hours,
		Notes:              m.form.value(genNotes),
		InvoiceDate:        m.form.value(genDate),
		InvoiceNumber:      m.form.value(genNumber),
		FilenameTemplate:   m.form.value(genTemplate),
	}, nil
}

// generate runs prepare and render off the UI loop
func (m *GenerateModel) generate() tea.Cmd {
	f, err := m.buildForm()
	if err != nil {
		return func() tea.Msg { return invoiceGeneratedMsg{err: err} }
	}
	svc := m.app.InvoiceService
	return func() tea.Msg {
		ctx := context.Background()
		inv, path, err := svc.Prepare(ctx, f)
		if err != nil {
			return invoiceGeneratedMsg{err: err}
		}
		path, err = svc.Generate(ctx, inv, path)
		return invoiceGeneratedMsg{path: path, err: err}
	}
}

func (m *GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDataMsg:
		m.clients = msg.clients
		if msg.last != nil && m.form.value(genClientName) == "" {
			m.fillClient(*msg.last)
		}
		return m, nil

	case RefreshDataMsg:
		return m, m.loadData()

	case invoiceGeneratedMsg:
		m.generating = false
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = ""
			return m, nil
		}
		m.err = nil
		m.lastPath = msg.path
		m.statusMsg = "Invoice saved to " + msg.path
		// Number is assigned fresh for the next invoice
		m.form.set(genNumber, "")
		if m.app.Config.Invoice.OpenAfterGenerate {
			return m, openFile(m.app, msg.path)
		}
		return m, nil

	case fileOpenedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.generating {
			return m, nil
		}
		if !m.editing {
			return m.updateBrowse(msg)
		}
		switch msg.String() {
		case "ctrl+n":
			m.nextClient()
			return m, nil
		case "ctrl+o":
			if m.lastPath != "" {
				return m, openFile(m.app, m.lastPath)
			}
			return m, nil
		}
		if key.Matches(msg, DefaultKeyMap.Back) {
			m.editing = false
			m.form.inputs[m.form.focus].Blur()
			return m, nil
		}
	}

	if !m.editing {
		return m, nil
	}
	cmd, submit := m.form.update(msg)
	if submit {
		m.generating = true
		m.err = nil
		m.statusMsg = "Generating..."
		return m, m.generate()
	}
	return m, cmd
}

func (m *GenerateModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
		m.editing = true
		m.err = nil
		return m, m.form.inputs[m.form.focus].Focus()
	case key.Matches(msg, DefaultKeyMap.New):
		m.nextClient()
	case key.Matches(msg, DefaultKeyMap.Open):
		if m.lastPath != "" {
			return m, openFile(m.app, m.lastPath)
		}
	}
	return m, nil
}

func (m *GenerateModel) View() string {
	s := titleStyle.Render("New Invoice") + "\n\n"
	s += m.form.view() + "\n"

	if rate, err := parseAmount("", m.form.value(genRate)); err == nil {
		if hours, err := parseAmount("", m.form.value(genHours)); err == nil {
			s += "  Total: " + amountStyle.Render(formatMoney(rate.Mul(hours))) + "\n\n"
		}
	}

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	} else if m.statusMsg != "" {
		s += successStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	if m.editing {
		s += helpStyle.Render("  tab: next field  ctrl+s: generate  ctrl+n: next saved client  ctrl+o: open last PDF  esc: leave form")
	} else {
		s += helpStyle.Render("  enter: edit form  n: next saved client  o: open last PDF")
	}
	return s
}

// openFile launches the OS viewer for path
func openFile(a *app.App, path string) tea.Cmd {
	return func() tea.Msg {
		return fileOpenedMsg{path: path, err: a.Viewer.OpenFile(path)}
	}
}
