package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/invoicer/internal/app"
	"github.com/andy/invoicer/internal/domain"
	"github.com/andy/invoicer/internal/render"
	"github.com/andy/invoicer/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	setAccountName = iota
	setBankName
	setBankAddress
	setAccountType
	setAccountNumber
	setWireRouting
	setSwiftCode
	setAddressLine1
	setAddressLine2
	setCity
	setState
	setZip
	setSequence
	settingsFieldCount
)

type settingsDataMsg struct {
	bank     *domain.BankData
	address  *domain.AddressData
	sequence int
	err      error
}

type settingsSavedMsg struct {
	err error
}

// SettingsModel shows and edits the saved bank details, beneficiary address and numbering
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	form      *form
	bank      *domain.BankData
	address   *domain.AddressData
	sequence  int
	err       error
	statusMsg string
	openForm  bool // open the form once data has loaded
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.loadSettings()
}

func (m *SettingsModel) loadSettings() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := settingsDataMsg{}

		bank, err := m.app.SettingsRepo.GetBank(ctx)
		switch {
		case err == nil:
			msg.bank = &bank
		case !errors.Is(err, repository.ErrSettingNotFound):
			msg.err = err
		}

		addr, err := m.app.SettingsRepo.GetAddress(ctx)
		switch {
		case err == nil:
			msg.address = &addr
		case !errors.Is(err, repository.ErrSettingNotFound):
			msg.err = err
		}

		msg.sequence, err = m.app.SettingsRepo.GetSequence(ctx)
		if err != nil {
			msg.err = err
		}
		return msg
	}
}

func (m *SettingsModel) initForm() {
	m.form = newForm(
		formField{label: "Beneficiary/Account Name:", width: 40},
		formField{label: "Bank Name:", width: 40},
		formField{label: "Bank Address:", width: 60},
		formField{label: "Account Type:", placeholder: "Checking", width: 20},
		formField{label: "Account Number:", width: 30},
		formField{label: "Wire Routing:", width: 30},
		formField{label: "SWIFT Code:", width: 20},
		formField{label: "Address Line 1:", width: 50},
		formField{label: "Address Line 2:", placeholder: "Optional", width: 50},
		formField{label: "City:", width: 30},
		formField{label: "State:", width: 20},
		formField{label: "ZIP:", width: 15},
		formField{label: "Last Invoice Number:", placeholder: "0", width: 10, limit: 9},
	)

	if b := m.bank; b != nil {
		m.form.set(setAccountName, b.BeneficiaryAccountName)
		m.form.set(setBankName, b.BankName)
		m.form.set(setBankAddress, b.BankAddress)
		m.form.set(setAccountType, b.AccountType)
		m.form.set(setAccountNumber, b.AccountNumber)
		m.form.set(setWireRouting, b.WireRouting)
		m.form.set(setSwiftCode, b.SwiftCode)
	}
	if a := m.address; a != nil {
		m.form.set(setAddressLine1, a.AddressLine1)
		m.form.set(setAddressLine2, domain.Deref(a.AddressLine2))
		m.form.set(setCity, a.City)
		m.form.set(setState, a.State)
		m.form.set(setZip, a.Zip)
	}
	m.form.set(setSequence, strconv.Itoa(m.sequence))
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	f := m.form
	bank := domain.BankData{
		BeneficiaryAccountName: f.value(setAccountName),
		BankName:               f.value(setBankName),
		BankAddress:            f.value(setBankAddress),
		AccountType:            f.value(setAccountType),
		AccountNumber:          f.value(setAccountNumber),
		WireRouting:            f.value(setWireRouting),
		SwiftCode:              f.value(setSwiftCode),
	}
	addr := domain.AddressData{
		AddressLine1: f.value(setAddressLine1),
		AddressLine2: domain.Optional(f.value(setAddressLine2)),
		City:         f.value(setCity),
		State:        f.value(setState),
		Zip:          f.value(setZip),
	}
	seqStr := f.value(setSequence)

	return func() tea.Msg {
		if err := domain.ValidateBank(bank); err != nil {
			return settingsSavedMsg{err: err}
		}
		if err := domain.ValidateAddress(addr); err != nil {
			return settingsSavedMsg{err: err}
		}
		seq, err := strconv.Atoi(seqStr)
		if err != nil || seq < 0 {
			return settingsSavedMsg{err: fmt.Errorf("last invoice number must be a non-negative number")}
		}

		ctx := context.Background()
		if err := m.app.SettingsRepo.SaveBank(ctx, bank); err != nil {
			return settingsSavedMsg{err: err}
		}
		if err := m.app.SettingsRepo.SaveAddress(ctx, addr); err != nil {
			return settingsSavedMsg{err: err}
		}
		if err := m.app.SettingsRepo.SetSequence(ctx, seq); err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsDataMsg:
		m.err = msg.err
		m.bank = msg.bank
		m.address = msg.address
		m.sequence = msg.sequence
		if m.openForm {
			m.openForm = false
			m.mode = settingsModeEdit
			m.initForm()
		}
		return m, nil

	case RefreshDataMsg:
		if m.mode == settingsModeView {
			return m, m.loadSettings()
		}
		return m, nil

	case OpenSettingsFormMsg:
		m.openForm = true
		m.statusMsg = "Enter your bank details and address to start invoicing"
		return m, m.loadSettings()
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		if msg.String() == "enter" {
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, nil
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.err = nil
		m.statusMsg = "Settings saved"
		return m, m.loadSettings()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.mode = settingsModeView
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if submit {
		return m, m.saveSettings()
	}
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += successStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	missing := lipgloss.NewStyle().Foreground(warningColor).Render("  not configured")

	s += subtitleStyle.Render("  Payment Information") + "\n"
	if m.bank != nil {
		for _, line := range render.BankLines(*m.bank) {
			s += "  " + valueStyle.Render(line) + "\n"
		}
	} else {
		s += missing + "\n"
	}

	s += "\n" + subtitleStyle.Render("  Beneficiary Address") + "\n"
	if a := m.address; a != nil {
		s += "  " + valueStyle.Render(a.AddressLine1) + "\n"
		if line2, ok := domain.Present(a.AddressLine2); ok {
			s += "  " + valueStyle.Render(line2) + "\n"
		}
		s += "  " + valueStyle.Render(fmt.Sprintf("%s, %s - %s", a.City, a.State, a.Zip)) + "\n"
	} else {
		s += missing + "\n"
	}

	cfg := m.app.Config.Invoice
	s += "\n" + subtitleStyle.Render("  Invoices") + "\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Next Number:"), valueStyle.Render(strconv.Itoa(m.sequence+1)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Output Directory:"), valueStyle.Render(cfg.OutputDir))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Filename Template:"), valueStyle.Render(cfg.FilenameTemplate))

	s += "\n" + helpStyle.Render("  enter: edit settings")
	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"
	if m.statusMsg != "" {
		s += subtitleStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	s += m.form.view() + "\n"

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}
