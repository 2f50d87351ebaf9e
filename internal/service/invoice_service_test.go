package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/invoicer/internal/domain"
	"github.com/andy/invoicer/internal/render"
	"github.com/andy/invoicer/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mock implementations
type mockSettingsRepo struct {
	bank       *domain.BankData
	address    *domain.AddressData
	sequence   int
	lastClient *domain.ClientData
	getSeqErr  error
}

func (m *mockSettingsRepo) GetBank(ctx context.Context) (domain.BankData, error) {
	if m.bank == nil {
		return domain.BankData{}, fmt.Errorf("%w: bank_data", repository.ErrSettingNotFound)
	}
	return *m.bank, nil
}
func (m *mockSettingsRepo) SaveBank(ctx context.Context, bank domain.BankData) error {
	m.bank = &bank
	return nil
}
func (m *mockSettingsRepo) GetAddress(ctx context.Context) (domain.AddressData, error) {
	if m.address == nil {
		return domain.AddressData{}, fmt.Errorf("%w: address_data", repository.ErrSettingNotFound)
	}
	return *m.address, nil
}
func (m *mockSettingsRepo) SaveAddress(ctx context.Context, addr domain.AddressData) error {
	m.address = &addr
	return nil
}
func (m *mockSettingsRepo) GetSequence(ctx context.Context) (int, error) {
	return m.sequence, m.getSeqErr
}
func (m *mockSettingsRepo) SetSequence(ctx context.Context, n int) error {
	m.sequence = n
	return nil
}
func (m *mockSettingsRepo) GetLastClient(ctx context.Context) (domain.ClientData, error) {
	if m.lastClient == nil {
		return domain.ClientData{}, repository.ErrSettingNotFound
	}
	return *m.lastClient, nil
}
func (m *mockSettingsRepo) SaveLastClient(ctx context.Context, client domain.ClientData) error {
	m.lastClient = &client
	return nil
}

type mockHistoryRepo struct {
	created   []*domain.GeneratedInvoice
	createErr error
}

func (m *mockHistoryRepo) Create(ctx context.Context, inv *domain.GeneratedInvoice) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, inv)
	return nil
}
func (m *mockHistoryRepo) List(ctx context.Context, limit int) ([]*domain.GeneratedInvoice, error) {
	out := make([]*domain.GeneratedInvoice, 0, len(m.created))
	for i := len(m.created) - 1; i >= 0; i-- {
		out = append(out, m.created[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (m *mockHistoryRepo) GetByNumber(ctx context.Context, number string) (*domain.GeneratedInvoice, error) {
	return nil, repository.ErrInvoiceNotFound
}

type mockRenderer struct {
	rendered []string
	err      error
}

func (m *mockRenderer) Render(inv domain.InvoiceData, destination string) error {
	if m.err != nil {
		return m.err
	}
	m.rendered = append(m.rendered, destination)
	return nil
}

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func savedSettings() *mockSettingsRepo {
	return &mockSettingsRepo{
		bank: &domain.BankData{
			BeneficiaryAccountName: "Jane Freelancer",
			BankName:               "First Bank",
			BankAddress:            "100 Finance Ave",
			AccountType:            "Checking",
			AccountNumber:          "123456789",
			WireRouting:            "021000021",
			SwiftCode:              "FBNKUS33",
		},
		address: &domain.AddressData{
			AddressLine1: "Rua das Flores 10",
			City:         "Curitiba",
			State:        "PR",
			Zip:          "80000-000",
		},
		sequence: 41,
	}
}

func validForm() domain.InvoiceForm {
	return domain.InvoiceForm{
		ClientName:         "ACME Corp",
		ClientAddressLine1: "1 Main Street",
		ClientEmail:        "  ",
		ServiceDescription: "Professional Services",
		HourlyRate:         decimal.NewFromInt(50),
		HoursWorked:        decimal.NewFromInt(10),
		FilenameTemplate:   "INV_{sequence}",
		Notes:              "",
	}
}

func newTestService(settings *mockSettingsRepo, history *mockHistoryRepo, r Renderer) InvoiceService {
	return NewInvoiceService(r, settings, history, Options{
		OutputDir:  "/out",
		DateFormat: "January 2, 2006",
		Now:        func() time.Time { return fixedNow },
	})
}

func TestPrepare(t *testing.T) {
	settings := savedSettings()
	svc := newTestService(settings, &mockHistoryRepo{}, &mockRenderer{})

	inv, path, err := svc.Prepare(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, "42", inv.InvoiceNumber)
	assert.Equal(t, "March 15, 2024", inv.InvoiceDate)
	assert.Equal(t, filepath.Join("/out", "INV_42.pdf"), path)
	assert.Equal(t, "Jane Freelancer", inv.Bank.BeneficiaryAccountName)
	assert.Equal(t, "Curitiba", inv.Address.City)
	assert.Nil(t, inv.Client.Email)
	assert.Nil(t, inv.Notes)
	assert.Equal(t, "500.00", inv.Total().StringFixed(2))

	// Prepare never advances the sequence
	assert.Equal(t, 41, settings.sequence)
	require.NotNil(t, settings.lastClient)
	assert.Equal(t, "ACME Corp", settings.lastClient.Name)
}

func TestPrepare_Overrides(t *testing.T) {
	svc := newTestService(savedSettings(), &mockHistoryRepo{}, &mockRenderer{})

	form := validForm()
	form.InvoiceNumber = "2024-007"
	form.InvoiceDate = "2024-01-31"
	form.FilenameTemplate = "/abs/{year}/{client}-{sequence}.pdf"
	form.Notes = "Net 30"

	inv, path, err := svc.Prepare(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "2024-007", inv.InvoiceNumber)
	assert.Equal(t, "2024-01-31", inv.InvoiceDate)
	assert.Equal(t, "/abs/2024/ACME_Corp-2024-007.pdf", path)
	assert.Equal(t, "Net 30", domain.Deref(inv.Notes))
}

func TestPrepare_InvalidForm(t *testing.T) {
	settings := savedSettings()
	svc := newTestService(settings, &mockHistoryRepo{}, &mockRenderer{})

	form := validForm()
	form.HoursWorked = decimal.Zero

	_, _, err := svc.Prepare(context.Background(), form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Nil(t, settings.lastClient)
}

func TestPrepare_SettingsMissing(t *testing.T) {
	settings := savedSettings()
	settings.address = nil
	svc := newTestService(settings, &mockHistoryRepo{}, &mockRenderer{})

	_, _, err := svc.Prepare(context.Background(), validForm())
	assert.True(t, errors.Is(err, ErrSettingsMissing))
}

func TestGenerate(t *testing.T) {
	settings := savedSettings()
	history := &mockHistoryRepo{}
	renderer := &mockRenderer{}
	svc := newTestService(settings, history, renderer)
	ctx := context.Background()

	inv, path, err := svc.Prepare(ctx, validForm())
	require.NoError(t, err)

	got, err := svc.Generate(ctx, inv, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, []string{path}, renderer.rendered)
	assert.Equal(t, 42, settings.sequence)

	require.Len(t, history.created, 1)
	assert.Equal(t, "42", history.created[0].InvoiceNumber)
	assert.Equal(t, path, history.created[0].FilePath)
	assert.Equal(t, "500.00", history.created[0].Total.StringFixed(2))

	list, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGenerate_RenderFailureKeepsSequence(t *testing.T) {
	settings := savedSettings()
	history := &mockHistoryRepo{}
	renderErr := render.NewError(render.KindIO, "failed to create PDF file", "/out/INV_42.pdf", errors.New("denied"))
	svc := newTestService(settings, history, &mockRenderer{err: renderErr})
	ctx := context.Background()

	inv, path, err := svc.Prepare(ctx, validForm())
	require.NoError(t, err)

	_, err = svc.Generate(ctx, inv, path)
	require.Error(t, err)
	assert.True(t, render.IsKind(err, render.KindIO))
	assert.Equal(t, 41, settings.sequence)
	assert.Empty(t, history.created)
}

func TestGenerate_HistoryFailureIsNotFatal(t *testing.T) {
	settings := savedSettings()
	svc := newTestService(settings, &mockHistoryRepo{createErr: errors.New("disk full")}, &mockRenderer{})
	ctx := context.Background()

	inv, path, err := svc.Prepare(ctx, validForm())
	require.NoError(t, err)

	got, err := svc.Generate(ctx, inv, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestGenerate_WritesRealPDF(t *testing.T) {
	settings := savedSettings()
	history := &mockHistoryRepo{}
	svc := newTestService(settings, history, render.New(render.DefaultOptions()))
	ctx := context.Background()

	inv, _, err := svc.Prepare(ctx, validForm())
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "a", "b", "INV_42.pdf")
	got, err := svc.Generate(ctx, inv, dest)
	require.NoError(t, err)
	assert.FileExists(t, got)
}

func TestCommitSequence(t *testing.T) {
	settings := savedSettings()
	svc := newTestService(settings, &mockHistoryRepo{}, &mockRenderer{})
	ctx := context.Background()

	require.NoError(t, svc.CommitSequence(ctx, 40))
	assert.Equal(t, 41, settings.sequence, "never moves backwards")

	require.NoError(t, svc.CommitSequence(ctx, 50))
	assert.Equal(t, 50, settings.sequence)

	settings.getSeqErr = errors.New("locked")
	assert.Error(t, svc.CommitSequence(ctx, 60))
}

func TestExpandFilename(t *testing.T) {
	tests := []struct {
		template, sequence, client string
		want                       string
	}{
		{"INV_{sequence}", "7", "ACME", "INV_7.pdf"},
		{"{year}/{client}_{sequence}.pdf", "7", "ACME Corp", "2024/ACME_Corp_7.pdf"},
		{"{client}", "7", "a/b:c", "a_b_c.pdf"},
		{"invoice.PDF", "7", "x", "invoice.PDF"},
		{"INV_{sequence}_{client}", "7", "Acme Inc.", "INV_7_Acme_Inc..pdf"},
		{"INV_{sequence}_{client}", "7", "J. Smith", "INV_7_J._Smith.pdf"},
		{"INV_{sequence}", "2024.1", "x", "INV_2024.1.pdf"},
		{"{client}.pdf", "7", "Acme Inc.", "Acme_Inc..pdf"},
		{"  ", "7", "x", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandFilename(tt.template, tt.sequence, tt.client, fixedNow), tt.template+" "+tt.client)
	}
}
