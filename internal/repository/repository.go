package repository

import (
	"context"
	"errors"

	"github.com/andy/invoicer/internal/domain"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrSettingNotFound = errors.New("setting not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Settings keys
const (
	KeyBankData        = "bank_data"
	KeyAddressData     = "address_data"
	KeyInvoiceSequence = "invoice_sequence"
	KeyLastClient      = "last_client"
)

// SettingsRepository persists the beneficiary's saved details and invoice numbering
type SettingsRepository interface {
	GetBank(ctx context.Context) (domain.BankData, error)
	SaveBank(ctx context.Context, bank domain.BankData) error
	GetAddress(ctx context.Context) (domain.AddressData, error)
	SaveAddress(ctx context.Context, addr domain.AddressData) error
	// GetSequence returns the last used invoice number, 0 if none
	GetSequence(ctx context.Context) (int, error)
	SetSequence(ctx context.Context, n int) error
	GetLastClient(ctx context.Context) (domain.ClientData, error)
	SaveLastClient(ctx context.Context, client domain.ClientData) error
}

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *domain.SavedClient) error
	GetByID(ctx context.Context, id int64) (*domain.SavedClient, error)
	GetByName(ctx context.Context, name string) (*domain.SavedClient, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.SavedClient, error)
	Update(ctx context.Context, client *domain.SavedClient) error
	Archive(ctx context.Context, id int64) error
	Unarchive(ctx context.Context, id int64) error
}

// HistoryRepository records generated invoices
type HistoryRepository interface {
	Create(ctx context.Context, inv *domain.GeneratedInvoice) error
	// List returns newest first; limit <= 0 means no limit
	List(ctx context.Context, limit int) ([]*domain.GeneratedInvoice, error)
	GetByNumber(ctx context.Context, number string) (*domain.GeneratedInvoice, error)
}
