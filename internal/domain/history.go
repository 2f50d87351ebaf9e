package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GeneratedInvoice records one successful render
type GeneratedInvoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	ClientName    string
	InvoiceDate   string
	Total         decimal.Decimal
	FilePath      string
	CreatedAt     time.Time
}

// NewGeneratedInvoice builds a history record for a rendered invoice
func NewGeneratedInvoice(inv InvoiceData, filePath string) *GeneratedInvoice {
	return &GeneratedInvoice{
		ID:            uuid.New(),
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.Client.Name,
		InvoiceDate:   inv.InvoiceDate,
		Total:         inv.Total(),
		FilePath:      filePath,
		CreatedAt:     time.Now(),
	}
}
