package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SavedClient is an address book entry used to fill the BILL TO section
type SavedClient struct {
	ID           int64
	Name         string
	AddressLine1 string
	AddressLine2 string
	Email        string
	HourlyRate   decimal.Decimal // default rate for new invoices
	IsArchived   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSavedClient creates a new client with required fields
func NewSavedClient(name, addressLine1 string, hourlyRate decimal.Decimal) *SavedClient {
	now := time.Now()
	return &SavedClient{
		Name:         strings.TrimSpace(name),
		AddressLine1: strings.TrimSpace(addressLine1),
		HourlyRate:   hourlyRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate returns an error if the client is invalid
func (c *SavedClient) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if strings.TrimSpace(c.AddressLine1) == "" {
		return errors.New("client address is required")
	}
	if c.HourlyRate.IsNegative() {
		return errors.New("hourly rate cannot be negative")
	}
	return nil
}

// ToClientData converts the saved entry into the invoice's BILL TO block
func (c *SavedClient) ToClientData() ClientData {
	return ClientData{
		Name:         c.Name,
		AddressLine1: c.AddressLine1,
		AddressLine2: Optional(c.AddressLine2),
		Email:        Optional(c.Email),
	}
}
