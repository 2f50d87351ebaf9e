package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClientData is the "BILL TO" party of an invoice
type ClientData struct {
	Name         string  `json:"name" yaml:"name"`
	AddressLine1 string  `json:"address_line1" yaml:"address_line1"`
	AddressLine2 *string `json:"address_line2,omitempty" yaml:"address_line2,omitempty"`
	Email        *string `json:"email,omitempty" yaml:"email,omitempty"`
}

// AddressData is the beneficiary's physical address
type AddressData struct {
	AddressLine1 string  `json:"beneficiary_address_line1" yaml:"address_line1" validate:"required,min=5"`
	AddressLine2 *string `json:"beneficiary_address_line2,omitempty" yaml:"address_line2,omitempty"`
	State        string  `json:"beneficiary_address_state" yaml:"state" validate:"required"`
	City         string  `json:"beneficiary_address_city" yaml:"city" validate:"required"`
	Zip          string  `json:"beneficiary_address_zip" yaml:"zip" validate:"required"`
}

// BankData holds the wire transfer details printed under PAYMENT INFORMATION.
// The renderer prints values verbatim; validate tags only apply to the settings forms.
type BankData struct {
	BeneficiaryAccountName string `json:"beneficiary_account_name" yaml:"beneficiary_account_name" validate:"required,min=5"`
	BankName               string `json:"bank_name" yaml:"bank_name" validate:"required,min=5"`
	BankAddress            string `json:"bank_address" yaml:"bank_address" validate:"required,min=5"`
	AccountType            string `json:"account_type" yaml:"account_type" validate:"required"`
	AccountNumber          string `json:"account_number" yaml:"account_number" validate:"required,min=5"`
	WireRouting            string `json:"wire_routing" yaml:"wire_routing" validate:"required,min=5"`
	SwiftCode              string `json:"swift_code" yaml:"swift_code" validate:"required,min=5"`
}

// InvoiceData is everything needed to render one invoice
type InvoiceData struct {
	Client             ClientData      `json:"client"`
	Bank               BankData        `json:"bank_data"`
	Address            AddressData     `json:"address_data"`
	ServiceDescription string          `json:"service_description"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	HoursWorked        decimal.Decimal `json:"hours_worked"`
	InvoiceNumber      string          `json:"invoice_number"`
	Notes              *string         `json:"notes,omitempty"`
	InvoiceDate        string          `json:"invoice_date"` // pre-formatted by the caller
}

// Total returns hourly rate times hours worked.
// It is derived on every call and never stored.
func (d InvoiceData) Total() decimal.Decimal {
	return d.HourlyRate.Mul(d.HoursWorked)
}

// Present reports whether an optional field should be printed.
// Absent and empty are treated the same.
func Present(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

// Optional converts a raw input string into an optional field,
// trimming whitespace and mapping empty input to absent.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value of an optional field or "" when absent
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
