package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() InvoiceForm {
	return InvoiceForm{
		ClientName:         "ACME Corp",
		ClientAddressLine1: "1 Main Street",
		ServiceDescription: "Professional Services",
		HourlyRate:         decimal.NewFromInt(50),
		HoursWorked:        decimal.NewFromInt(10),
		FilenameTemplate:   "INV_{sequence}",
	}
}

func TestInvoiceForm_Validate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		require.NoError(t, validForm().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(f *InvoiceForm)
		message string
	}{
		{"short client name", func(f *InvoiceForm) { f.ClientName = "AB" }, "client_name must be at least 3 characters"},
		{"short address", func(f *InvoiceForm) { f.ClientAddressLine1 = "Rua" }, "client_address_line1 must be at least 5 characters"},
		{"bad email", func(f *InvoiceForm) { f.ClientEmail = "not-an-email" }, "client_email must be a valid email address"},
		{"zero rate", func(f *InvoiceForm) { f.HourlyRate = decimal.Zero }, "hourly_rate must be greater than 0"},
		{"negative hours", func(f *InvoiceForm) { f.HoursWorked = decimal.NewFromInt(-2) }, "hours_worked must be greater than 0"},
		{"missing template", func(f *InvoiceForm) { f.FilenameTemplate = "" }, "filename_template is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("empty email is allowed", func(t *testing.T) {
		f := validForm()
		f.ClientEmail = ""
		assert.NoError(t, f.Validate())
	})
}

func TestInvoiceForm_Client(t *testing.T) {
	f := validForm()
	f.ClientAddressLine2 = "  "
	f.ClientEmail = "ap@acme.test"

	c := f.Client()
	assert.Nil(t, c.AddressLine2)
	if assert.NotNil(t, c.Email) {
		assert.Equal(t, "ap@acme.test", *c.Email)
	}

	back := FormFromClient(c)
	assert.Equal(t, "ACME Corp", back.ClientName)
	assert.Equal(t, "", back.ClientAddressLine2)
}

func TestValidateSettings(t *testing.T) {
	bank := BankData{
		BeneficiaryAccountName: "Jane Freelancer",
		BankName:               "First Bank",
		BankAddress:            "100 Finance Ave",
		AccountType:            "Checking",
		AccountNumber:          "123456789",
		WireRouting:            "021000021",
		SwiftCode:              "FBNKUS33",
	}
	assert.NoError(t, ValidateBank(bank))

	bank.SwiftCode = "X"
	err := ValidateBank(bank)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swift_code")

	addr := AddressData{AddressLine1: "Rua das Flores 10", City: "Curitiba", State: "PR", Zip: "80000-000"}
	assert.NoError(t, ValidateAddress(addr))

	addr.Zip = ""
	assert.ErrorIs(t, ValidateAddress(addr), ErrInvalidInput)
}
