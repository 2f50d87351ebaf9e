package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// InvoiceForm is the user input for a single invoice, before settings
// (bank, beneficiary address) and numbering are merged in.
type InvoiceForm struct {
	ClientName         string          `json:"client_name" validate:"required,min=3"`
	ClientAddressLine1 string          `json:"client_address_line1" validate:"required,min=5"`
	ClientAddressLine2 string          `json:"client_address_line2"`
	ClientEmail        string          `json:"client_email" validate:"omitempty,email"`
	ServiceDescription string          `json:"service_description" validate:"required,min=3"`
	HourlyRate         decimal.Decimal `json:"hourly_rate" validate:"gt=0"`
	HoursWorked        decimal.Decimal `json:"hours_worked" validate:"gt=0"`
	FilenameTemplate   string          `json:"filename_template" validate:"required"`
	Notes              string          `json:"notes"`
	InvoiceDate        string          `json:"invoice_date"`
	InvoiceNumber      string          `json:"invoice_number"` // overrides the sequence when set
}

// Client returns the BILL TO block described by the form
func (f InvoiceForm) Client() ClientData {
	return ClientData{
		Name:         strings.TrimSpace(f.ClientName),
		AddressLine1: strings.TrimSpace(f.ClientAddressLine1),
		AddressLine2: Optional(f.ClientAddressLine2),
		Email:        Optional(f.ClientEmail),
	}
}

// FormFromClient pre-fills a form from the last used client
func FormFromClient(c ClientData) InvoiceForm {
	return InvoiceForm{
		ClientName:         c.Name,
		ClientAddressLine1: c.AddressLine1,
		ClientAddressLine2: Deref(c.AddressLine2),
		ClientEmail:        Deref(c.Email),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use json names in messages so they match the CLI flags and data files
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Compare decimals as floats for gt/gte/lt rules
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// Validate checks the form against the input rules of the invoice form
func (f InvoiceForm) Validate() error {
	return validateStruct(f)
}

// ValidateBank checks bank settings before they are saved
func ValidateBank(b BankData) error {
	return validateStruct(b)
}

// ValidateAddress checks beneficiary address settings before they are saved
func ValidateAddress(a AddressData) error {
	return validateStruct(a)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// ErrInvalidInput is returned when a form or settings record fails validation
var ErrInvalidInput = errors.New("invalid input")

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
