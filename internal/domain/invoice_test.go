package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceData_Total(t *testing.T) {
	tests := []struct {
		name  string
		rate  string
		hours string
		want  string
	}{
		{name: "whole numbers", rate: "50", hours: "10", want: "500.00"},
		{name: "quarter hours", rate: "120.00", hours: "3.25", want: "390.00"},
		{name: "zero hours", rate: "95", hours: "0", want: "0.00"},
		{name: "fractional cents", rate: "33.333", hours: "3", want: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := InvoiceData{
				HourlyRate:  decimal.RequireFromString(tt.rate),
				HoursWorked: decimal.RequireFromString(tt.hours),
			}
			assert.Equal(t, tt.want, inv.Total().StringFixed(2))
		})
	}
}

func TestPresent(t *testing.T) {
	empty := ""
	value := "Suite 200"

	_, ok := Present(nil)
	assert.False(t, ok)

	_, ok = Present(&empty)
	assert.False(t, ok)

	got, ok := Present(&value)
	assert.True(t, ok)
	assert.Equal(t, "Suite 200", got)
}

func TestOptional(t *testing.T) {
	assert.Nil(t, Optional(""))
	assert.Nil(t, Optional("   "))
	if got := Optional(" billing@acme.test "); assert.NotNil(t, got) {
		assert.Equal(t, "billing@acme.test", *got)
	}
	assert.Equal(t, "", Deref(nil))
}

func TestSavedClient_ToClientData(t *testing.T) {
	c := NewSavedClient("  ACME Corp ", "1 Main Street", decimal.NewFromInt(100))
	c.Email = "ap@acme.test"

	data := c.ToClientData()
	assert.Equal(t, "ACME Corp", data.Name)
	assert.Nil(t, data.AddressLine2)
	if assert.NotNil(t, data.Email) {
		assert.Equal(t, "ap@acme.test", *data.Email)
	}
	assert.NoError(t, c.Validate())

	c.HourlyRate = decimal.NewFromInt(-1)
	assert.Error(t, c.Validate())
}
