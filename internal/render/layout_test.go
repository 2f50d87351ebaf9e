package render

import (
	"testing"

	"github.com/andy/invoicer/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// minimalInvoice has every optional field absent
func minimalInvoice() domain.InvoiceData {
	return domain.InvoiceData{
		Client: domain.ClientData{
			Name:         "ACME Corp",
			AddressLine1: "1 Main Street",
		},
		Bank: domain.BankData{
			BeneficiaryAccountName: "Jane Freelancer",
			BankName:               "First Bank",
			BankAddress:            "100 Finance Ave, New York",
			AccountType:            "Checking",
			AccountNumber:          "123456789",
			WireRouting:            "021000021",
			SwiftCode:              "FBNKUS33",
		},
		Address: domain.AddressData{
			AddressLine1: "Rua das Flores 10",
			City:         "Curitiba",
			State:        "PR",
			Zip:          "80000-000",
		},
		ServiceDescription: "Professional Services",
		HourlyRate:         decimal.NewFromFloat(50.0),
		HoursWorked:        decimal.NewFromFloat(10.0),
		InvoiceNumber:      "42",
		InvoiceDate:        "2024-01-31",
	}
}

// textsAt returns the non-header texts drawn in a column
func textsAt(p Page, x float64) []string {
	var out []string
	for _, t := range p.Texts {
		if t.X == x && !t.Bold {
			out = append(out, t.Text)
		}
	}
	return out
}

// totalRow returns the amount printed on the bold TOTAL row
func totalRow(p Page) string {
	for _, op := range p.Texts {
		if op.X == ColAmount && op.Bold && op.Text != "AMOUNT" {
			return op.Text
		}
	}
	return ""
}

func findText(t *testing.T, p Page, text string) TextOp {
	t.Helper()
	for _, op := range p.Texts {
		if op.Text == text {
			return op
		}
	}
	require.Failf(t, "text not found", "%q not on page", text)
	return TextOp{}
}

func TestLayout_MinimalInvoice(t *testing.T) {
	page := Layout(minimalInvoice())

	want := []string{
		"INVOICE",
		"Invoice #: 42",
		"Date: 2024-01-31",
		"FROM:",
		"Jane Freelancer",
		"Rua das Flores 10",
		"Curitiba, PR - 80000-000",
		"BILL TO:",
		"ACME Corp",
		"1 Main Street",
		"DESCRIPTION", "QUANTITY", "RATE", "AMOUNT",
		"Professional Services", "10.00 hrs", "$50.00/hr", "$500.00",
		"TOTAL:", "$500.00",
		"PAYMENT INFORMATION",
		"Beneficiary/Account Name: Jane Freelancer",
		"Bank Name: First Bank",
		"Bank Address: 100 Finance Ave, New York",
		"Account Type: Checking",
		"Account Number: 123456789",
		"Wire Routing: 021000021",
		"SWIFT Code: FBNKUS33",
		"Thank you for your business!",
	}
	assert.Equal(t, want, page.Lines())
	assert.NotContains(t, page.Lines(), "NOTES:")

	title := page.Texts[0]
	assert.Equal(t, PageHeight-Margin, title.Y)
	assert.True(t, title.Bold)
	assert.Equal(t, 24.0, title.Size)
}

func TestLayout_WithNotes(t *testing.T) {
	inv := minimalInvoice()
	inv.HoursWorked = decimal.RequireFromString("3.25")
	inv.HourlyRate = decimal.RequireFromString("120.00")
	inv.Notes = strPtr("Paid via wire on 2024-01-15")

	page := Layout(inv)
	lines := page.Lines()

	assert.Contains(t, lines, "3.25 hrs")
	assert.Contains(t, lines, "$120.00/hr")
	assert.Equal(t, []string{"$390.00"}, textsAt(page, ColAmount))
	assert.Equal(t, "$390.00", totalRow(page))

	notesLabel := findText(t, page, "NOTES:")
	notes := findText(t, page, "Paid via wire on 2024-01-15")
	assert.True(t, notesLabel.Bold)
	assert.InDelta(t, 6.0, notesLabel.Y-notes.Y, 1e-9)

	swift := findText(t, page, "SWIFT Code: FBNKUS33")
	assert.InDelta(t, 10.0, swift.Y-notesLabel.Y, 1e-9)
}

func TestLayout_OptionalFieldsCollapse(t *testing.T) {
	tests := []struct {
		name   string
		set    func(inv *domain.InvoiceData, v *string)
		anchor string // first line drawn after the optional field
	}{
		{
			name:   "client address line 2",
			set:    func(inv *domain.InvoiceData, v *string) { inv.Client.AddressLine2 = v },
			anchor: "DESCRIPTION",
		},
		{
			name:   "client email",
			set:    func(inv *domain.InvoiceData, v *string) { inv.Client.Email = v },
			anchor: "DESCRIPTION",
		},
		{
			name:   "beneficiary address line 2",
			set:    func(inv *domain.InvoiceData, v *string) { inv.Address.AddressLine2 = v },
			anchor: "BILL TO:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absent := minimalInvoice()
			tt.set(&absent, nil)

			empty := minimalInvoice()
			tt.set(&empty, strPtr(""))

			present := minimalInvoice()
			tt.set(&present, strPtr("Suite 200"))

			absentPage := Layout(absent)
			emptyPage := Layout(empty)
			presentPage := Layout(present)

			assert.Equal(t, absentPage, emptyPage, "empty and absent must render identically")
			assert.Len(t, presentPage.Texts, len(absentPage.Texts)+1)
			assert.Contains(t, presentPage.Lines(), "Suite 200")

			skipped := findText(t, absentPage, tt.anchor)
			shown := findText(t, presentPage, tt.anchor)
			assert.InDelta(t, 5.0, skipped.Y-shown.Y, 1e-9)
		})
	}

	t.Run("notes", func(t *testing.T) {
		absent := Layout(minimalInvoice())

		inv := minimalInvoice()
		inv.Notes = strPtr("")
		assert.Equal(t, absent, Layout(inv))

		inv.Notes = strPtr("Net 30")
		assert.Len(t, Layout(inv).Texts, len(absent.Texts)+2)
	})
}

func TestLayout_BeneficiaryLine2Order(t *testing.T) {
	inv := minimalInvoice()
	inv.Address.AddressLine2 = strPtr("Apt 3")

	lines := Layout(inv).Lines()
	require.Equal(t, "Rua das Flores 10", lines[5])
	assert.Equal(t, "Apt 3", lines[6])
	assert.Equal(t, "Curitiba, PR - 80000-000", lines[7])
}

func TestLayout_BankLinesAlwaysPresent(t *testing.T) {
	inv := minimalInvoice()
	inv.Bank = domain.BankData{}

	page := Layout(inv)
	heading := -1
	for i, l := range page.Lines() {
		if l == "PAYMENT INFORMATION" {
			heading = i
		}
	}
	require.NotEqual(t, -1, heading)

	got := page.Lines()[heading+1 : heading+8]
	assert.Equal(t, []string{
		"Beneficiary/Account Name: ",
		"Bank Name: ",
		"Bank Address: ",
		"Account Type: ",
		"Account Number: ",
		"Wire Routing: ",
		"SWIFT Code: ",
	}, got)
	assert.Len(t, BankLines(inv.Bank), 7)
}

func TestLayout_Rules(t *testing.T) {
	page := Layout(minimalInvoice())
	require.Len(t, page.Rules, 2)

	header := findText(t, page, "DESCRIPTION")
	assert.Equal(t, RuleOp{X1: Margin, X2: PageWidth - Margin, Y: header.Y - 2}, page.Rules[0])

	total := findText(t, page, "TOTAL:")
	assert.Equal(t, ColRate, page.Rules[1].X1)
	assert.Equal(t, PageWidth-Margin, page.Rules[1].X2)
	assert.InDelta(t, 6.0, page.Rules[1].Y-total.Y, 1e-9)
}

func TestLayout_FooterIsFixed(t *testing.T) {
	short := Layout(minimalInvoice())

	long := minimalInvoice()
	long.Client.AddressLine2 = strPtr("Floor 9")
	long.Client.Email = strPtr("ap@acme.test")
	long.Address.AddressLine2 = strPtr("Apt 3")
	long.Notes = strPtr("Thanks again")

	for _, p := range []Page{short, Layout(long)} {
		footer := p.Texts[len(p.Texts)-1]
		assert.Equal(t, "Thank you for your business!", footer.Text)
		assert.Equal(t, FooterY, footer.Y)
		assert.Equal(t, Margin, footer.X)
	}
}

func TestLayout_TotalMatchesRateTimesHours(t *testing.T) {
	f := gofakeit.New(0)

	for i := 0; i < 200; i++ {
		rate := decimal.NewFromFloat(f.Float64Range(0, 500)).Round(2)
		hours := decimal.NewFromFloat(f.Float64Range(0, 200)).Round(2)

		inv := minimalInvoice()
		inv.Client.Name = f.Company()
		inv.Client.AddressLine1 = f.Street()
		inv.Bank.AccountNumber = f.AchAccount()
		inv.Bank.WireRouting = f.AchRouting()
		inv.HourlyRate = rate
		inv.HoursWorked = hours

		page := Layout(inv)
		want := "$" + rate.Mul(hours).StringFixed(2)

		amounts := textsAt(page, ColAmount)
		require.Len(t, amounts, 1, "line item amount")
		assert.Equal(t, want, amounts[0])

		assert.Equal(t, want, totalRow(page))
		assert.Equal(t, hours.StringFixed(2)+" hrs", textsAt(page, ColQuantity)[0])
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "$1234.50", Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.01", Money(decimal.RequireFromString("0.005")))
}
