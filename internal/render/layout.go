package render

import (
	"fmt"

	"github.com/andy/invoicer/internal/domain"
	"github.com/shopspring/decimal"
)

// Page geometry in millimetres (A4 portrait)
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 20.0

	// Column offsets of the line item table
	ColDescription = Margin
	ColQuantity    = 100.0
	ColRate        = 135.0
	ColAmount      = 170.0

	// FooterY is the fixed baseline of the closing line, independent of content
	FooterY = 25.0
)

// Font sizes in points
const (
	sizeTitle   = 24.0
	sizeHeading = 12.0
	sizeBody    = 11.0
	sizeSmall   = 10.0
)

// TextOp draws one line of text with its baseline at (X, Y).
// Y is measured upwards from the bottom edge of the page.
type TextOp struct {
	X    float64
	Y    float64
	Size float64
	Bold bool
	Text string
}

// RuleOp draws a horizontal line from X1 to X2 at height Y
type RuleOp struct {
	X1 float64
	X2 float64
	Y  float64
}

// Page is the retained list of draw commands for the single invoice page
type Page struct {
	Texts []TextOp
	Rules []RuleOp
}

// Lines returns the text of every text command in emit order
func (p Page) Lines() []string {
	out := make([]string, len(p.Texts))
	for i, t := range p.Texts {
		out[i] = t.Text
	}
	return out
}

// cursor tracks the vertical position while the page is laid out top-down
type cursor struct {
	page Page
	y    float64
}

func (c *cursor) text(x, size float64, bold bool, s string) {
	c.page.Texts = append(c.page.Texts, TextOp{X: x, Y: c.y, Size: size, Bold: bold, Text: s})
}

func (c *cursor) rule(x1, x2 float64) {
	c.page.Rules = append(c.page.Rules, RuleOp{X1: x1, X2: x2, Y: c.y})
}

func (c *cursor) down(mm float64) {
	c.y -= mm
}

// Money formats an amount as dollars with exactly two decimals
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Layout positions every element of the invoice template.
// It performs no measurement, wrapping or overflow detection: content that
// grows past the footer simply overlaps it.
func Layout(inv domain.InvoiceData) Page {
	c := &cursor{y: PageHeight - Margin}
	total := inv.Total()

	c.text(Margin, sizeTitle, true, "INVOICE")
	c.down(10)

	c.text(Margin, sizeHeading, false, fmt.Sprintf("Invoice #: %s", inv.InvoiceNumber))
	c.down(6)
	c.text(Margin, sizeHeading, false, fmt.Sprintf("Date: %s", inv.InvoiceDate))
	c.down(15)

	// FROM
	c.text(Margin, sizeHeading, true, "FROM:")
	c.down(6)
	c.text(Margin, sizeBody, false, inv.Bank.BeneficiaryAccountName)
	c.down(5)
	c.text(Margin, sizeBody, false, inv.Address.AddressLine1)
	c.down(5)
	if line2, ok := domain.Present(inv.Address.AddressLine2); ok {
		c.text(Margin, sizeBody, false, line2)
		c.down(5)
	}
	c.text(Margin, sizeBody, false, fmt.Sprintf("%s, %s - %s",
		inv.Address.City, inv.Address.State, inv.Address.Zip))
	c.down(15)

	// BILL TO
	c.text(Margin, sizeHeading, true, "BILL TO:")
	c.down(6)
	c.text(Margin, sizeBody, false, inv.Client.Name)
	c.down(5)
	c.text(Margin, sizeBody, false, inv.Client.AddressLine1)
	c.down(5)
	if line2, ok := domain.Present(inv.Client.AddressLine2); ok {
		c.text(Margin, sizeBody, false, line2)
		c.down(5)
	}
	if email, ok := domain.Present(inv.Client.Email); ok {
		c.text(Margin, sizeBody, false, email)
		c.down(5)
	}
	c.down(10)

	// Line item table
	c.text(ColDescription, sizeBody, true, "DESCRIPTION")
	c.text(ColQuantity, sizeBody, true, "QUANTITY")
	c.text(ColRate, sizeBody, true, "RATE")
	c.text(ColAmount, sizeBody, true, "AMOUNT")
	c.down(2)
	c.rule(Margin, PageWidth-Margin)
	c.down(6)

	c.text(ColDescription, sizeBody, false, inv.ServiceDescription)
	c.text(ColQuantity, sizeBody, false, inv.HoursWorked.StringFixed(2)+" hrs")
	c.text(ColRate, sizeBody, false, Money(inv.HourlyRate)+"/hr")
	c.text(ColAmount, sizeBody, false, Money(total))
	c.down(8)

	c.rule(ColRate, PageWidth-Margin)
	c.down(6)
	c.text(ColRate, sizeHeading, true, "TOTAL:")
	c.text(ColAmount, sizeHeading, true, Money(total))
	c.down(15)

	// Payment information, always all seven lines
	c.text(Margin, sizeHeading, true, "PAYMENT INFORMATION")
	c.down(6)
	for _, line := range BankLines(inv.Bank) {
		c.text(Margin, sizeSmall, false, line)
		c.down(5)
	}

	if notes, ok := domain.Present(inv.Notes); ok {
		c.down(5)
		c.text(Margin, sizeBody, true, "NOTES:")
		c.down(6)
		c.text(Margin, sizeSmall, false, notes)
	}

	c.y = FooterY
	c.text(Margin, sizeSmall, false, "Thank you for your business!")

	return c.page
}

// BankLines returns the labelled payment lines in their fixed order
func BankLines(b domain.BankData) []string {
	return []string{
		"Beneficiary/Account Name: " + b.BeneficiaryAccountName,
		"Bank Name: " + b.BankName,
		"Bank Address: " + b.BankAddress,
		"Account Type: " + b.AccountType,
		"Account Number: " + b.AccountNumber,
		"Wire Routing: " + b.WireRouting,
		"SWIFT Code: " + b.SwiftCode,
	}
}
