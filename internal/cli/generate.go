package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andy/invoicer/internal/app"
	"github.com/andy/invoicer/internal/domain"
	"github.com/andy/invoicer/internal/repository"
	"github.com/andy/invoicer/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an invoice PDF",
	Long: `Generate an invoice PDF.

With --data the invoice is read verbatim from a JSON file ("-" for stdin)
and rendered without consulting saved settings. Otherwise the invoice is
assembled from flags, a saved client and the saved bank and address
settings, and receives the next invoice number.

Examples:
  invoicer generate --client "ACME Corp" --hours 12.5
  invoicer generate --client-name "ACME Corp" --client-address1 "1 Main St" --rate 90 --hours 4
  invoicer generate --data invoice.json --out ~/invoices/INV_42.pdf --open`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		var (
			inv  domain.InvoiceData
			path string
		)
		if dataFile, _ := cmd.Flags().GetString("data"); dataFile != "" {
			inv, err = loadInvoiceData(dataFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			path = service.ExpandFilename(a.Config.Invoice.FilenameTemplate, inv.InvoiceNumber, inv.Client.Name, timeNow())
			if path == "" {
				return service.ErrEmptyFilename
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(a.Config.Invoice.OutputDir, path)
			}
		} else {
			form, err := formFromFlags(ctx, cmd, a)
			if err != nil {
				return err
			}
			inv, path, err = a.InvoiceService.Prepare(ctx, form)
			if err != nil {
				return err
			}
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			path = out
		}

		confirmed, err := a.InvoiceService.Generate(ctx, inv, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), confirmed)

		open, _ := cmd.Flags().GetBool("open")
		if open || (!cmd.Flags().Changed("open") && a.Config.Invoice.OpenAfterGenerate) {
			if err := a.Viewer.OpenFile(confirmed); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "could not open %s: %v\n", confirmed, err)
			}
		}
		return nil
	},
}

// loadInvoiceData reads an InvoiceData document from a file or stdin
func loadInvoiceData(name string, stdin io.Reader) (domain.InvoiceData, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return domain.InvoiceData{}, fmt.Errorf("failed to open invoice data: %w", err)
		}
		defer f.Close()
		r = f
	}

	var inv domain.InvoiceData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inv); err != nil {
		return domain.InvoiceData{}, fmt.Errorf("failed to parse invoice data: %w", err)
	}
	return inv, nil
}

// formFromFlags builds the invoice form. Client fields come from, in order
// of precedence: explicit --client-* flags, the saved client named by
// --client, and the last invoiced client.
func formFromFlags(ctx context.Context, cmd *cobra.Command, a *app.App) (domain.InvoiceForm, error) {
	flags := cmd.Flags()
	form := domain.InvoiceForm{
		ServiceDescription: a.Config.Invoice.DefaultServiceDescription,
		FilenameTemplate:   a.Config.Invoice.FilenameTemplate,
	}

	if name, _ := flags.GetString("client"); name != "" {
		saved, err := a.ClientRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrClientNotFound) {
				return form, fmt.Errorf("no saved client named %q", name)
			}
			return form, err
		}
		form = withClient(form, saved.ToClientData())
		form.HourlyRate = saved.HourlyRate
	} else if last, err := a.SettingsRepo.GetLastClient(ctx); err == nil {
		form = withClient(form, last)
	}

	stringFlags := map[string]*string{
		"client-name":     &form.ClientName,
		"client-address1": &form.ClientAddressLine1,
		"client-address2": &form.ClientAddressLine2,
		"client-email":    &form.ClientEmail,
		"description":     &form.ServiceDescription,
		"notes":           &form.Notes,
		"date":            &form.InvoiceDate,
		"number":          &form.InvoiceNumber,
		"template":        &form.FilenameTemplate,
	}
	for name, dest := range stringFlags {
		if flags.Changed(name) {
			*dest, _ = flags.GetString(name)
		}
	}

	for name, dest := range map[string]*decimal.Decimal{"rate": &form.HourlyRate, "hours": &form.HoursWorked} {
		if !flags.Changed(name) {
			continue
		}
		raw, _ := flags.GetString(name)
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return form, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
		}
		*dest = d
	}

	return form, nil
}

func withClient(form domain.InvoiceForm, c domain.ClientData) domain.InvoiceForm {
	filled := domain.FormFromClient(c)
	form.ClientName = filled.ClientName
	form.ClientAddressLine1 = filled.ClientAddressLine1
	form.ClientAddressLine2 = filled.ClientAddressLine2
	form.ClientEmail = filled.ClientEmail
	return form
}

func init() {
	generateCmd.Flags().String("data", "", "Render an InvoiceData JSON file (- for stdin)")
	generateCmd.Flags().String("client", "", "Saved client name")
	generateCmd.Flags().String("client-name", "", "Client name")
	generateCmd.Flags().String("client-address1", "", "Client address line 1")
	generateCmd.Flags().String("client-address2", "", "Client address line 2")
	generateCmd.Flags().String("client-email", "", "Client email")
	generateCmd.Flags().String("rate", "", "Hourly rate")
	generateCmd.Flags().String("hours", "", "Hours worked")
	generateCmd.Flags().String("description", "", "Service description")
	generateCmd.Flags().String("notes", "", "Notes printed below the payment information")
	generateCmd.Flags().String("date", "", "Invoice date as printed (default: today)")
	generateCmd.Flags().String("number", "", "Invoice number (default: next in sequence)")
	generateCmd.Flags().String("template", "", "Filename template ({sequence}, {year}, {client})")
	generateCmd.Flags().String("out", "", "Output path (overrides the filename template)")
	generateCmd.Flags().Bool("open", false, "Open the PDF after generating")
}
