package render

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"

	"github.com/andy/invoicer/internal/domain"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

const fontFamily = "Helvetica"

// Options configures a Renderer
type Options struct {
	// Compress enables stream compression in the output file
	Compress bool
	// Logger for render events
	Logger *zap.Logger
}

// DefaultOptions returns options suitable for producing invoices
func DefaultOptions() Options {
	return Options{Compress: true}
}

// Renderer draws invoices to PDF files using the built-in Helvetica faces
type Renderer struct {
	compress bool
	family   string
	logger   *zap.Logger
}

// New creates a Renderer
func New(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		compress: opts.Compress,
		family:   fontFamily,
		logger:   logger,
	}
}

// Render lays out the invoice and writes a single page PDF to destination.
// Missing parent directories are created and an existing file is overwritten.
func (r *Renderer) Render(inv domain.InvoiceData, destination string) error {
	data, err := r.Bytes(inv)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return NewError(KindDirectoryCreation, "failed to create directory for", destination, err)
	}

	if err := writeFile(destination, data); err != nil {
		return err
	}

	r.logger.Debug("invoice rendered",
		zap.String("path", destination),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Bytes renders the invoice into an in-memory PDF document
func (r *Renderer) Bytes(inv domain.InvoiceData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Touch both faces up front so a missing font fails before any drawing
	pdf.SetFont(r.family, "B", sizeBody)
	pdf.SetFont(r.family, "", sizeBody)
	if err := pdf.Error(); err != nil {
		return nil, NewError(KindFontLoad, "failed to load font", "", err)
	}

	r.draw(pdf, Layout(inv))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewError(KindIO, "failed to save PDF", "", err)
	}
	return buf.Bytes(), nil
}

// draw replays the page commands onto the fpdf document.
// fpdf measures y downwards from the top edge, so every y is flipped.
func (r *Renderer) draw(pdf *fpdf.Fpdf, page Page) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, t := range page.Texts {
		style := ""
		if t.Bold {
			style = "B"
		}
		pdf.SetFont(r.family, style, t.Size)
		pdf.Text(t.X, PageHeight-t.Y, tr(t.Text))
	}

	for _, l := range page.Rules {
		pdf.Line(l.X1, PageHeight-l.Y, l.X2, PageHeight-l.Y)
	}
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return NewError(KindIO, "failed to create PDF file", path, err)
	}

	w := bufio.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		f.Close()
		return NewError(KindIO, "failed to write PDF file", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return NewError(KindIO, "failed to save PDF", path, err)
	}
	if err := f.Close(); err != nil {
		return NewError(KindIO, "failed to close PDF file", path, err)
	}
	return nil
}
