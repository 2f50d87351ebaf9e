package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andy/invoicer/internal/domain"
	"github.com/andy/invoicer/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrSettingsMissing = errors.New("bank and address settings must be saved before generating an invoice")
	ErrEmptyFilename   = errors.New("filename template expands to an empty name")
)

// Renderer writes an invoice to a PDF file
type Renderer interface {
	Render(inv domain.InvoiceData, destination string) error
}

// InvoiceService turns form input and saved settings into rendered invoices
type InvoiceService interface {
	// Prepare validates the form, merges saved settings and numbering,
	// and returns the invoice together with its destination path
	Prepare(ctx context.Context, form domain.InvoiceForm) (domain.InvoiceData, string, error)

	// Generate renders the invoice to path and records it in history
	Generate(ctx context.Context, inv domain.InvoiceData, path string) (string, error)

	// CommitSequence advances the stored invoice sequence to n if n is higher
	CommitSequence(ctx context.Context, n int) error

	// History lists generated invoices, newest first
	History(ctx context.Context, limit int) ([]*domain.GeneratedInvoice, error)
}

// Options configures an InvoiceService
type Options struct {
	OutputDir  string
	DateFormat string
	Logger     *zap.Logger
	Now        func() time.Time
}

type invoiceService struct {
	renderer     Renderer
	settingsRepo repository.SettingsRepository
	historyRepo  repository.HistoryRepository
	outputDir    string
	dateFormat   string
	logger       *zap.Logger
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	renderer Renderer,
	settingsRepo repository.SettingsRepository,
	historyRepo repository.HistoryRepository,
	opts Options,
) InvoiceService {
	s := &invoiceService{
		renderer:     renderer,
		settingsRepo: settingsRepo,
		historyRepo:  historyRepo,
		outputDir:    opts.OutputDir,
		dateFormat:   opts.DateFormat,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.dateFormat == "" {
		s.dateFormat = "2006-01-02"
	}
	return s
}

func (s *invoiceService) Prepare(ctx context.Context, form domain.InvoiceForm) (domain.InvoiceData, string, error) {
	if err := form.Validate(); err != nil {
		return domain.InvoiceData{}, "", err
	}

	bank, err := s.settingsRepo.GetBank(ctx)
	if err != nil {
		return domain.InvoiceData{}, "", settingsErr(err)
	}
	addr, err := s.settingsRepo.GetAddress(ctx)
	if err != nil {
		return domain.InvoiceData{}, "", settingsErr(err)
	}

	number := strings.TrimSpace(form.InvoiceNumber)
	if number == "" {
		seq, err := s.settingsRepo.GetSequence(ctx)
		if err != nil {
			return domain.InvoiceData{}, "", err
		}
		number = strconv.Itoa(seq + 1)
	}

	date := strings.TrimSpace(form.InvoiceDate)
	if date == "" {
		date = s.now().Format(s.dateFormat)
	}

	inv := domain.InvoiceData{
		Client:             form.Client(),
		Bank:               bank,
		Address:            addr,
		ServiceDescription: strings.TrimSpace(form.ServiceDescription),
		HourlyRate:         form.HourlyRate,
		HoursWorked:        form.HoursWorked,
		InvoiceNumber:      number,
		Notes:              domain.Optional(form.Notes),
		InvoiceDate:        date,
	}

	name := ExpandFilename(form.FilenameTemplate, number, inv.Client.Name, s.now())
	if name == "" {
		return domain.InvoiceData{}, "", ErrEmptyFilename
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.outputDir, name)
	}

	// Remembered even if the render later fails, so the form can be re-filled
	if err := s.settingsRepo.SaveLastClient(ctx, inv.Client); err != nil {
		s.logger.Warn("failed to remember last client", zap.Error(err))
	}

	return inv, path, nil
}

func (s *invoiceService) Generate(ctx context.Context, inv domain.InvoiceData, path string) (string, error) {
	if err := s.renderer.Render(inv, path); err != nil {
		s.logger.Error("invoice render failed",
			zap.String("path", path),
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Error(err),
		)
		return "", err
	}

	if n, err := strconv.Atoi(inv.InvoiceNumber); err == nil {
		if err := s.CommitSequence(ctx, n); err != nil {
			s.logger.Warn("failed to advance invoice sequence", zap.Int("sequence", n), zap.Error(err))
		}
	}

	// The PDF exists at this point, so a history failure is only logged
	if err := s.historyRepo.Create(ctx, domain.NewGeneratedInvoice(inv, path)); err != nil {
		s.logger.Warn("failed to record invoice history", zap.String("path", path), zap.Error(err))
	}

	s.logger.Info("invoice generated",
		zap.String("path", path),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("client", inv.Client.Name),
		zap.String("total", inv.Total().StringFixed(2)),
	)
	return path, nil
}

func (s *invoiceService) CommitSequence(ctx context.Context, n int) error {
	current, err := s.settingsRepo.GetSequence(ctx)
	if err != nil {
		return err
	}
	if n <= current {
		return nil
	}
	return s.settingsRepo.SetSequence(ctx, n)
}

func (s *invoiceService) History(ctx context.Context, limit int) ([]*domain.GeneratedInvoice, error) {
	return s.historyRepo.List(ctx, limit)
}

func settingsErr(err error) error {
	if errors.Is(err, repository.ErrSettingNotFound) {
		return fmt.Errorf("%w: %v", ErrSettingsMissing, err)
	}
	return err
}

// ExpandFilename fills {sequence}, {year} and {client} in a filename template
// and appends .pdf unless the result already ends in it
func ExpandFilename(template, sequence, client string, now time.Time) string {
	name := strings.NewReplacer(
		"{sequence}", sanitize(sequence),
		"{year}", strconv.Itoa(now.Year()),
		"{client}", sanitize(client),
	).Replace(strings.TrimSpace(template))

	if name == "" {
		return ""
	}
	// Dots in client names or invoice numbers look like extensions
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// sanitize makes a value safe to embed in a file name
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
}
