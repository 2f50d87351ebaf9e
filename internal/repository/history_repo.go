package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/invoicer/internal/db"
	"github.com/andy/invoicer/internal/domain"
	"github.com/google/uuid"
)

const historyColumns = `id, invoice_number, client_name, invoice_date, total, file_path, created_at`

// HistoryRepo is a SQLite implementation of HistoryRepository
type HistoryRepo struct {
	db *db.DB
}

// NewHistoryRepo creates a new HistoryRepo
func NewHistoryRepo(database *db.DB) *HistoryRepo {
	return &HistoryRepo{db: database}
}

// Create records a generated invoice
func (r *HistoryRepo) Create(ctx context.Context, inv *domain.GeneratedInvoice) error {
	query := `INSERT INTO invoice_history (` + historyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID.String(),
		inv.InvoiceNumber,
		inv.ClientName,
		inv.InvoiceDate,
		inv.Total.StringFixed(2),
		inv.FilePath,
		inv.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record invoice: %w", err)
	}
	return nil
}

// List returns generated invoices, newest first
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]*domain.GeneratedInvoice, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM invoice_history ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*domain.GeneratedInvoice, 0)
	for rows.Next() {
		inv, err := scanGenerated(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}
	return invoices, nil
}

// GetByNumber returns the most recent record for an invoice number
func (r *HistoryRepo) GetByNumber(ctx context.Context, number string) (*domain.GeneratedInvoice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM invoice_history WHERE invoice_number = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		number,
	)
	inv, err := scanGenerated(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	return inv, err
}

func scanGenerated(s scanner) (*domain.GeneratedInvoice, error) {
	inv := &domain.GeneratedInvoice{}
	var id, createdAt string

	err := s.Scan(&id, &inv.InvoiceNumber, &inv.ClientName, &inv.InvoiceDate, &inv.Total, &inv.FilePath, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}

	if inv.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse invoice id: %w", err)
	}
	if inv.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return inv, nil
}
