package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andy/invoicer/internal/db"
	"github.com/andy/invoicer/internal/domain"
)

// SettingsRepo is a SQLite implementation of SettingsRepository.
// Each setting is one row holding a JSON document.
type SettingsRepo struct {
	db *db.DB
}

// NewSettingsRepo creates a new SettingsRepo
func NewSettingsRepo(database *db.DB) *SettingsRepo {
	return &SettingsRepo{db: database}
}

func (r *SettingsRepo) GetBank(ctx context.Context) (domain.BankData, error) {
	var bank domain.BankData
	err := r.get(ctx, KeyBankData, &bank)
	return bank, err
}

func (r *SettingsRepo) SaveBank(ctx context.Context, bank domain.BankData) error {
	return r.put(ctx, KeyBankData, bank)
}

func (r *SettingsRepo) GetAddress(ctx context.Context) (domain.AddressData, error) {
	var addr domain.AddressData
	err := r.get(ctx, KeyAddressData, &addr)
	return addr, err
}

func (r *SettingsRepo) SaveAddress(ctx context.Context, addr domain.AddressData) error {
	return r.put(ctx, KeyAddressData, addr)
}

func (r *SettingsRepo) GetSequence(ctx context.Context) (int, error) {
	var n int
	err := r.get(ctx, KeyInvoiceSequence, &n)
	if errors.Is(err, ErrSettingNotFound) {
		return 0, nil
	}
	return n, err
}

func (r *SettingsRepo) SetSequence(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("invoice sequence cannot be negative: %d", n)
	}
	return r.put(ctx, KeyInvoiceSequence, n)
}

func (r *SettingsRepo) GetLastClient(ctx context.Context) (domain.ClientData, error) {
	var client domain.ClientData
	err := r.get(ctx, KeyLastClient, &client)
	return client, err
}

func (r *SettingsRepo) SaveLastClient(ctx context.Context, client domain.ClientData) error {
	return r.put(ctx, KeyLastClient, client)
}

func (r *SettingsRepo) get(ctx context.Context, key string, dest any) error {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return nil
}

func (r *SettingsRepo) put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(raw), formatTime()); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}
