package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Setting keys.
const (
	SettingPetName    = "pet.name"
	SettingSyncToken  = "sync.token"
	SettingSyncGistID = "sync.gist_id"
	SettingSyncDevice = "sync.device_id"
)

// SettingsRepo is a small key/value store for values that must not live
// inside the pet record itself (sync credential, document id, device id).
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored value, or "" if the key is unset.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("setting get %q: %w", key, err)
	}
	return value, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting set %q: %w", key, err)
	}
	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("setting delete %q: %w", key, err)
	}
	return nil
}

// DeleteMany removes a group of keys atomically. Used when tearing down the
// sync configuration, where credential and document id must go together.
func (r *SettingsRepo) DeleteMany(ctx context.Context, keys ...string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
				return fmt.Errorf("setting delete %q: %w", key, err)
			}
		}
		return nil
	})
}
