package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PetStateKey is the single document key the pet record lives under.
const PetStateKey = "pet"

// StateRepo stores the serialized pet record. The document is replaced
// wholesale on every write; a crash between mutation and persistence loses
// at most the latest event, never corrupts prior state.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Load returns the stored document, or nil if none has been written yet.
func (r *StateRepo) Load(ctx context.Context) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM pet_state WHERE key = ?`, PetStateKey)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("pet state load: %w", err)
	}
	return []byte(data), nil
}

func (r *StateRepo) Save(ctx context.Context, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_state (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, PetStateKey, string(data))
	if err != nil {
		return fmt.Errorf("pet state save: %w", err)
	}
	return nil
}
