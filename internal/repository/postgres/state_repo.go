package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
)

// StateRepository implements domain.StateRepository using PostgreSQL.
// One row per (session, key); Save upserts the full value.
type StateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

// Load retrieves the value stored for a session key
func (r *StateRepository) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value []byte
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM client_state WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrStateNotFound
		}
		return nil, err
	}
	return value, nil
}

// Save stores the value for a session key, overwriting any previous value
func (r *StateRepository) Save(ctx context.Context, sessionID, key string, value []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO client_state (session_id, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (session_id, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		sessionID, key, value,
	)
	return err
}

// Delete removes the value for a session key; missing rows are not an error
func (r *StateRepository) Delete(ctx context.Context, sessionID, key string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM client_state WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	)
	return err
}
