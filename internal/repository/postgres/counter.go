package postgres

import (
	"context"
	"database/sql"
)

// CounterRepository implements repository.CounterRepository using PostgreSQL.
type CounterRepository struct {
	db *sql.DB
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(db *sql.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next increments the named counter in a single statement, so concurrent callers
// never observe the same value.
func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO counters (name, current_id) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET current_id = counters.current_id + 1
		RETURNING current_id
	`
	var current int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&current); err != nil {
		return 0, err
	}
	return current, nil
}
