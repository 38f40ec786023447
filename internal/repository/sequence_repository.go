package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SequenceRepository hands out monotonically increasing numbers per
// entity class. The bump is a single atomic upsert, so concurrent
// allocations can never observe the same value.
type SequenceRepository struct {
	db *sqlx.DB
}

// NewSequenceRepository creates a new instance of SequenceRepository.
func NewSequenceRepository(db *sqlx.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next returns the next number in the named sequence, starting at 1.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	const query = `INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`
	var value int64
	if err := r.db.GetContext(ctx, &value, query, name); err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return value, nil
}
