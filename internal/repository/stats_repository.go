package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"github.com/nyatsime/portal-api/internal/models"
)

// StatsRepository aggregates the dashboard counters.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Snapshot collects the portal-wide counters and fee totals.
func (r *StatsRepository) Snapshot(ctx context.Context) (*models.Stats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM learners WHERE approved = TRUE) AS total_learners,
		(SELECT COUNT(*) FROM learners WHERE approved = FALSE) AS pending_learners,
		(SELECT COUNT(*) FROM staff) AS total_staff,
		(SELECT COUNT(*) FROM marks) AS total_marks,
		(SELECT COUNT(*) FROM textbooks) AS total_books,
		(SELECT COUNT(*) FROM notices) AS total_notices,
		(SELECT COALESCE(SUM(amount), 0) FROM fees) AS fees_assessed,
		(SELECT COALESCE(SUM(paid), 0) FROM fees) AS fees_collected,
		(SELECT COUNT(*) FROM learners WHERE fees_blocked = TRUE) AS blocked_learners`

	var row struct {
		TotalLearners   int     `db:"total_learners"`
		PendingLearners int     `db:"pending_learners"`
		TotalStaff      int     `db:"total_staff"`
		TotalMarks      int     `db:"total_marks"`
		TotalBooks      int     `db:"total_books"`
		TotalNotices    int     `db:"total_notices"`
		FeesAssessed    float64 `db:"fees_assessed"`
		FeesCollected   float64 `db:"fees_collected"`
		BlockedLearners int     `db:"blocked_learners"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("stats snapshot: %w", err)
	}

	return &models.Stats{
		TotalLearners:   row.TotalLearners,
		PendingLearners: row.PendingLearners,
		TotalStaff:      row.TotalStaff,
		TotalMarks:      row.TotalMarks,
		TotalBooks:      row.TotalBooks,
		TotalNotices:    row.TotalNotices,
		FeesCollected:   round2(row.FeesCollected),
		FeesOutstanding: round2(row.FeesAssessed - row.FeesCollected),
		BlockedLearners: row.BlockedLearners,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
