package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyatsime/portal-api/internal/models"
)

// MarkRepository provides database access for assessment marks.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository creates a new instance of MarkRepository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// Create inserts a new mark.
func (r *MarkRepository) Create(ctx context.Context, mark *models.Mark) error {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	if mark.DateEntered.IsZero() {
		mark.DateEntered = time.Now().UTC()
	}
	const query = `INSERT INTO marks (id, learner_id, staff_id, subject, assessment_type, grade, term, score, max_score, comment, date_entered)
		VALUES (:id, :learner_id, :staff_id, :subject, :assessment_type, :grade, :term, :score, :max_score, :comment, :date_entered)`
	if _, err := r.db.NamedExecContext(ctx, query, mark); err != nil {
		return fmt.Errorf("create mark: %w", err)
	}
	return nil
}

// List returns marks matching the filter joined with teacher and
// learner names.
func (r *MarkRepository) List(ctx context.Context, filter models.MarkFilter) ([]models.MarkDetail, error) {
	query := `SELECT m.id, m.learner_id, m.staff_id, m.subject, m.assessment_type, m.grade, m.term, m.score, m.max_score, m.comment, m.date_entered,
		COALESCE(s.first_name || ' ' || s.last_name, '') AS teacher_name,
		COALESCE(l.first_name || ' ' || l.last_name, '') AS learner_name
		FROM marks m
		LEFT JOIN staff s ON m.staff_id = s.staff_id
		LEFT JOIN learners l ON m.learner_id = l.learner_id
		WHERE 1=1`
	var args []interface{}

	if filter.LearnerID != "" {
		args = append(args, filter.LearnerID)
		query += fmt.Sprintf(" AND m.learner_id = $%d", len(args))
	}
	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		query += fmt.Sprintf(" AND m.staff_id = $%d", len(args))
	}
	if filter.Grade != "" {
		args = append(args, filter.Grade)
		query += fmt.Sprintf(" AND m.grade = $%d", len(args))
	}
	query += " ORDER BY m.date_entered DESC"

	marks := []models.MarkDetail{}
	if err := r.db.SelectContext(ctx, &marks, query, args...); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// ListByLearner returns a learner's raw marks, optionally restricted to
// one term. Used by report generation.
func (r *MarkRepository) ListByLearner(ctx context.Context, learnerID, term string) ([]models.Mark, error) {
	query := `SELECT id, learner_id, staff_id, subject, assessment_type, grade, term, score, max_score, comment, date_entered FROM marks WHERE learner_id = $1`
	args := []interface{}{learnerID}
	if term != "" {
		args = append(args, term)
		query += fmt.Sprintf(" AND term = $%d", len(args))
	}
	marks := []models.Mark{}
	if err := r.db.SelectContext(ctx, &marks, query, args...); err != nil {
		return nil, fmt.Errorf("list learner marks: %w", err)
	}
	return marks, nil
}

// Delete removes a mark by identifier.
func (r *MarkRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM marks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete mark: %w", err)
	}
	return nil
}
