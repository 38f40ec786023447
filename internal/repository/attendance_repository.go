package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyatsime/portal-api/internal/models"
)

// AttendanceRepository provides database access for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert writes an attendance record keyed on (learner_id, date,
// subject). A later submission for the same key replaces the earlier
// status and reason.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO attendance (id, learner_id, date, status, grade, subject, staff_id, reason)
		VALUES (:id, :learner_id, :date, :status, :grade, :subject, :staff_id, :reason)
		ON CONFLICT (learner_id, date, subject) DO UPDATE SET
			status = EXCLUDED.status,
			grade = EXCLUDED.grade,
			staff_id = EXCLUDED.staff_id,
			reason = EXCLUDED.reason`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// List returns attendance records matching the filter joined with the
// learner name.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, error) {
	query := `SELECT a.id, a.learner_id, a.date, a.status, a.grade, a.subject, a.staff_id, a.reason,
		COALESCE(l.first_name || ' ' || l.last_name, '') AS learner_name
		FROM attendance a
		LEFT JOIN learners l ON a.learner_id = l.learner_id
		WHERE 1=1`
	var args []interface{}

	if filter.LearnerID != "" {
		args = append(args, filter.LearnerID)
		query += fmt.Sprintf(" AND a.learner_id = $%d", len(args))
	}
	if filter.Grade != "" {
		args = append(args, filter.Grade)
		query += fmt.Sprintf(" AND a.grade = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" AND a.date = $%d", len(args))
	}
	query += " ORDER BY a.date DESC"

	records := []models.AttendanceDetail{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// StatusCounts aggregates a learner's attendance by status.
func (r *AttendanceRepository) StatusCounts(ctx context.Context, learnerID string) (map[string]int, error) {
	const query = `SELECT status, COUNT(*) AS cnt FROM attendance WHERE learner_id = $1 GROUP BY status`
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, learnerID); err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
