package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyatsime/portal-api/internal/models"
)

// TimetableRepository provides database access for timetable slots.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new instance of TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// Create inserts a new timetable slot.
func (r *TimetableRepository) Create(ctx context.Context, slot *models.TimetableSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	const query = `INSERT INTO timetable (id, grade, day, period, subject, staff_id, room, start_time, end_time)
		VALUES (:id, :grade, :day, :period, :subject, :staff_id, :room, :start_time, :end_time)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create timetable slot: %w", err)
	}
	return nil
}

// List returns timetable slots, optionally for one grade, ordered by
// day then period.
func (r *TimetableRepository) List(ctx context.Context, grade string) ([]models.TimetableDetail, error) {
	query := `SELECT t.id, t.grade, t.day, t.period, t.subject, t.staff_id, t.room, t.start_time, t.end_time,
		COALESCE(s.first_name || ' ' || s.last_name, '') AS teacher_name
		FROM timetable t
		LEFT JOIN staff s ON t.staff_id = s.staff_id`
	var args []interface{}
	if grade != "" {
		query += " WHERE t.grade = $1"
		args = append(args, grade)
	}
	query += " ORDER BY t.day, t.period"

	slots := []models.TimetableDetail{}
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return slots, nil
}

// Delete removes a timetable slot by identifier.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM timetable WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete timetable slot: %w", err)
	}
	return nil
}
