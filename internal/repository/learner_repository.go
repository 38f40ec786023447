package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyatsime/portal-api/internal/models"
)

const learnerColumns = `id, learner_id, first_name, last_name, email, password_hash, phone, address, id_number, grade, date_of_birth, gender, next_of_kin_name, next_of_kin_relationship, next_of_kin_phone, next_of_kin_email, enrollment_date, status, fees_blocked, approved, created_at`

// LearnerRepository provides database access for learner records.
type LearnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository creates a new instance of LearnerRepository.
func NewLearnerRepository(db *sqlx.DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// Create inserts a new learner.
func (r *LearnerRepository) Create(ctx context.Context, learner *models.Learner) error {
	if learner.ID == "" {
		learner.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if learner.CreatedAt.IsZero() {
		learner.CreatedAt = now
	}
	if learner.EnrollmentDate.IsZero() {
		learner.EnrollmentDate = now
	}
	const query = `INSERT INTO learners (id, learner_id, first_name, last_name, email, password_hash, phone, address, id_number, grade, date_of_birth, gender, next_of_kin_name, next_of_kin_relationship, next_of_kin_phone, next_of_kin_email, enrollment_date, status, fees_blocked, approved, created_at)
		VALUES (:id, :learner_id, :first_name, :last_name, :email, :password_hash, :phone, :address, :id_number, :grade, :date_of_birth, :gender, :next_of_kin_name, :next_of_kin_relationship, :next_of_kin_phone, :next_of_kin_email, :enrollment_date, :status, :fees_blocked, :approved, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, learner); err != nil {
		return fmt.Errorf("create learner: %w", err)
	}
	return nil
}

// FindByEmail returns a learner by lowercased email.
func (r *LearnerRepository) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	query := fmt.Sprintf(`SELECT %s FROM learners WHERE LOWER(email) = LOWER($1) LIMIT 1`, learnerColumns)
	var learner models.Learner
	if err := r.db.GetContext(ctx, &learner, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find learner by email: %w", err)
	}
	return &learner, nil
}

// FindByLearnerID returns a learner by display identifier.
func (r *LearnerRepository) FindByLearnerID(ctx context.Context, learnerID string) (*models.Learner, error) {
	query := fmt.Sprintf(`SELECT %s FROM learners WHERE learner_id = $1 LIMIT 1`, learnerColumns)
	var learner models.Learner
	if err := r.db.GetContext(ctx, &learner, query, learnerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find learner by id: %w", err)
	}
	return &learner, nil
}

// List returns learners matching the filter.
func (r *LearnerRepository) List(ctx context.Context, filter models.LearnerFilter) ([]models.Learner, error) {
	query := fmt.Sprintf(`SELECT %s FROM learners WHERE 1=1`, learnerColumns)
	var args []interface{}

	if filter.Grade != "" {
		args = append(args, filter.Grade)
		query += fmt.Sprintf(" AND grade = $%d", len(args))
	}
	if filter.Approved != nil {
		args = append(args, *filter.Approved)
		query += fmt.Sprintf(" AND approved = $%d", len(args))
	}
	query += " ORDER BY learner_id"

	learners := []models.Learner{}
	if err := r.db.SelectContext(ctx, &learners, query, args...); err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	return learners, nil
}

// SetApproved flips the approval flag. Approving an already approved
// learner is a no-op at the row level, which keeps the transition
// idempotent.
func (r *LearnerRepository) SetApproved(ctx context.Context, learnerID string, approved bool) error {
	const query = `UPDATE learners SET approved = $2 WHERE learner_id = $1`
	if _, err := r.db.ExecContext(ctx, query, learnerID, approved); err != nil {
		return fmt.Errorf("set learner approved: %w", err)
	}
	return nil
}

// DeleteUnapproved removes a learner only while still unapproved. The
// predicate makes rejection of an active learner a structural no-op.
func (r *LearnerRepository) DeleteUnapproved(ctx context.Context, learnerID string) error {
	const query = `DELETE FROM learners WHERE learner_id = $1 AND approved = FALSE`
	if _, err := r.db.ExecContext(ctx, query, learnerID); err != nil {
		return fmt.Errorf("delete unapproved learner: %w", err)
	}
	return nil
}

// SetFeesBlocked toggles the fee-block flag.
func (r *LearnerRepository) SetFeesBlocked(ctx context.Context, learnerID string, blocked bool) error {
	const query = `UPDATE learners SET fees_blocked = $2 WHERE learner_id = $1`
	if _, err := r.db.ExecContext(ctx, query, learnerID, blocked); err != nil {
		return fmt.Errorf("set learner fees blocked: %w", err)
	}
	return nil
}
