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

const staffColumns = `id, staff_id, first_name, last_name, email, password_hash, phone, address, id_number, subject, classes_taught, next_of_kin_name, next_of_kin_phone, date_employed, role, gender, date_of_birth, qualification, photo, status, approved, created_at`

// StaffRepository provides database access for staff records.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create inserts a new staff member.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO staff (id, staff_id, first_name, last_name, email, password_hash, phone, address, id_number, subject, classes_taught, next_of_kin_name, next_of_kin_phone, date_employed, role, gender, date_of_birth, qualification, photo, status, approved, created_at)
		VALUES (:id, :staff_id, :first_name, :last_name, :email, :password_hash, :phone, :address, :id_number, :subject, :classes_taught, :next_of_kin_name, :next_of_kin_phone, :date_employed, :role, :gender, :date_of_birth, :qualification, :photo, :status, :approved, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// FindByEmail returns a staff member by lowercased email.
func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE LOWER(email) = LOWER($1) LIMIT 1`, staffColumns)
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	return &staff, nil
}

// FindByStaffID returns a staff member by display identifier.
func (r *StaffRepository) FindByStaffID(ctx context.Context, staffID string) (*models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE staff_id = $1 LIMIT 1`, staffColumns)
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, staffID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	return &staff, nil
}

// List returns the full staff roster.
func (r *StaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff ORDER BY staff_id`, staffColumns)
	staff := []models.Staff{}
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// Update persists the mutable fields of a staff member.
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	const query = `UPDATE staff SET first_name = :first_name, last_name = :last_name, email = :email, password_hash = :password_hash, phone = :phone, address = :address, id_number = :id_number, subject = :subject, classes_taught = :classes_taught, next_of_kin_name = :next_of_kin_name, next_of_kin_phone = :next_of_kin_phone, date_employed = :date_employed, role = :role, gender = :gender, date_of_birth = :date_of_birth, qualification = :qualification, photo = :photo, status = :status WHERE staff_id = :staff_id`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// Delete removes a staff member by display identifier.
func (r *StaffRepository) Delete(ctx context.Context, staffID string) error {
	const query = `DELETE FROM staff WHERE staff_id = $1`
	if _, err := r.db.ExecContext(ctx, query, staffID); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}
