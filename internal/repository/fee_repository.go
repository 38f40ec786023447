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

const feeColumns = `id, fee_id, learner_id, description, amount, paid, due_date, term, academic_year, status, date_created`

// FeeRepository provides database access for the fee ledger.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository creates a new instance of FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// Create inserts a new fee assessment.
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	if fee.ID == "" {
		fee.ID = uuid.NewString()
	}
	if fee.DateCreated.IsZero() {
		fee.DateCreated = time.Now().UTC()
	}
	const query = `INSERT INTO fees (id, fee_id, learner_id, description, amount, paid, due_date, term, academic_year, status, date_created)
		VALUES (:id, :fee_id, :learner_id, :description, :amount, :paid, :due_date, :term, :academic_year, :status, :date_created)`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("create fee: %w", err)
	}
	return nil
}

// FindByFeeID returns a fee by display identifier.
func (r *FeeRepository) FindByFeeID(ctx context.Context, feeID string) (*models.Fee, error) {
	query := fmt.Sprintf(`SELECT %s FROM fees WHERE fee_id = $1 LIMIT 1`, feeColumns)
	var fee models.Fee
	if err := r.db.GetContext(ctx, &fee, query, feeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find fee: %w", err)
	}
	return &fee, nil
}

// List returns fees joined with learner names, optionally for one
// learner.
func (r *FeeRepository) List(ctx context.Context, learnerID string) ([]models.FeeDetail, error) {
	query := `SELECT f.id, f.fee_id, f.learner_id, f.description, f.amount, f.paid, f.due_date, f.term, f.academic_year, f.status, f.date_created,
		COALESCE(l.first_name || ' ' || l.last_name, '') AS learner_name
		FROM fees f
		LEFT JOIN learners l ON f.learner_id = l.learner_id
		WHERE 1=1`
	var args []interface{}
	if learnerID != "" {
		args = append(args, learnerID)
		query += fmt.Sprintf(" AND f.learner_id = $%d", len(args))
	}
	query += " ORDER BY f.date_created DESC"

	fees := []models.FeeDetail{}
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}

// ApplyPayment records a payment and rebalances the parent fee inside
// one transaction. The payment row, the paid increment and the status
// recompute land together or not at all; an unknown fee aborts the
// whole operation with sql.ErrNoRows.
func (r *FeeRepository) ApplyPayment(ctx context.Context, payment *models.FeePayment) (*models.Fee, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin payment tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := fmt.Sprintf(`SELECT %s FROM fees WHERE fee_id = $1 FOR UPDATE`, feeColumns)
	var fee models.Fee
	if err := tx.GetContext(ctx, &fee, query, payment.FeeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock fee for payment: %w", err)
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.DatePaid.IsZero() {
		payment.DatePaid = time.Now().UTC()
	}
	const insertQuery = `INSERT INTO fee_payments (id, payment_id, fee_id, learner_id, amount, payment_method, reference, received_by, date_paid, notes)
		VALUES (:id, :payment_id, :fee_id, :learner_id, :amount, :payment_method, :reference, :received_by, :date_paid, :notes)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, payment); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	fee.Paid += payment.Amount
	if fee.Paid >= fee.Amount {
		fee.Status = models.FeePaid
	} else {
		fee.Status = models.FeePartial
	}

	const updateQuery = `UPDATE fees SET paid = $2, status = $3 WHERE fee_id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, fee.FeeID, fee.Paid, fee.Status); err != nil {
		return nil, fmt.Errorf("rebalance fee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment tx: %w", err)
	}
	return &fee, nil
}

// ListPayments returns payments matching the filter.
func (r *FeeRepository) ListPayments(ctx context.Context, filter models.FeePaymentFilter) ([]models.FeePayment, error) {
	query := `SELECT id, payment_id, fee_id, learner_id, amount, payment_method, reference, received_by, date_paid, notes FROM fee_payments WHERE 1=1`
	var args []interface{}
	if filter.LearnerID != "" {
		args = append(args, filter.LearnerID)
		query += fmt.Sprintf(" AND learner_id = $%d", len(args))
	}
	if filter.FeeID != "" {
		args = append(args, filter.FeeID)
		query += fmt.Sprintf(" AND fee_id = $%d", len(args))
	}
	query += " ORDER BY date_paid DESC"

	payments := []models.FeePayment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Totals returns the system-wide assessed and collected sums.
func (r *FeeRepository) Totals(ctx context.Context) (assessed, collected float64, err error) {
	const query = `SELECT COALESCE(SUM(amount), 0) AS assessed, COALESCE(SUM(paid), 0) AS collected FROM fees`
	var row struct {
		Assessed  float64 `db:"assessed"`
		Collected float64 `db:"collected"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, fmt.Errorf("fee totals: %w", err)
	}
	return row.Assessed, row.Collected, nil
}
