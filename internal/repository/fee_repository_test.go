package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
)

func newFeeRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func feeRows(feeID string, amount, paid float64, status models.FeeStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "fee_id", "learner_id", "description", "amount", "paid", "due_date", "term", "academic_year", "status", "date_created"}).
		AddRow("row-1", feeID, "LRN-0001", "Term 1 tuition", amount, paid, "2026-04-30", "Term 1", "2026", status, time.Now())
}

func TestFeeRepositoryApplyPaymentPartial(t *testing.T) {
	db, mock, cleanup := newFeeRepoMock(t)
	defer cleanup()

	repo := NewFeeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, fee_id, learner_id, description, amount, paid, due_date, term, academic_year, status, date_created FROM fees WHERE fee_id = $1 FOR UPDATE")).
		WithArgs("FEE-0001").
		WillReturnRows(feeRows("FEE-0001", 100, 0, models.FeeUnpaid))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fee_payments")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fees SET paid = $2, status = $3 WHERE fee_id = $1")).
		WithArgs("FEE-0001", 40.0, "Partial").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	fee, err := repo.ApplyPayment(context.Background(), &models.FeePayment{
		PaymentID:     "PAY-0001",
		FeeID:         "FEE-0001",
		LearnerID:     "LRN-0001",
		Amount:        40,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	require.Equal(t, 40.0, fee.Paid)
	require.Equal(t, models.FeePartial, fee.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryApplyPaymentSettles(t *testing.T) {
	db, mock, cleanup := newFeeRepoMock(t)
	defer cleanup()

	repo := NewFeeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM fees WHERE fee_id = $1 FOR UPDATE")).
		WithArgs("FEE-0001").
		WillReturnRows(feeRows("FEE-0001", 100, 40, models.FeePartial))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fee_payments")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fees SET paid = $2, status = $3 WHERE fee_id = $1")).
		WithArgs("FEE-0001", 100.0, "Paid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	fee, err := repo.ApplyPayment(context.Background(), &models.FeePayment{
		PaymentID: "PAY-0002",
		FeeID:     "FEE-0001",
		LearnerID: "LRN-0001",
		Amount:    60,
	})
	require.NoError(t, err)
	require.Equal(t, models.FeePaid, fee.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryApplyPaymentUnknownFeeRollsBack(t *testing.T) {
	db, mock, cleanup := newFeeRepoMock(t)
	defer cleanup()

	repo := NewFeeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM fees WHERE fee_id = $1 FOR UPDATE")).
		WithArgs("FEE-9999").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.ApplyPayment(context.Background(), &models.FeePayment{
		PaymentID: "PAY-0003",
		FeeID:     "FEE-9999",
		LearnerID: "LRN-0001",
		Amount:    40,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryCreateAndTotals(t *testing.T) {
	db, mock, cleanup := newFeeRepoMock(t)
	defer cleanup()

	repo := NewFeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fees")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), &models.Fee{
		FeeID:       "FEE-0001",
		LearnerID:   "LRN-0001",
		Description: "Term 1 tuition",
		Amount:      100,
		Status:      models.FeeUnpaid,
	}))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) AS assessed")).
		WillReturnRows(sqlmock.NewRows([]string{"assessed", "collected"}).AddRow(100.0, 40.0))
	assessed, collected, err := repo.Totals(context.Background())
	require.NoError(t, err)
	require.Equal(t, 100.0, assessed)
	require.Equal(t, 40.0, collected)
	require.NoError(t, mock.ExpectationsWereMet())
}
