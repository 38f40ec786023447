package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
)

func newLearnerRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var learnerHeader = []string{"id", "learner_id", "first_name", "last_name", "email", "password_hash", "phone", "address", "id_number", "grade", "date_of_birth", "gender", "next_of_kin_name", "next_of_kin_relationship", "next_of_kin_phone", "next_of_kin_email", "enrollment_date", "status", "fees_blocked", "approved", "created_at"}

func TestLearnerRepositorySetApproved(t *testing.T) {
	db, mock, cleanup := newLearnerRepoMock(t)
	defer cleanup()

	repo := NewLearnerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE learners SET approved = $2 WHERE learner_id = $1")).
		WithArgs("LRN-0001", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetApproved(context.Background(), "LRN-0001", true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLearnerRepositoryDeleteUnapprovedGuarded(t *testing.T) {
	db, mock, cleanup := newLearnerRepoMock(t)
	defer cleanup()

	repo := NewLearnerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM learners WHERE learner_id = $1 AND approved = FALSE")).
		WithArgs("LRN-0001").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteUnapproved(context.Background(), "LRN-0001"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLearnerRepositorySetFeesBlocked(t *testing.T) {
	db, mock, cleanup := newLearnerRepoMock(t)
	defer cleanup()

	repo := NewLearnerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE learners SET fees_blocked = $2 WHERE learner_id = $1")).
		WithArgs("LRN-0001", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetFeesBlocked(context.Background(), "LRN-0001", true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLearnerRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newLearnerRepoMock(t)
	defer cleanup()

	repo := NewLearnerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM learners WHERE 1=1 AND grade = $1 AND approved = $2")).
		WithArgs("Form 2A", false).
		WillReturnRows(sqlmock.NewRows(learnerHeader))

	approved := false
	learners, err := repo.List(context.Background(), models.LearnerFilter{Grade: "Form 2A", Approved: &approved})
	require.NoError(t, err)
	require.Empty(t, learners)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLearnerRepositoryFindByEmailMissing(t *testing.T) {
	db, mock, cleanup := newLearnerRepoMock(t)
	defer cleanup()

	repo := NewLearnerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM learners WHERE LOWER(email) = LOWER($1)")).
		WithArgs("nobody@nyatsimestudent.ac.zw").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@nyatsimestudent.ac.zw")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
