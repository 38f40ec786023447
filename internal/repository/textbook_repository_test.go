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

func newTextbookRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func issueRows(issueID, bookID string, returned *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "issue_id", "book_id", "learner_id", "issued_by", "date_issued", "due_date", "date_returned", "condition_out", "condition_in", "notes"}).
		AddRow("row-1", issueID, bookID, "LRN-0001", "STF-0001", time.Now(), "2026-09-30", returned, "Good", nil, "")
}

func TestTextbookRepositoryIssueBumpsCount(t *testing.T) {
	db, mock, cleanup := newTextbookRepoMock(t)
	defer cleanup()

	repo := NewTextbookRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO book_issues")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE textbooks SET copies_issued = copies_issued + 1 WHERE book_id = $1")).
		WithArgs("BK-0001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Issue(context.Background(), &models.BookIssue{
		IssueID:      "ISS-0001",
		BookID:       "BK-0001",
		LearnerID:    "LRN-0001",
		ConditionOut: "Good",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTextbookRepositoryReturnClosesLoan(t *testing.T) {
	db, mock, cleanup := newTextbookRepoMock(t)
	defer cleanup()

	repo := NewTextbookRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM book_issues WHERE issue_id = $1 FOR UPDATE")).
		WithArgs("ISS-0001").
		WillReturnRows(issueRows("ISS-0001", "BK-0001", nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE book_issues SET date_returned = $2, condition_in = $3 WHERE issue_id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE textbooks SET copies_issued = GREATEST(0, copies_issued - 1) WHERE book_id = $1")).
		WithArgs("BK-0001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Return(context.Background(), "ISS-0001", "Good", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTextbookRepositoryReturnAlreadyReturned(t *testing.T) {
	db, mock, cleanup := newTextbookRepoMock(t)
	defer cleanup()

	repo := NewTextbookRepository(db)

	returnedAt := time.Now().Add(-24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM book_issues WHERE issue_id = $1 FOR UPDATE")).
		WithArgs("ISS-0001").
		WillReturnRows(issueRows("ISS-0001", "BK-0001", &returnedAt))
	mock.ExpectRollback()

	err := repo.Return(context.Background(), "ISS-0001", "Good", time.Now().UTC())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTextbookRepositoryReturnUnknownIssue(t *testing.T) {
	db, mock, cleanup := newTextbookRepoMock(t)
	defer cleanup()

	repo := NewTextbookRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM book_issues WHERE issue_id = $1 FOR UPDATE")).
		WithArgs("ISS-9999").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Return(context.Background(), "ISS-9999", "Good", time.Now().UTC())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTextbookRepositoryCreateAndList(t *testing.T) {
	db, mock, cleanup := newTextbookRepoMock(t)
	defer cleanup()

	repo := NewTextbookRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO textbooks")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), &models.Textbook{
		BookID:      "BK-0001",
		Title:       "Shona Grammar",
		TotalCopies: 5,
	}))

	rows := sqlmock.NewRows([]string{"id", "book_id", "title", "subject", "grade_level", "author", "publisher", "isbn", "edition", "total_copies", "copies_issued", "condition_notes"}).
		AddRow("row-1", "BK-0001", "Shona Grammar", "Shona", "Form 2", "", "", "", "", 5, 1, "")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, book_id, title")).
		WillReturnRows(rows)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, 1, books[0].CopiesIssued)
	require.NoError(t, mock.ExpectationsWereMet())
}
