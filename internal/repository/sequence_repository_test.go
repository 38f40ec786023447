package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newSequenceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSequenceRepositoryNext(t *testing.T) {
	db, mock, cleanup := newSequenceRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sequences (name, value) VALUES ($1, 1)")).
		WithArgs("learners").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sequences (name, value) VALUES ($1, 1)")).
		WithArgs("learners").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(2)))

	first, err := repo.Next(context.Background(), "learners")
	require.NoError(t, err)
	require.Equal(t, int64(1), first)

	second, err := repo.Next(context.Background(), "learners")
	require.NoError(t, err)
	require.Equal(t, int64(2), second)

	require.NoError(t, mock.ExpectationsWereMet())
}
