package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type fakeTextbookRepo struct {
	books  map[string]*models.Textbook
	issues map[string]*models.BookIssue
}

func (f *fakeTextbookRepo) Create(ctx context.Context, book *models.Textbook) error {
	if f.books == nil {
		f.books = make(map[string]*models.Textbook)
	}
	copied := *book
	f.books[book.BookID] = &copied
	return nil
}

func (f *fakeTextbookRepo) List(ctx context.Context) ([]models.Textbook, error) {
	var out []models.Textbook
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeTextbookRepo) Issue(ctx context.Context, issue *models.BookIssue) error {
	if f.issues == nil {
		f.issues = make(map[string]*models.BookIssue)
	}
	copied := *issue
	f.issues[issue.IssueID] = &copied
	if b, ok := f.books[issue.BookID]; ok {
		b.CopiesIssued++
	}
	return nil
}

func (f *fakeTextbookRepo) Return(ctx context.Context, issueID, conditionIn string, returnedOn time.Time) error {
	issue, ok := f.issues[issueID]
	if !ok || issue.Returned() {
		return sql.ErrNoRows
	}
	issue.DateReturned = &returnedOn
	issue.ConditionIn = &conditionIn
	if b, ok := f.books[issue.BookID]; ok {
		if b.CopiesIssued > 0 {
			b.CopiesIssued--
		}
	}
	return nil
}

func (f *fakeTextbookRepo) ListIssues(ctx context.Context, learnerID string) ([]models.BookIssueDetail, error) {
	var out []models.BookIssueDetail
	for _, i := range f.issues {
		if learnerID == "" || i.LearnerID == learnerID {
			out = append(out, models.BookIssueDetail{BookIssue: *i})
		}
	}
	return out, nil
}

func newTestLibraryService() (*fakeTextbookRepo, *LibraryService) {
	repo := &fakeTextbookRepo{}
	return repo, NewLibraryService(repo, &fakeAllocator{}, nil, nil)
}

func TestIssueAndReturnRoundtrip(t *testing.T) {
	repo, svc := newTestLibraryService()

	book, err := svc.AddTextbook(context.Background(), AddTextbookRequest{
		Title:       "Shona Grammar",
		TotalCopies: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "BK-0001", book.BookID)
	assert.Zero(t, book.CopiesIssued)

	issue, err := svc.Issue(context.Background(), IssueBookRequest{
		BookID:    book.BookID,
		LearnerID: "LRN-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "ISS-0001", issue.IssueID)
	assert.Equal(t, "Good", issue.ConditionOut)
	assert.Equal(t, 1, repo.books[book.BookID].CopiesIssued)

	require.NoError(t, svc.Return(context.Background(), issue.IssueID, ReturnBookRequest{}))
	assert.Equal(t, 0, repo.books[book.BookID].CopiesIssued)

	returned := repo.issues[issue.IssueID]
	require.NotNil(t, returned.DateReturned)
	require.NotNil(t, returned.ConditionIn)
	assert.Equal(t, "Good", *returned.ConditionIn)
}

func TestDoubleReturnIsNotFound(t *testing.T) {
	repo, svc := newTestLibraryService()

	book, err := svc.AddTextbook(context.Background(), AddTextbookRequest{Title: "Biology", TotalCopies: 2})
	require.NoError(t, err)

	issue, err := svc.Issue(context.Background(), IssueBookRequest{BookID: book.BookID, LearnerID: "LRN-0001"})
	require.NoError(t, err)

	require.NoError(t, svc.Return(context.Background(), issue.IssueID, ReturnBookRequest{}))

	err = svc.Return(context.Background(), issue.IssueID, ReturnBookRequest{})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, 0, repo.books[book.BookID].CopiesIssued)
}

func TestReturnUnknownIssueIsNotFound(t *testing.T) {
	_, svc := newTestLibraryService()

	err := svc.Return(context.Background(), "ISS-9999", ReturnBookRequest{})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestOverIssueAccepted(t *testing.T) {
	repo, svc := newTestLibraryService()

	book, err := svc.AddTextbook(context.Background(), AddTextbookRequest{Title: "History", TotalCopies: 1})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Issue(context.Background(), IssueBookRequest{BookID: book.BookID, LearnerID: "LRN-0001"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, repo.books[book.BookID].CopiesIssued)
}

func TestIssueKeepsExplicitCondition(t *testing.T) {
	_, svc := newTestLibraryService()

	book, err := svc.AddTextbook(context.Background(), AddTextbookRequest{Title: "Geography", TotalCopies: 1})
	require.NoError(t, err)

	issue, err := svc.Issue(context.Background(), IssueBookRequest{
		BookID:       book.BookID,
		LearnerID:    "LRN-0001",
		ConditionOut: "Worn",
	})
	require.NoError(t, err)
	assert.Equal(t, "Worn", issue.ConditionOut)
}
