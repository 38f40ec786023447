package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/repository"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type textbookRepository interface {
	Create(ctx context.Context, book *models.Textbook) error
	List(ctx context.Context) ([]models.Textbook, error)
	Issue(ctx context.Context, issue *models.BookIssue) error
	Return(ctx context.Context, issueID, conditionIn string, returnedOn time.Time) error
	ListIssues(ctx context.Context, learnerID string) ([]models.BookIssueDetail, error)
}

// AddTextbookRequest registers a new title in the catalogue.
type AddTextbookRequest struct {
	Title          string `json:"title" validate:"required"`
	Subject        string `json:"subject"`
	GradeLevel     string `json:"grade_level"`
	Author         string `json:"author"`
	Publisher      string `json:"publisher"`
	ISBN           string `json:"isbn"`
	Edition        string `json:"edition"`
	TotalCopies    int    `json:"total_copies" validate:"gte=0"`
	ConditionNotes string `json:"condition_notes"`
}

// IssueBookRequest opens a loan for a learner.
type IssueBookRequest struct {
	BookID       string `json:"book_id" validate:"required"`
	LearnerID    string `json:"learner_id" validate:"required"`
	IssuedBy     string `json:"issued_by"`
	DueDate      string `json:"due_date"`
	ConditionOut string `json:"condition_out"`
	Notes        string `json:"notes"`
}

// ReturnBookRequest closes a loan.
type ReturnBookRequest struct {
	ConditionIn string `json:"condition_in"`
}

// LibraryService runs textbook circulation: the catalogue, the
// issue/return lifecycle and the copy-count bookkeeping. Issuing does
// not check copies_issued against total_copies; the legacy portal
// accepted over-issue and callers rely on that.
type LibraryService struct {
	repo      textbookRepository
	allocator idAllocator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLibraryService constructs a LibraryService.
func NewLibraryService(repo textbookRepository, allocator idAllocator, validate *validator.Validate, logger *zap.Logger) *LibraryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryService{repo: repo, allocator: allocator, validator: validate, logger: logger}
}

// AddTextbook registers a title with no copies out.
func (s *LibraryService) AddTextbook(ctx context.Context, req AddTextbookRequest) (*models.Textbook, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid textbook payload")
	}

	bookID, err := s.allocator.Allocate(ctx, ClassTextbook)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate book id")
	}

	book := &models.Textbook{
		BookID:         bookID,
		Title:          req.Title,
		Subject:        req.Subject,
		GradeLevel:     req.GradeLevel,
		Author:         req.Author,
		Publisher:      req.Publisher,
		ISBN:           req.ISBN,
		Edition:        req.Edition,
		TotalCopies:    req.TotalCopies,
		CopiesIssued:   0,
		ConditionNotes: req.ConditionNotes,
	}
	if err := s.repo.Create(ctx, book); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "book already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create textbook")
	}
	return book, nil
}

// ListTextbooks returns the catalogue.
func (s *LibraryService) ListTextbooks(ctx context.Context) ([]models.Textbook, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list textbooks")
	}
	return books, nil
}

// Issue opens an outstanding loan and bumps the book's issued count in
// one atomic unit.
func (s *LibraryService) Issue(ctx context.Context, req IssueBookRequest) (*models.BookIssue, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid issue payload")
	}

	issueID, err := s.allocator.Allocate(ctx, ClassBookIssue)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate issue id")
	}

	conditionOut := req.ConditionOut
	if conditionOut == "" {
		conditionOut = "Good"
	}
	issue := &models.BookIssue{
		IssueID:      issueID,
		BookID:       req.BookID,
		LearnerID:    req.LearnerID,
		IssuedBy:     req.IssuedBy,
		DueDate:      req.DueDate,
		ConditionOut: conditionOut,
		Notes:        req.Notes,
	}
	if err := s.repo.Issue(ctx, issue); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue book")
	}

	s.logger.Info("book issued", zap.String("issue_id", issue.IssueID), zap.String("book_id", issue.BookID))
	return issue, nil
}

// Return closes an outstanding loan, handing the copy back to the
// pool. A loan already returned reports not found so a double return
// can never drive the count negative.
func (s *LibraryService) Return(ctx context.Context, issueID string, req ReturnBookRequest) error {
	conditionIn := req.ConditionIn
	if conditionIn == "" {
		conditionIn = "Good"
	}
	if err := s.repo.Return(ctx, issueID, conditionIn, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to return book")
	}

	s.logger.Info("book returned", zap.String("issue_id", issueID))
	return nil
}

// ListIssues returns loans, optionally for one learner.
func (s *LibraryService) ListIssues(ctx context.Context, learnerID string) ([]models.BookIssueDetail, error) {
	issues, err := s.repo.ListIssues(ctx, learnerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list book issues")
	}
	return issues, nil
}
