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

const issueColumns = `id, issue_id, book_id, learner_id, issued_by, date_issued, due_date, date_returned, condition_out, condition_in, notes`

// TextbookRepository provides database access for textbooks and their
// circulation records.
type TextbookRepository struct {
	db *sqlx.DB
}

// NewTextbookRepository creates a new instance of TextbookRepository.
func NewTextbookRepository(db *sqlx.DB) *TextbookRepository {
	return &TextbookRepository{db: db}
}

// Create inserts a new textbook.
func (r *TextbookRepository) Create(ctx context.Context, book *models.Textbook) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	const query = `INSERT INTO textbooks (id, book_id, title, subject, grade_level, author, publisher, isbn, edition, total_copies, copies_issued, condition_notes)
		VALUES (:id, :book_id, :title, :subject, :grade_level, :author, :publisher, :isbn, :edition, :total_copies, :copies_issued, :condition_notes)`
	if _, err := r.db.NamedExecContext(ctx, query, book); err != nil {
		return fmt.Errorf("create textbook: %w", err)
	}
	return nil
}

// FindByBookID returns a textbook by display identifier.
func (r *TextbookRepository) FindByBookID(ctx context.Context, bookID string) (*models.Textbook, error) {
	const query = `SELECT id, book_id, title, subject, grade_level, author, publisher, isbn, edition, total_copies, copies_issued, condition_notes FROM textbooks WHERE book_id = $1 LIMIT 1`
	var book models.Textbook
	if err := r.db.GetContext(ctx, &book, query, bookID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find textbook: %w", err)
	}
	return &book, nil
}

// List returns the full catalogue.
func (r *TextbookRepository) List(ctx context.Context) ([]models.Textbook, error) {
	const query = `SELECT id, book_id, title, subject, grade_level, author, publisher, isbn, edition, total_copies, copies_issued, condition_notes FROM textbooks ORDER BY book_id`
	books := []models.Textbook{}
	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		return nil, fmt.Errorf("list textbooks: %w", err)
	}
	return books, nil
}

// Issue records a new loan and increments the book's issued count in
// one transaction.
func (r *TextbookRepository) Issue(ctx context.Context, issue *models.BookIssue) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin issue tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if issue.DateIssued.IsZero() {
		issue.DateIssued = time.Now().UTC()
	}
	const insertQuery = `INSERT INTO book_issues (id, issue_id, book_id, learner_id, issued_by, date_issued, due_date, condition_out, notes)
		VALUES (:id, :issue_id, :book_id, :learner_id, :issued_by, :date_issued, :due_date, :condition_out, :notes)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, issue); err != nil {
		return fmt.Errorf("insert book issue: %w", err)
	}

	const bumpQuery = `UPDATE textbooks SET copies_issued = copies_issued + 1 WHERE book_id = $1`
	if _, err := tx.ExecContext(ctx, bumpQuery, issue.BookID); err != nil {
		return fmt.Errorf("increment copies issued: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit issue tx: %w", err)
	}
	return nil
}

// Return closes an outstanding loan and gives the copy back to the
// book's pool, floored at zero, in one transaction. An unknown or
// already returned issue yields sql.ErrNoRows.
func (r *TextbookRepository) Return(ctx context.Context, issueID, conditionIn string, returnedOn time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin return tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := fmt.Sprintf(`SELECT %s FROM book_issues WHERE issue_id = $1 FOR UPDATE`, issueColumns)
	var issue models.BookIssue
	if err := tx.GetContext(ctx, &issue, query, issueID); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("lock book issue: %w", err)
	}
	if issue.Returned() {
		return sql.ErrNoRows
	}

	const closeQuery = `UPDATE book_issues SET date_returned = $2, condition_in = $3 WHERE issue_id = $1`
	if _, err := tx.ExecContext(ctx, closeQuery, issueID, returnedOn, conditionIn); err != nil {
		return fmt.Errorf("close book issue: %w", err)
	}

	const dropQuery = `UPDATE textbooks SET copies_issued = GREATEST(0, copies_issued - 1) WHERE book_id = $1`
	if _, err := tx.ExecContext(ctx, dropQuery, issue.BookID); err != nil {
		return fmt.Errorf("decrement copies issued: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit return tx: %w", err)
	}
	return nil
}

// ListIssues returns loans joined with book titles and learner names,
// optionally for one learner.
func (r *TextbookRepository) ListIssues(ctx context.Context, learnerID string) ([]models.BookIssueDetail, error) {
	query := `SELECT bi.id, bi.issue_id, bi.book_id, bi.learner_id, bi.issued_by, bi.date_issued, bi.due_date, bi.date_returned, bi.condition_out, bi.condition_in, bi.notes,
		COALESCE(t.title, '') AS book_title,
		COALESCE(l.first_name || ' ' || l.last_name, '') AS learner_name
		FROM book_issues bi
		LEFT JOIN textbooks t ON bi.book_id = t.book_id
		LEFT JOIN learners l ON bi.learner_id = l.learner_id
		WHERE 1=1`
	var args []interface{}
	if learnerID != "" {
		args = append(args, learnerID)
		query += fmt.Sprintf(" AND bi.learner_id = $%d", len(args))
	}
	query += " ORDER BY bi.date_issued DESC"

	issues := []models.BookIssueDetail{}
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("list book issues: %w", err)
	}
	return issues, nil
}
