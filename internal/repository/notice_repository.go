package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyatsime/portal-api/internal/models"
)

// NoticeRepository provides database access for notices.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository creates a new instance of NoticeRepository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create inserts a new notice.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.DatePosted.IsZero() {
		notice.DatePosted = time.Now().UTC()
	}
	const query = `INSERT INTO notices (id, notice_id, title, body, audience, priority, posted_by, date_posted, expiry_date)
		VALUES (:id, :notice_id, :title, :body, :audience, :priority, :posted_by, :date_posted, :expiry_date)`
	if _, err := r.db.NamedExecContext(ctx, query, notice); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// List returns notices joined with the poster's name. A non-empty
// audience other than "All" restricts to that audience plus the
// all-readers notices.
func (r *NoticeRepository) List(ctx context.Context, audience string) ([]models.NoticeDetail, error) {
	query := `SELECT n.id, n.notice_id, n.title, n.body, n.audience, n.priority, n.posted_by, n.date_posted, n.expiry_date,
		COALESCE(s.first_name || ' ' || s.last_name, '') AS poster_name
		FROM notices n
		LEFT JOIN staff s ON n.posted_by = s.staff_id
		WHERE 1=1`
	var args []interface{}
	if audience != "" && audience != "All" {
		args = append(args, audience)
		query += fmt.Sprintf(" AND (n.audience = 'All' OR n.audience = $%d)", len(args))
	}
	query += " ORDER BY n.date_posted DESC"

	notices := []models.NoticeDetail{}
	if err := r.db.SelectContext(ctx, &notices, query, args...); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// Delete removes a notice by display identifier.
func (r *NoticeRepository) Delete(ctx context.Context, noticeID string) error {
	const query = `DELETE FROM notices WHERE notice_id = $1`
	if _, err := r.db.ExecContext(ctx, query, noticeID); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return nil
}
