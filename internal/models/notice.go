package models

import "time"

// Notice is a posted announcement scoped to an audience tag, with "All"
// meaning every reader.
type Notice struct {
	ID         string    `db:"id" json:"-"`
	NoticeID   string    `db:"notice_id" json:"notice_id"`
	Title      string    `db:"title" json:"title"`
	Body       string    `db:"body" json:"body"`
	Audience   string    `db:"audience" json:"audience"`
	Priority   string    `db:"priority" json:"priority"`
	PostedBy   string    `db:"posted_by" json:"posted_by"`
	DatePosted time.Time `db:"date_posted" json:"date_posted"`
	ExpiryDate string    `db:"expiry_date" json:"expiry_date"`
}

// NoticeDetail is a notice joined with the poster's display name.
type NoticeDetail struct {
	Notice
	PosterName string `db:"poster_name" json:"poster_name"`
}
