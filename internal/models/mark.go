package models

import "time"

// Mark is a recorded assessment result. Immutable once created; the
// score is stored as entered and is not validated against max_score.
type Mark struct {
	ID             string    `db:"id" json:"id"`
	LearnerID      string    `db:"learner_id" json:"learner_id"`
	StaffID        string    `db:"staff_id" json:"staff_id"`
	Subject        string    `db:"subject" json:"subject"`
	AssessmentType string    `db:"assessment_type" json:"assessment_type"`
	Grade          string    `db:"grade" json:"grade"`
	Term           string    `db:"term" json:"term"`
	Score          float64   `db:"score" json:"score"`
	MaxScore       float64   `db:"max_score" json:"max_score"`
	Comment        string    `db:"comment" json:"comment"`
	DateEntered    time.Time `db:"date_entered" json:"date_entered"`
}

// MarkDetail is a mark joined with teacher and learner display names.
type MarkDetail struct {
	Mark
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	LearnerName string `db:"learner_name" json:"learner_name"`
}

// MarkFilter captures the list query filters.
type MarkFilter struct {
	LearnerID string
	StaffID   string
	Grade     string
}
