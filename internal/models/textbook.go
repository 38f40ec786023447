package models

import "time"

// Textbook is a lendable title with copy-count bookkeeping. CopiesIssued
// tracks outstanding loans and is maintained by the circulation service.
type Textbook struct {
	ID             string `db:"id" json:"-"`
	BookID         string `db:"book_id" json:"book_id"`
	Title          string `db:"title" json:"title"`
	Subject        string `db:"subject" json:"subject"`
	GradeLevel     string `db:"grade_level" json:"grade_level"`
	Author         string `db:"author" json:"author"`
	Publisher      string `db:"publisher" json:"publisher"`
	ISBN           string `db:"isbn" json:"isbn"`
	Edition        string `db:"edition" json:"edition"`
	TotalCopies    int    `db:"total_copies" json:"total_copies"`
	CopiesIssued   int    `db:"copies_issued" json:"copies_issued"`
	ConditionNotes string `db:"condition_notes" json:"condition_notes"`
}

// BookIssue is one loan of a textbook to a learner. It starts
// outstanding (DateReturned null) and transitions once to returned.
type BookIssue struct {
	ID           string     `db:"id" json:"-"`
	IssueID      string     `db:"issue_id" json:"issue_id"`
	BookID       string     `db:"book_id" json:"book_id"`
	LearnerID    string     `db:"learner_id" json:"learner_id"`
	IssuedBy     string     `db:"issued_by" json:"issued_by"`
	DateIssued   time.Time  `db:"date_issued" json:"date_issued"`
	DueDate      string     `db:"due_date" json:"due_date"`
	DateReturned *time.Time `db:"date_returned" json:"date_returned"`
	ConditionOut string     `db:"condition_out" json:"condition_out"`
	ConditionIn  *string    `db:"condition_in" json:"condition_in"`
	Notes        string     `db:"notes" json:"notes"`
}

// Returned reports whether the loan has been closed.
func (b *BookIssue) Returned() bool {
	return b.DateReturned != nil
}

// BookIssueDetail is a loan joined with book title and learner name.
type BookIssueDetail struct {
	BookIssue
	BookTitle   string `db:"book_title" json:"book_title"`
	LearnerName string `db:"learner_name" json:"learner_name"`
}
