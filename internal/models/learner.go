package models

import "time"

// Learner represents a learner stored in the learners table. Learners
// self-register unapproved and cannot authenticate until an admin
// approves them.
type Learner struct {
	ID                     string    `db:"id" json:"-"`
	LearnerID              string    `db:"learner_id" json:"learner_id"`
	FirstName              string    `db:"first_name" json:"first_name"`
	LastName               string    `db:"last_name" json:"last_name"`
	Email                  string    `db:"email" json:"email"`
	PasswordHash           string    `db:"password_hash" json:"-"`
	Phone                  string    `db:"phone" json:"phone"`
	Address                string    `db:"address" json:"address"`
	IDNumber               string    `db:"id_number" json:"id_number"`
	Grade                  string    `db:"grade" json:"grade"`
	DateOfBirth            string    `db:"date_of_birth" json:"date_of_birth"`
	Gender                 string    `db:"gender" json:"gender"`
	NextOfKinName          string    `db:"next_of_kin_name" json:"next_of_kin_name"`
	NextOfKinRelationship  string    `db:"next_of_kin_relationship" json:"next_of_kin_relationship"`
	NextOfKinPhone         string    `db:"next_of_kin_phone" json:"next_of_kin_phone"`
	NextOfKinEmail         string    `db:"next_of_kin_email" json:"next_of_kin_email"`
	EnrollmentDate         time.Time `db:"enrollment_date" json:"enrollment_date"`
	Status                 string    `db:"status" json:"status"`
	FeesBlocked            bool      `db:"fees_blocked" json:"fees_blocked"`
	Approved               bool      `db:"approved" json:"approved"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// FullName joins the stored name parts for display.
func (l *Learner) FullName() string {
	return l.FirstName + " " + l.LastName
}

// LearnerFilter captures the list query filters. Approved is a
// three-state filter: nil means all records.
type LearnerFilter struct {
	Grade    string
	Approved *bool
}

// EnrollmentAction names the transitions of the enrollment workflow.
type EnrollmentAction string

const (
	ActionApprove     EnrollmentAction = "approve"
	ActionReject      EnrollmentAction = "reject"
	ActionBlockFees   EnrollmentAction = "block_fees"
	ActionUnblockFees EnrollmentAction = "unblock_fees"
)
