package models

// AttendanceRecord is one learner's attendance entry for a date and
// subject. The (learner_id, date, subject) key is unique; a later
// submission for the same key replaces the earlier one.
type AttendanceRecord struct {
	ID        string `db:"id" json:"id"`
	LearnerID string `db:"learner_id" json:"learner_id"`
	Date      string `db:"date" json:"date"`
	Status    string `db:"status" json:"status"`
	Grade     string `db:"grade" json:"grade"`
	Subject   string `db:"subject" json:"subject"`
	StaffID   string `db:"staff_id" json:"staff_id"`
	Reason    string `db:"reason" json:"reason"`
}

// AttendanceDetail is an attendance record joined with the learner name.
type AttendanceDetail struct {
	AttendanceRecord
	LearnerName string `db:"learner_name" json:"learner_name"`
}

// AttendanceFilter captures the list query filters.
type AttendanceFilter struct {
	LearnerID string
	Grade     string
	Date      string
}
