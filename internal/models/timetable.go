package models

// TimetableSlot is one period on a grade's weekly timetable. No
// uniqueness constraint is placed on (grade, day, period): the store
// can represent a double-booking.
type TimetableSlot struct {
	ID        string `db:"id" json:"id"`
	Grade     string `db:"grade" json:"grade"`
	Day       string `db:"day" json:"day"`
	Period    int    `db:"period" json:"period"`
	Subject   string `db:"subject" json:"subject"`
	StaffID   string `db:"staff_id" json:"staff_id"`
	Room      string `db:"room" json:"room"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// TimetableDetail is a slot joined with the assigned teacher's name.
type TimetableDetail struct {
	TimetableSlot
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}
