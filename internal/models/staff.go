package models

import "time"

// StaffRole distinguishes ordinary teachers from administrators and the
// master override identity.
type StaffRole string

const (
	RoleTeacher StaffRole = "Teacher"
	RoleAdmin   StaffRole = "Admin"
	RoleMaster  StaffRole = "Master"
)

// Staff represents a staff member stored in the staff table. Staff are
// auto-approved at creation.
type Staff struct {
	ID             string    `db:"id" json:"-"`
	StaffID        string    `db:"staff_id" json:"staff_id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	IDNumber       string    `db:"id_number" json:"id_number"`
	Subject        string    `db:"subject" json:"subject"`
	ClassesTaught  string    `db:"classes_taught" json:"classes_taught"`
	NextOfKinName  string    `db:"next_of_kin_name" json:"next_of_kin_name"`
	NextOfKinPhone string    `db:"next_of_kin_phone" json:"next_of_kin_phone"`
	DateEmployed   string    `db:"date_employed" json:"date_employed"`
	Role           StaffRole `db:"role" json:"role"`
	Gender         string    `db:"gender" json:"gender"`
	DateOfBirth    string    `db:"date_of_birth" json:"date_of_birth"`
	Qualification  string    `db:"qualification" json:"qualification"`
	Photo          string    `db:"photo" json:"photo"`
	Status         string    `db:"status" json:"status"`
	Approved       bool      `db:"approved" json:"approved"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// FullName joins the stored name parts for display.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StaffPatch carries a partial staff update. Only non-nil fields are
// applied, replacing the legacy update-by-field-presence behaviour with
// an explicit merge.
type StaffPatch struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Email          *string    `json:"email"`
	Password       *string    `json:"password"`
	Phone          *string    `json:"phone"`
	Address        *string    `json:"address"`
	IDNumber       *string    `json:"id_number"`
	Subject        *string    `json:"subject"`
	ClassesTaught  *string    `json:"classes_taught"`
	NextOfKinName  *string    `json:"next_of_kin_name"`
	NextOfKinPhone *string    `json:"next_of_kin_phone"`
	DateEmployed   *string    `json:"date_employed"`
	Role           *StaffRole `json:"role"`
	Gender         *string    `json:"gender"`
	DateOfBirth    *string    `json:"date_of_birth"`
	Qualification  *string    `json:"qualification"`
	Photo          *string    `json:"photo"`
	Status         *string    `json:"status"`
}
