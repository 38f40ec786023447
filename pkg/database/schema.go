package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the portal's relational schema. It is applied at startup and
// is idempotent, mirroring how the legacy deployment initialised its
// store on boot.
const schema = `
CREATE TABLE IF NOT EXISTS staff (
	id TEXT PRIMARY KEY,
	staff_id TEXT UNIQUE NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	id_number TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	classes_taught TEXT NOT NULL DEFAULT '',
	next_of_kin_name TEXT NOT NULL DEFAULT '',
	next_of_kin_phone TEXT NOT NULL DEFAULT '',
	date_employed TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'Teacher',
	gender TEXT NOT NULL DEFAULT '',
	date_of_birth TEXT NOT NULL DEFAULT '',
	qualification TEXT NOT NULL DEFAULT '',
	photo TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Active',
	approved BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS learners (
	id TEXT PRIMARY KEY,
	learner_id TEXT UNIQUE NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	id_number TEXT NOT NULL DEFAULT '',
	grade TEXT NOT NULL DEFAULT '',
	date_of_birth TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	next_of_kin_name TEXT NOT NULL DEFAULT '',
	next_of_kin_relationship TEXT NOT NULL DEFAULT '',
	next_of_kin_phone TEXT NOT NULL DEFAULT '',
	next_of_kin_email TEXT NOT NULL DEFAULT '',
	enrollment_date DATE NOT NULL DEFAULT CURRENT_DATE,
	status TEXT NOT NULL DEFAULT 'Active',
	fees_blocked BOOLEAN NOT NULL DEFAULT FALSE,
	approved BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS marks (
	id TEXT PRIMARY KEY,
	learner_id TEXT NOT NULL,
	staff_id TEXT NOT NULL,
	subject TEXT NOT NULL,
	assessment_type TEXT NOT NULL,
	grade TEXT NOT NULL DEFAULT '',
	term TEXT NOT NULL DEFAULT '',
	score DOUBLE PRECISION NOT NULL,
	max_score DOUBLE PRECISION NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	date_entered TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS attendance (
	id TEXT PRIMARY KEY,
	learner_id TEXT NOT NULL,
	date TEXT NOT NULL,
	status TEXT NOT NULL,
	grade TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	staff_id TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	UNIQUE (learner_id, date, subject)
);

CREATE TABLE IF NOT EXISTS timetable (
	id TEXT PRIMARY KEY,
	grade TEXT NOT NULL,
	day TEXT NOT NULL,
	period INTEGER NOT NULL,
	subject TEXT NOT NULL,
	staff_id TEXT NOT NULL DEFAULT '',
	room TEXT NOT NULL DEFAULT '',
	start_time TEXT NOT NULL DEFAULT '',
	end_time TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fees (
	id TEXT PRIMARY KEY,
	fee_id TEXT UNIQUE NOT NULL,
	learner_id TEXT NOT NULL,
	description TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	paid DOUBLE PRECISION NOT NULL DEFAULT 0,
	due_date TEXT NOT NULL DEFAULT '',
	term TEXT NOT NULL DEFAULT '',
	academic_year TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Unpaid',
	date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS fee_payments (
	id TEXT PRIMARY KEY,
	payment_id TEXT UNIQUE NOT NULL,
	fee_id TEXT NOT NULL,
	learner_id TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	payment_method TEXT NOT NULL DEFAULT 'Cash',
	reference TEXT NOT NULL DEFAULT '',
	received_by TEXT NOT NULL DEFAULT '',
	date_paid TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS notices (
	id TEXT PRIMARY KEY,
	notice_id TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	audience TEXT NOT NULL DEFAULT 'All',
	priority TEXT NOT NULL DEFAULT 'Normal',
	posted_by TEXT NOT NULL DEFAULT '',
	date_posted TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expiry_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS textbooks (
	id TEXT PRIMARY KEY,
	book_id TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	grade_level TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	publisher TEXT NOT NULL DEFAULT '',
	isbn TEXT NOT NULL DEFAULT '',
	edition TEXT NOT NULL DEFAULT '',
	total_copies INTEGER NOT NULL DEFAULT 0,
	copies_issued INTEGER NOT NULL DEFAULT 0,
	condition_notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS book_issues (
	id TEXT PRIMARY KEY,
	issue_id TEXT UNIQUE NOT NULL,
	book_id TEXT NOT NULL,
	learner_id TEXT NOT NULL,
	issued_by TEXT NOT NULL DEFAULT '',
	date_issued DATE NOT NULL DEFAULT CURRENT_DATE,
	due_date TEXT NOT NULL DEFAULT '',
	date_returned DATE,
	condition_out TEXT NOT NULL DEFAULT 'Good',
	condition_in TEXT,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sequences (
	name TEXT PRIMARY KEY,
	value BIGINT NOT NULL DEFAULT 0
);

-- Emails are unique case-insensitively so a direct write cannot create
-- a duplicate that differs only in case from an API-normalised row.
CREATE UNIQUE INDEX IF NOT EXISTS staff_email_lower_idx ON staff (LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS learners_email_lower_idx ON learners (LOWER(email));
`

// Migrate applies the schema to the target database.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
