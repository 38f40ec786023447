package models

import "time"

// FeeStatus is derived from paid versus assessed amount.
type FeeStatus string

const (
	FeeUnpaid  FeeStatus = "Unpaid"
	FeePartial FeeStatus = "Partial"
	FeePaid    FeeStatus = "Paid"
)

// Fee is one assessment on a learner's ledger. Paid accumulates through
// recorded payments and is never decremented by the ledger itself.
type Fee struct {
	ID           string    `db:"id" json:"-"`
	FeeID        string    `db:"fee_id" json:"fee_id"`
	LearnerID    string    `db:"learner_id" json:"learner_id"`
	Description  string    `db:"description" json:"description"`
	Amount       float64   `db:"amount" json:"amount"`
	Paid         float64   `db:"paid" json:"paid"`
	DueDate      string    `db:"due_date" json:"due_date"`
	Term         string    `db:"term" json:"term"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Status       FeeStatus `db:"status" json:"status"`
	DateCreated  time.Time `db:"date_created" json:"date_created"`
}

// Outstanding reports the remaining balance on the fee.
func (f *Fee) Outstanding() float64 {
	return f.Amount - f.Paid
}

// FeeDetail is a fee joined with the learner display name.
type FeeDetail struct {
	Fee
	LearnerName string `db:"learner_name" json:"learner_name"`
}

// FeePayment is an immutable payment record against one fee.
type FeePayment struct {
	ID            string    `db:"id" json:"-"`
	PaymentID     string    `db:"payment_id" json:"payment_id"`
	FeeID         string    `db:"fee_id" json:"fee_id"`
	LearnerID     string    `db:"learner_id" json:"learner_id"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	Reference     string    `db:"reference" json:"reference"`
	ReceivedBy    string    `db:"received_by" json:"received_by"`
	DatePaid      time.Time `db:"date_paid" json:"date_paid"`
	Notes         string    `db:"notes" json:"notes"`
}

// FeePaymentFilter captures the payment list query filters.
type FeePaymentFilter struct {
	LearnerID string
	FeeID     string
}
