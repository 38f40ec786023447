package service

import (
	"context"
	"fmt"
)

// EntityClass names a family of display identifiers.
type EntityClass string

const (
	ClassStaff     EntityClass = "staff"
	ClassLearner   EntityClass = "learners"
	ClassFee       EntityClass = "fees"
	ClassPayment   EntityClass = "fee_payments"
	ClassNotice    EntityClass = "notices"
	ClassTextbook  EntityClass = "textbooks"
	ClassBookIssue EntityClass = "book_issues"
)

var classPrefixes = map[EntityClass]string{
	ClassStaff:     "STF",
	ClassLearner:   "LRN",
	ClassFee:       "FEE",
	ClassPayment:   "PAY",
	ClassNotice:    "NOT",
	ClassTextbook:  "BK",
	ClassBookIssue: "ISS",
}

type sequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

// IDAllocator hands out the portal's human-readable identifiers,
// formatted PREFIX-0001. Numbers come from a store-backed atomic
// sequence per entity class, so allocations stay unique under
// concurrent callers and freed numbers are never reused.
type IDAllocator struct {
	sequences sequenceRepository
}

// NewIDAllocator constructs an IDAllocator.
func NewIDAllocator(sequences sequenceRepository) *IDAllocator {
	return &IDAllocator{sequences: sequences}
}

// Allocate returns the next identifier for the entity class.
func (a *IDAllocator) Allocate(ctx context.Context, class EntityClass) (string, error) {
	prefix, ok := classPrefixes[class]
	if !ok {
		return "", fmt.Errorf("unknown entity class %q", class)
	}
	n, err := a.sequences.Next(ctx, string(class))
	if err != nil {
		return "", err
	}
	return FormatID(prefix, n), nil
}

// FormatID renders a sequence number in the portal's display form. The
// zero padding holds four digits and widens naturally beyond 9999.
func FormatID(prefix string, n int64) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}
