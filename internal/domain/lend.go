package domain

import (
	"time"

	"github.com/google/uuid"
)

// LendRecord is one borrow transaction. ReturnedQuantity is derived from the
// return records that reference it.
type LendRecord struct {
	ID               uuid.UUID
	BookID           uuid.UUID
	ReaderID         uuid.UUID
	Quantity         int
	ReturnedQuantity int
	DueDate          time.Time
	Status           LendStatus
	OperatorID       uuid.UUID
	Comment          *string
	Audit
}

// Outstanding returns the number of copies not yet returned.
func (l *LendRecord) Outstanding() int {
	return l.Quantity - l.ReturnedQuantity
}

// IsActive reports whether the loan still counts against the reader.
func (l *LendRecord) IsActive() bool {
	return l.Status == LendStatusActive && !l.IsDeleted()
}

// IsOverdue reports whether the loan is active and its due date is strictly
// before asOf. A loan due exactly at asOf is not overdue.
func (l *LendRecord) IsOverdue(asOf time.Time) bool {
	return l.IsActive() && l.DueDate.Before(asOf)
}

// ApplyReturn adds qty to the returned quantity and flips the record to
// RETURNED once nothing is outstanding. It reports whether the status changed.
func (l *LendRecord) ApplyReturn(qty int, now time.Time) bool {
	l.ReturnedQuantity += qty
	l.Touch(now)
	if l.Status == LendStatusActive && l.Outstanding() == 0 {
		l.Status = LendStatusReturned
		return true
	}
	return false
}

// ReturnRecord captures the portion of a return applied to one lend record.
// Immutable once created.
type ReturnRecord struct {
	ID         uuid.UUID
	LendID     uuid.UUID
	Quantity   int
	OperatorID uuid.UUID
	Status     ReturnStatus
	Comment    *string
	CreatedAt  time.Time
}

// LendDetail is a lend record together with everything recorded against it.
// History is newest first.
type LendDetail struct {
	Lend    LendRecord
	Returns []ReturnRecord
	History []AuditRecord
}
