package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reader is a library member identified by card number.
type Reader struct {
	ID        uuid.UUID
	CardNo    string
	Name      string
	Status    ReaderStatus
	ClassID   *uuid.UUID
	ExpiresAt *time.Time
	Audit
}

// IsExpired reports whether the membership has ended at now.
// A nil ExpiresAt never expires.
func (r *Reader) IsExpired(now time.Time) bool {
	if r.ExpiresAt == nil {
		return false
	}
	return !now.Before(*r.ExpiresAt)
}

// CanBorrow reports whether the reader may take out new loans at now.
func (r *Reader) CanBorrow(now time.Time) bool {
	return !r.IsDeleted() && r.Status == ReaderStatusActive && !r.IsExpired(now)
}

// Grade groups classes, e.g. a school year.
type Grade struct {
	ID   uuid.UUID
	Name string
	Audit
}

// Class belongs to a grade; readers may be assigned to one.
type Class struct {
	ID      uuid.UUID
	GradeID uuid.UUID
	Name    string
	Audit
}
