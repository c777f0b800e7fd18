package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit holds the bookkeeping fields shared by every persisted entity.
// Rows are never hard-deleted; DeletedAt marks a logical delete.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewAudit returns audit fields for a row created at now.
func NewAudit(now time.Time) Audit {
	return Audit{CreatedAt: now, UpdatedAt: now}
}

// IsDeleted reports whether the row is logically deleted.
func (a Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}

// Touch bumps UpdatedAt.
func (a *Audit) Touch(now time.Time) {
	a.UpdatedAt = now
}

// SoftDelete marks the row deleted. Deleting twice keeps the first timestamp.
func (a *Audit) SoftDelete(now time.Time) {
	if a.DeletedAt != nil {
		return
	}
	t := now
	a.DeletedAt = &t
	a.UpdatedAt = now
}

// EntityType identifies the kind of row an AuditRecord refers to.
type EntityType string

const (
	EntityTypeLend   EntityType = "LEND"
	EntityTypeReturn EntityType = "RETURN"
	EntityTypeBook   EntityType = "BOOK"
)

// AuditAction is the operation recorded in the journal.
type AuditAction string

const (
	AuditActionBorrow AuditAction = "BORROW"
	AuditActionReturn AuditAction = "RETURN"
)

// AuditRecord is an append-only journal entry written in the same
// transaction as the change it describes.
type AuditRecord struct {
	ID         uuid.UUID
	OperatorID uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
