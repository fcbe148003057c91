package domain

import "time"

// AuditAction classifies a mutating operation in the audit trail
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDisable AuditAction = "DISABLE"
	AuditActionRestore AuditAction = "RESTORE"
)

// AuditLog is an immutable append-only record of one mutation.
// Before and After hold serialized snapshots of the entity;
// CreatedAt is assigned at write time and never updated.
type AuditLog struct {
	ID         int64
	EntityName string
	EntityID   int64
	Action     AuditAction
	ActorEmail string
	ActorRole  Role
	Before     *string
	After      *string
	CreatedAt  time.Time
}
