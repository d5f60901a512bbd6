package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of token operation an audit entry records.
type Action string

const (
	ActionCreated          Action = "Token created"
	ActionDataAccessed     Action = "Data accessed"
	ActionMetadataAccessed Action = "Metadata accessed"
	ActionDeleted          Action = "Token deleted"
	ActionAuditAccessed    Action = "Audit accessed"
)

// AuditLog records a single token operation for compliance reporting. Entries
// are append-only and written in the same transaction as the operation they
// describe, so the trail can never disagree with the stored data. They survive
// token deletion.
type AuditLog struct {
	ID        uuid.UUID // Unique identifier (UUIDv7)
	TokenID   uuid.UUID
	TenantID  string
	Action    Action
	UserID    string // Caller identity supplied with the request
	CreatedAt time.Time
}
