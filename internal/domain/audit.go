package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a single write against an entity
type AuditLog struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	Entity     string            `json:"entity" db:"entity"`
	EntityID   uuid.UUID         `json:"entityId" db:"entity_id"`
	Action     AuditAction       `json:"action" db:"action"`
	ActorID    *uuid.UUID        `json:"actorId,omitempty" db:"actor_id"`
	RequestID  string            `json:"requestId,omitempty" db:"request_id"`
	Metadata   map[string]string `json:"metadata,omitempty" db:"-"`
	RecordedAt time.Time         `json:"recordedAt" db:"recorded_at"`
}

// AuditLogInput represents input for recording an audit entry
type AuditLogInput struct {
	Entity    string
	EntityID  uuid.UUID
	Action    AuditAction
	ActorID   *uuid.UUID
	RequestID string
	Metadata  map[string]string
}
