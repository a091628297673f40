// Package audit records who changed what in the admin panel.
//
// Every mutating service calls [Recorder.Record] after a successful write.
// Entries are append-only; nothing in the system updates or deletes them.
package audit

import (
	"encoding/json"
	"time"
)

// Action identifies the kind of mutation an entry describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one recorded mutation of a resource record.
type Entry struct {
	ID         int64           `json:"id"`
	TenantID   int64           `json:"tenant_id"`
	ActorID    *string         `json:"actor_id"`
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	Action     Action          `json:"action"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	IPAddress  *string         `json:"ip_address,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Filter holds the parameters for a paginated audit-log search.
type Filter struct {
	EntityType string
	EntityID   int64
	Action     Action
}
