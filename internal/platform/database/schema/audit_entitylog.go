package schema

// EntityLogTable represents the 'audit.entity_log' table
type EntityLogTable struct {
	Table      string
	ID         string
	TenantID   string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	Changes    string
	IPAddress  string
	CreatedAt  string
}

// EntityLog is the schema definition for audit.entity_log
var EntityLog = EntityLogTable{
	Table:      "audit.entity_log",
	ID:         "id",
	TenantID:   "tenant_id",
	ActorID:    "actor_id",
	EntityType: "entity_type",
	EntityID:   "entity_id",
	Action:     "action",
	Changes:    "changes",
	IPAddress:  "ip_address",
	CreatedAt:  "created_at",
}
