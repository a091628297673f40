package member

import (
	"time"

	"github.com/vendora/vendora/internal/platform/sec"
)

// Member is an admin account of one tenant. The password hash never leaves
// the service layer.
type Member struct {
	ID           int64        `json:"id"`
	TenantID     int64        `json:"tenant_id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Filter holds the parameters for a paginated member search.
type Filter struct {
	Search     string // Matches email and display name
	Role       string
	ActiveOnly bool
}

// Global field names for validation
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldRole        = "role"
)
