package schema

// MemberTable represents the 'tenants.member' table
type MemberTable struct {
	Table        string
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// Member is the schema definition for tenants.member
var Member = MemberTable{
	Table:        "tenants.member",
	ID:           "id",
	TenantID:     "tenant_id",
	Email:        "email",
	PasswordHash: "password_hash",
	DisplayName:  "display_name",
	Role:         "role",
	IsActive:     "is_active",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
