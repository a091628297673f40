package schema

// TenantTable represents the 'tenants.tenant' table
type TenantTable struct {
	Table     string
	ID        string
	Domain    string
	Name      string
	Plan      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// Tenant is the schema definition for tenants.tenant
var Tenant = TenantTable{
	Table:     "tenants.tenant",
	ID:        "id",
	Domain:    "domain",
	Name:      "name",
	Plan:      "plan",
	Status:    "status",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
