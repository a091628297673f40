package tenant

import "time"

// Tenant statuses. Suspended tenants keep their data but cannot authenticate;
// closed tenants are retained for bookkeeping only.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusClosed    = "closed"
)

// Subscription plans.
const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanBusiness   = "business"
	PlanEnterprise = "enterprise"
)

// Tenant is one store on the platform, addressed by its unique domain.
type Tenant struct {
	ID        int64     `json:"id"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated tenant search.
type Filter struct {
	Search string // Matches domain and name
	Plan   string
	Status string
}

// Global field names for validation
const (
	FieldDomain = "domain"
	FieldName   = "name"
	FieldPlan   = "plan"
	FieldStatus = "status"
)
