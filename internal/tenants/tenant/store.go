package tenant

import "context"

type Repository interface {
	ListTenants(context context.Context, f Filter, limit, offset int) ([]*Tenant, int, error)
	GetTenant(context context.Context, id int64) (*Tenant, error)
	GetTenantByDomain(context context.Context, domain string) (*Tenant, error)

	CreateTenant(context context.Context, t *Tenant) error
	UpdateTenant(context context.Context, t *Tenant) error

	// DeleteTenant returns dberr.ErrNotFound when no row matched.
	DeleteTenant(context context.Context, id int64) error

	// HasMembers reports whether any admin account still belongs to the tenant.
	HasMembers(context context.Context, id int64) (bool, error)
}
