package auth

import (
	"context"
	"time"

	"github.com/vendora/vendora/internal/tenants/member"
	"github.com/vendora/vendora/internal/tenants/tenant"
)

// SessionRepository stores refresh-token sessions keyed by token hash.
type SessionRepository interface {
	Set(context context.Context, tokenHash string, session *Session, ttl time.Duration) error

	// Get returns apperr.NotFound when the session is absent or expired.
	Get(context context.Context, tokenHash string) (*Session, error)

	Delete(context context.Context, tokenHash string) error
}

// MemberDirectory is the slice of the member store the auth flow needs.
type MemberDirectory interface {
	GetMember(context context.Context, tenantID, id int64) (*member.Member, error)
	GetMemberByEmail(context context.Context, tenantID int64, email string) (*member.Member, error)
}

// TenantDirectory is the slice of the tenant registry the auth flow needs.
type TenantDirectory interface {
	GetTenant(context context.Context, id int64) (*tenant.Tenant, error)
	GetTenantByDomain(context context.Context, domain string) (*tenant.Tenant, error)
}

// TokenProvider signs access tokens for authenticated members.
type TokenProvider interface {
	GenerateAccessToken(userID string, tenantID int64, email, role string, timeToLive time.Duration) (string, error)
}
