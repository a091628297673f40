package member

import "context"

type Repository interface {
	ListMembers(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Member, int, error)
	GetMember(context context.Context, tenantID, id int64) (*Member, error)
	GetMemberByEmail(context context.Context, tenantID int64, email string) (*Member, error)

	CreateMember(context context.Context, m *Member) error
	UpdateMember(context context.Context, m *Member) error
	UpdatePasswordHash(context context.Context, tenantID, id int64, passwordHash string) error

	// DeleteMember returns dberr.ErrNotFound when no row matched.
	DeleteMember(context context.Context, tenantID, id int64) error
}
