package banner

import "context"

type Repository interface {
	ListBanners(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Banner, int, error)
	GetBanner(context context.Context, tenantID, id int64) (*Banner, error)

	CreateBanner(context context.Context, b *Banner) error
	UpdateBanner(context context.Context, b *Banner) error

	// DeleteBanner returns dberr.ErrNotFound when no row matched.
	DeleteBanner(context context.Context, tenantID, id int64) error

	// ThemeExists reports whether the referenced theme belongs to the tenant.
	ThemeExists(context context.Context, tenantID, themeID int64) (bool, error)
}
