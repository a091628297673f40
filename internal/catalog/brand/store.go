package brand

import "context"

type Repository interface {
	ListBrands(context context.Context, tenantID int64, lang string, f Filter, limit, offset int) ([]*Brand, int, error)
	GetBrand(context context.Context, tenantID, id int64, lang string) (*Brand, error)
	GetBrandBySlug(context context.Context, tenantID int64, slug, lang string) (*Brand, error)

	// CreateBrand and UpdateBrand persist the row together with its
	// translations in one transaction.
	CreateBrand(context context.Context, b *Brand) error
	UpdateBrand(context context.Context, b *Brand) error

	// DeleteBrand removes the row and its translations in one transaction.
	// Returns dberr.ErrNotFound when no row matched.
	DeleteBrand(context context.Context, tenantID, id int64) error
	DeleteBrandBySlug(context context.Context, tenantID int64, slug string) error

	GetTranslations(context context.Context, brandID int64) (map[string]Translation, error)
}
