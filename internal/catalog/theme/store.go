package theme

import "context"

type Repository interface {
	ListThemes(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Theme, int, error)
	GetTheme(context context.Context, tenantID, id int64) (*Theme, error)
	GetThemeBySlug(context context.Context, tenantID int64, slug string) (*Theme, error)
	GetDefaultTheme(context context.Context, tenantID int64) (*Theme, error)

	CreateTheme(context context.Context, t *Theme) error
	UpdateTheme(context context.Context, t *Theme) error

	// SetDefaultTheme clears the tenant's previous default and marks the
	// given theme, in one transaction.
	SetDefaultTheme(context context.Context, tenantID, id int64) error

	// DeleteTheme returns dberr.ErrNotFound when no row matched.
	DeleteTheme(context context.Context, tenantID, id int64) error
}
