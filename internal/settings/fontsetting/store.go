package fontsetting

import "context"

type Repository interface {
	ListSettings(context context.Context, themeID int64, limit, offset int) ([]*FontSetting, int, error)
	GetSetting(context context.Context, id int64) (*FontSetting, error)
	GetSettingByKey(context context.Context, themeID int64, key string) (*FontSetting, error)

	CreateSetting(context context.Context, s *FontSetting) error
	UpdateSetting(context context.Context, s *FontSetting) error

	// UpsertSettings writes the whole batch in one transaction.
	UpsertSettings(context context.Context, themeID int64, settings []*FontSetting) error

	// Deletes return dberr.ErrNotFound when no row matched; the service
	// layer absorbs that for idempotency.
	DeleteSetting(context context.Context, id int64) error
	DeleteSettingByKey(context context.Context, themeID int64, key string) error

	// ThemeOwned reports whether the theme belongs to the tenant.
	ThemeOwned(context context.Context, tenantID, themeID int64) (bool, error)
}
