package colorsetting

import "context"

type Repository interface {
	ListSettings(context context.Context, themeID int64, limit, offset int) ([]*ColorSetting, int, error)
	GetSetting(context context.Context, id int64) (*ColorSetting, error)
	GetSettingByKey(context context.Context, themeID int64, key string) (*ColorSetting, error)

	CreateSetting(context context.Context, s *ColorSetting) error
	UpdateSetting(context context.Context, s *ColorSetting) error

	// UpsertSettings writes the whole batch in one transaction, inserting
	// new keys and updating existing ones.
	UpsertSettings(context context.Context, themeID int64, settings []*ColorSetting) error

	// DeleteSetting returns dberr.ErrNotFound when no row matched; the
	// service layer absorbs that for idempotency.
	DeleteSetting(context context.Context, id int64) error
	DeleteSettingByKey(context context.Context, themeID int64, key string) error

	// ThemeOwned reports whether the theme belongs to the tenant.
	ThemeOwned(context context.Context, tenantID, themeID int64) (bool, error)
}
