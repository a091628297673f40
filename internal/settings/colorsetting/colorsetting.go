package colorsetting

import "time"

// ColorSetting is one named color of a theme's palette, e.g.
// "primary.background" = "#1A2B3C".
//
// Tenant scoping is indirect: a setting belongs to a theme, and the theme
// belongs to a tenant. Services verify theme ownership before touching rows.
type ColorSetting struct {
	ID         int64     `json:"id"`
	ThemeID    int64     `json:"theme_id"`
	SettingKey string    `json:"setting_key"`
	ColorValue string    `json:"color_value"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldThemeID    = "theme_id"
	FieldSettingKey = "setting_key"
	FieldColorValue = "color_value"
	FieldSortOrder  = "sort_order"
)
