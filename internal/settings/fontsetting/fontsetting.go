package fontsetting

import "time"

// FontSetting is one named typography slot of a theme, e.g.
// "heading.h1" = Inter / 32px / weight 700.
//
// Like color settings, tenant scoping is indirect through theme ownership.
type FontSetting struct {
	ID         int64     `json:"id"`
	ThemeID    int64     `json:"theme_id"`
	SettingKey string    `json:"setting_key"`
	FontFamily string    `json:"font_family"`
	FontSize   int       `json:"font_size"`
	FontWeight int       `json:"font_weight"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldThemeID    = "theme_id"
	FieldSettingKey = "setting_key"
	FieldFontFamily = "font_family"
	FieldFontSize   = "font_size"
	FieldFontWeight = "font_weight"
	FieldSortOrder  = "sort_order"
)
