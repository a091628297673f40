package schema

// ColorSettingTable represents the 'settings.color_setting' table
type ColorSettingTable struct {
	Table      string
	ID         string
	ThemeID    string
	SettingKey string
	ColorValue string
	SortOrder  string
	CreatedAt  string
	UpdatedAt  string
}

// ColorSetting is the schema definition for settings.color_setting
var ColorSetting = ColorSettingTable{
	Table:      "settings.color_setting",
	ID:         "id",
	ThemeID:    "theme_id",
	SettingKey: "setting_key",
	ColorValue: "color_value",
	SortOrder:  "sort_order",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}
