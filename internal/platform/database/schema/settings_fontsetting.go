package schema

// FontSettingTable represents the 'settings.font_setting' table
type FontSettingTable struct {
	Table      string
	ID         string
	ThemeID    string
	SettingKey string
	FontFamily string
	FontSize   string
	FontWeight string
	SortOrder  string
	CreatedAt  string
	UpdatedAt  string
}

// FontSetting is the schema definition for settings.font_setting
var FontSetting = FontSettingTable{
	Table:      "settings.font_setting",
	ID:         "id",
	ThemeID:    "theme_id",
	SettingKey: "setting_key",
	FontFamily: "font_family",
	FontSize:   "font_size",
	FontWeight: "font_weight",
	SortOrder:  "sort_order",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}
