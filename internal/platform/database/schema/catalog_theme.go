package schema

// ThemeTable represents the 'catalog.theme' table
type ThemeTable struct {
	Table          string
	ID             string
	TenantID       string
	Slug           string
	Name           string
	Description    string
	Version        string
	Status         string
	IsDefault      string
	ColorsJSON     string
	TypographyJSON string
	LayoutJSON     string
	CreatedAt      string
	UpdatedAt      string
}

// Theme is the schema definition for catalog.theme
var Theme = ThemeTable{
	Table:          "catalog.theme",
	ID:             "id",
	TenantID:       "tenant_id",
	Slug:           "slug",
	Name:           "name",
	Description:    "description",
	Version:        "version",
	Status:         "status",
	IsDefault:      "is_default",
	ColorsJSON:     "colors_json",
	TypographyJSON: "typography_json",
	LayoutJSON:     "layout_json",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}
