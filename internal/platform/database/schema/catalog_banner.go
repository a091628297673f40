package schema

// BannerTable represents the 'catalog.banner' table
type BannerTable struct {
	Table     string
	ID        string
	TenantID  string
	ThemeID   string
	Title     string
	ImageURL  string
	TargetURL string
	Placement string
	IsActive  string
	SortOrder string
	StartsAt  string
	EndsAt    string
	CreatedAt string
	UpdatedAt string
}

// Banner is the schema definition for catalog.banner
var Banner = BannerTable{
	Table:     "catalog.banner",
	ID:        "id",
	TenantID:  "tenant_id",
	ThemeID:   "theme_id",
	Title:     "title",
	ImageURL:  "image_url",
	TargetURL: "target_url",
	Placement: "placement",
	IsActive:  "is_active",
	SortOrder: "sort_order",
	StartsAt:  "starts_at",
	EndsAt:    "ends_at",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
