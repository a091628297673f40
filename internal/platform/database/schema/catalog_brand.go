package schema

// BrandTable represents the 'catalog.brand' table
type BrandTable struct {
	Table      string
	ID         string
	TenantID   string
	Slug       string
	LogoURL    string
	BannerURL  string
	WebsiteURL string
	IsActive   string
	IsFeatured string
	SortOrder  string
	CreatedAt  string
	UpdatedAt  string
}

// Brand is the schema definition for catalog.brand
var Brand = BrandTable{
	Table:      "catalog.brand",
	ID:         "id",
	TenantID:   "tenant_id",
	Slug:       "slug",
	LogoURL:    "logo_url",
	BannerURL:  "banner_url",
	WebsiteURL: "website_url",
	IsActive:   "is_active",
	IsFeatured: "is_featured",
	SortOrder:  "sort_order",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}
