package brand

import "time"

// Brand represents a merchandise brand managed by one tenant's store.
//
// Display text lives in per-language translations; the flattened Name /
// Description fields carry the translation for the requested language.
type Brand struct {
	ID         int64   `json:"id"`
	TenantID   int64   `json:"tenant_id"`
	Slug       string  `json:"slug"`
	LogoURL    *string `json:"logo_url"`
	BannerURL  *string `json:"banner_url"`
	WebsiteURL *string `json:"website_url"`
	IsActive   bool    `json:"is_active"`
	IsFeatured bool    `json:"is_featured"`
	SortOrder  int     `json:"sort_order"`

	// Flattened translation for the requested language.
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`

	// Translations holds every language variant, populated only when the
	// client asks for the full set.
	Translations map[string]Translation `json:"translations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Translation is the locale-specific text attached to a brand.
type Translation struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// Filter holds the parameters for a paginated brand search.
type Filter struct {
	Search       string // Matches slug and translated name
	FeaturedOnly bool
	ActiveOnly   bool
	Sort         string // name, created, sort_order (default)
	SortDir      string // asc (default) or desc
}

// Global field names for validation
const (
	FieldSlug         = "slug"
	FieldLogoURL      = "logo_url"
	FieldBannerURL    = "banner_url"
	FieldWebsiteURL   = "website_url"
	FieldSortOrder    = "sort_order"
	FieldTranslations = "translations"
)
