package banner

import "time"

// Banner placements the storefront knows how to render.
const (
	PlacementHero    = "hero"
	PlacementSidebar = "sidebar"
	PlacementFooter  = "footer"
	PlacementPopup   = "popup"
)

// Placements lists the accepted placement values.
var Placements = []string{PlacementHero, PlacementSidebar, PlacementFooter, PlacementPopup}

// Banner is a scheduled promotional image attached to one of the tenant's themes.
//
// StartsAt/EndsAt bound the display window; a nil bound means open-ended on
// that side.
type Banner struct {
	ID        int64      `json:"id"`
	TenantID  int64      `json:"tenant_id"`
	ThemeID   int64      `json:"theme_id"`
	Title     string     `json:"title"`
	ImageURL  string     `json:"image_url"`
	TargetURL *string    `json:"target_url"`
	Placement string     `json:"placement"`
	IsActive  bool       `json:"is_active"`
	SortOrder int        `json:"sort_order"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Filter holds the parameters for a paginated banner search.
type Filter struct {
	ThemeID    int64     // 0 means all themes
	Placements []string  // nil means all placements
	ActiveOnly bool      // restricts to is_active rows
	LiveAt     time.Time // zero means no window check; otherwise the row's window must contain it
}

// Global field names for validation
const (
	FieldThemeID   = "theme_id"
	FieldTitle     = "title"
	FieldImageURL  = "image_url"
	FieldTargetURL = "target_url"
	FieldPlacement = "placement"
	FieldSortOrder = "sort_order"
	FieldEndsAt    = "ends_at"
)
