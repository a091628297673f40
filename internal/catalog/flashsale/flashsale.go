package flashsale

import "time"

// Derived sale phases, computed from the window at read time.
const (
	PhaseUpcoming = "upcoming"
	PhaseRunning  = "running"
	PhaseEnded    = "ended"
)

// FlashSale is a time-boxed discount on one product of the tenant's store.
type FlashSale struct {
	ID            int64     `json:"id"`
	TenantID      int64     `json:"tenant_id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	ProductID     int64     `json:"product_id"`
	OriginalPrice float64   `json:"original_price"`
	SalePrice     float64   `json:"sale_price"`
	Quantity      int       `json:"quantity"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Phase is derived from the window relative to now; never stored.
	Phase string `json:"phase"`
}

// ComputePhase stamps the derived phase for the given instant.
func (s *FlashSale) ComputePhase(now time.Time) {
	switch {
	case now.Before(s.StartsAt):
		s.Phase = PhaseUpcoming
	case now.Before(s.EndsAt):
		s.Phase = PhaseRunning
	default:
		s.Phase = PhaseEnded
	}
}

// DiscountPercent returns the rounded-down discount percentage.
func (s *FlashSale) DiscountPercent() int {
	if s.OriginalPrice <= 0 {
		return 0
	}
	return int((1 - s.SalePrice/s.OriginalPrice) * 100)
}

// Filter holds the parameters for a paginated flash sale search.
type Filter struct {
	Search     string // Matches slug and title
	ActiveOnly bool
	RunningAt  time.Time // zero means no window check
	Sort       string    // starts_at (default), ends_at, sale_price
	SortDir    string    // asc (default) or desc
}

// Global field names for validation
const (
	FieldSlug          = "slug"
	FieldTitle         = "title"
	FieldProductID     = "product_id"
	FieldOriginalPrice = "original_price"
	FieldSalePrice     = "sale_price"
	FieldQuantity      = "quantity"
	FieldEndsAt        = "ends_at"
)
