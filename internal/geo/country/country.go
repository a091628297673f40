package country

import "time"

// Country is a platform-wide ISO 3166-1 country record used for shipping
// destinations and address forms.
type Country struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	DialCode  string    `json:"dial_code,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated country search.
type Filter struct {
	Search     string // Matches code and name
	ActiveOnly bool
}

// Global field names for validation
const (
	FieldCode     = "code"
	FieldName     = "name"
	FieldDialCode = "dial_code"
)
