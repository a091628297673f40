package city

import "time"

// City is a platform-wide city record attached to a country.
type City struct {
	ID        int64     `json:"id"`
	CountryID int64     `json:"country_id"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated city search.
type Filter struct {
	CountryID  int64 // 0 means all countries
	Search     string
	ActiveOnly bool
}

// Global field names for validation
const (
	FieldCountryID = "country_id"
	FieldName      = "name"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
)
