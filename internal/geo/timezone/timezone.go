package timezone

import "time"

// Timezone is a platform-wide IANA timezone record offered to stores.
type Timezone struct {
	ID        int64     `json:"id"`
	Name      string    `json:"timezone"`
	UTCOffset int       `json:"utc_offset_minutes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated timezone search.
type Filter struct {
	Search string // Matches the timezone name
}

// Global field names for validation
const (
	FieldName      = "timezone"
	FieldUTCOffset = "utc_offset_minutes"
)
