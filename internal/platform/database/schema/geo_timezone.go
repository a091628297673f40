package schema

// TimezoneTable represents the 'geo.timezone' table
type TimezoneTable struct {
	Table     string
	ID        string
	Name      string
	UTCOffset string
	CreatedAt string
	UpdatedAt string
}

// Timezone is the schema definition for geo.timezone
var Timezone = TimezoneTable{
	Table:     "geo.timezone",
	ID:        "id",
	Name:      "name",
	UTCOffset: "utc_offset_minutes",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
