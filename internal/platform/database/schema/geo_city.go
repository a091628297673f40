package schema

// CityTable represents the 'geo.city' table
type CityTable struct {
	Table     string
	ID        string
	CountryID string
	Name      string
	Latitude  string
	Longitude string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// City is the schema definition for geo.city
var City = CityTable{
	Table:     "geo.city",
	ID:        "id",
	CountryID: "country_id",
	Name:      "name",
	Latitude:  "latitude",
	Longitude: "longitude",
	IsActive:  "is_active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
