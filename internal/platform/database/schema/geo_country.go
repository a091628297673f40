package schema

// CountryTable represents the 'geo.country' table
type CountryTable struct {
	Table     string
	ID        string
	Code      string
	Name      string
	DialCode  string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// Country is the schema definition for geo.country
var Country = CountryTable{
	Table:     "geo.country",
	ID:        "id",
	Code:      "code",
	Name:      "name",
	DialCode:  "dial_code",
	IsActive:  "is_active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
