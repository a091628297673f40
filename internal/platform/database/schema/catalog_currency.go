package schema

// CurrencyTable represents the 'catalog.currency' table
type CurrencyTable struct {
	Table        string
	ID           string
	Code         string
	Name         string
	Symbol       string
	ExchangeRate string
	IsDefault    string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// Currency is the schema definition for catalog.currency
var Currency = CurrencyTable{
	Table:        "catalog.currency",
	ID:           "id",
	Code:         "code",
	Name:         "name",
	Symbol:       "symbol",
	ExchangeRate: "exchange_rate",
	IsDefault:    "is_default",
	IsActive:     "is_active",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
