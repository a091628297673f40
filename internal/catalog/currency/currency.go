package currency

import "time"

// Currency is a platform-wide currency storefronts can price in.
//
// ExchangeRate is expressed relative to the default currency; the default
// itself always holds a rate of 1.
type Currency struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	ExchangeRate float64   `json:"exchange_rate"`
	IsDefault    bool      `json:"is_default"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated currency search.
type Filter struct {
	Search     string // Matches code and name
	ActiveOnly bool
}

// Global field names for validation
const (
	FieldCode         = "code"
	FieldName         = "name"
	FieldSymbol       = "symbol"
	FieldExchangeRate = "exchange_rate"
)
