package country

import "context"

type Repository interface {
	ListCountries(context context.Context, f Filter, limit, offset int) ([]*Country, int, error)
	GetCountry(context context.Context, id int64) (*Country, error)
	GetCountryByCode(context context.Context, code string) (*Country, error)

	CreateCountry(context context.Context, c *Country) error
	UpdateCountry(context context.Context, c *Country) error

	// DeleteCountry returns dberr.ErrNotFound when no row matched.
	DeleteCountry(context context.Context, id int64) error

	// HasCities reports whether any city still references the country.
	HasCities(context context.Context, id int64) (bool, error)
}
