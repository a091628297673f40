package city

import "context"

type Repository interface {
	ListCities(context context.Context, f Filter, limit, offset int) ([]*City, int, error)
	GetCity(context context.Context, id int64) (*City, error)

	CreateCity(context context.Context, c *City) error
	UpdateCity(context context.Context, c *City) error

	// DeleteCity returns dberr.ErrNotFound when no row matched.
	DeleteCity(context context.Context, id int64) error

	// CountryExists reports whether the referenced country is registered.
	CountryExists(context context.Context, countryID int64) (bool, error)
}
