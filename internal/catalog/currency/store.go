package currency

import "context"

type Repository interface {
	ListCurrencies(context context.Context, f Filter, limit, offset int) ([]*Currency, int, error)
	GetCurrency(context context.Context, id int64) (*Currency, error)
	GetCurrencyByCode(context context.Context, code string) (*Currency, error)

	CreateCurrency(context context.Context, c *Currency) error
	UpdateCurrency(context context.Context, c *Currency) error

	// SetDefaultCurrency clears the previous default, marks the given
	// currency and resets its rate to 1, in one transaction.
	SetDefaultCurrency(context context.Context, id int64) error

	// DeleteCurrency returns dberr.ErrNotFound when no row matched.
	DeleteCurrency(context context.Context, id int64) error
}
