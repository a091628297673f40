package flashsale

import "context"

type Repository interface {
	ListFlashSales(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*FlashSale, int, error)
	GetFlashSale(context context.Context, tenantID, id int64) (*FlashSale, error)
	GetFlashSaleBySlug(context context.Context, tenantID int64, slug string) (*FlashSale, error)

	CreateFlashSale(context context.Context, s *FlashSale) error
	UpdateFlashSale(context context.Context, s *FlashSale) error

	// DeleteFlashSale returns dberr.ErrNotFound when no row matched.
	DeleteFlashSale(context context.Context, tenantID, id int64) error
}
