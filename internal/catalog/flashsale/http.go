/*
Package flashsale provides the flash sale resource of the catalog domain.

A flash sale is a time-boxed discount on one product. The phase
(upcoming/running/ended) is derived from the window at read time.
*/
package flashsale

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
)

// Handler implements the HTTP layer for flash sale management.
type Handler struct {
	saleService *Service
}

// NewHandler constructs a new flash sale [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{saleService: service}
}

// Routes returns a [chi.Router] configured with the flash sale endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listFlashSales)
	router.Post("/", handler.createFlashSale)
	router.Get("/running", handler.listRunningFlashSales)
	router.Get("/by-slug/{slug}", handler.getFlashSaleBySlug)
	router.Get("/{id}", handler.getFlashSale)
	router.Put("/{id}", handler.updateFlashSale)
	router.Delete("/{id}", handler.deleteFlashSale)

	return router
}

// flashSaleRequest defines the JSON payload for flash sale create and update.
type flashSaleRequest struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	ProductID     int64     `json:"product_id"`
	OriginalPrice float64   `json:"original_price"`
	SalePrice     float64   `json:"sale_price"`
	Quantity      int       `json:"quantity"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	IsActive      *bool     `json:"is_active"`
}

func (r flashSaleRequest) toEntity() *FlashSale {
	return &FlashSale{
		Slug:          r.Slug,
		Title:         r.Title,
		ProductID:     r.ProductID,
		OriginalPrice: r.OriginalPrice,
		SalePrice:     r.SalePrice,
		Quantity:      r.Quantity,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		IsActive:      pointer.Fallback(r.IsActive, true),
	}
}

func (handler *Handler) listFlashSales(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Search:     request.URL.Query().Get("search"),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
		Sort:       request.URL.Query().Get("sort"),
		SortDir:    request.URL.Query().Get("dir"),
	}

	sales, total, err := handler.saleService.ListFlashSales(
		request.Context(), tenantID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sales, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/flash-sales/running.

Description: Lists active sales whose window contains the current time.
*/
func (handler *Handler) listRunningFlashSales(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{ActiveOnly: true, RunningAt: time.Now().UTC()}

	sales, total, err := handler.saleService.ListFlashSales(
		request.Context(), tenantID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sales, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getFlashSale(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sale, err := handler.saleService.GetFlashSale(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sale)
}

func (handler *Handler) getFlashSaleBySlug(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sale, err := handler.saleService.GetFlashSaleBySlug(
		request.Context(), tenantID, requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sale)
}

/*
POST /api/v1/flash-sales.

Response:
  - 201: FlashSale
  - 409: CONFLICT: Slug already used
  - 422: VALIDATION_ERROR (includes sale_price >= original_price)
*/
func (handler *Handler) createFlashSale(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input flashSaleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sale, err := handler.saleService.CreateFlashSale(request.Context(), tenantID, input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sale)
}

func (handler *Handler) updateFlashSale(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input flashSaleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sale, err := handler.saleService.UpdateFlashSale(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sale)
}

func (handler *Handler) deleteFlashSale(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.saleService.DeleteFlashSale(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
