/*
Package currency provides the platform-wide currency registry.

Currencies are global, not tenant-scoped; storefronts opt into active ones.
Exactly one currency is the default pricing anchor.
*/
package currency

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
)

// Handler implements the HTTP layer for currency management.
type Handler struct {
	currencyService *Service
}

// NewHandler constructs a new currency [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{currencyService: service}
}

// Routes returns a [chi.Router] configured with the currency endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCurrencies)
	router.Post("/", handler.createCurrency)
	router.Get("/by-code/{code}", handler.getCurrencyByCode)
	router.Get("/{id}", handler.getCurrency)
	router.Put("/{id}", handler.updateCurrency)
	router.Delete("/{id}", handler.deleteCurrency)
	router.Post("/{id}/set-default", handler.setDefaultCurrency)

	return router
}

// currencyRequest defines the JSON payload for currency create and update.
type currencyRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	ExchangeRate float64 `json:"exchange_rate"`
	IsActive     *bool   `json:"is_active"`
}

func (r currencyRequest) toEntity() *Currency {
	return &Currency{
		Code:         r.Code,
		Name:         r.Name,
		Symbol:       r.Symbol,
		ExchangeRate: r.ExchangeRate,
		IsActive:     pointer.Fallback(r.IsActive, true),
	}
}

func (handler *Handler) listCurrencies(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Search:     request.URL.Query().Get("search"),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
	}

	currencies, total, err := handler.currencyService.ListCurrencies(
		request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, currencies, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getCurrency(writer http.ResponseWriter, request *http.Request) {
	currency, err := handler.currencyService.GetCurrency(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, currency)
}

func (handler *Handler) getCurrencyByCode(writer http.ResponseWriter, request *http.Request) {
	currency, err := handler.currencyService.GetCurrencyByCode(
		request.Context(), requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, currency)
}

/*
POST /api/v1/currencies.

Response:
  - 201: Currency
  - 409: CONFLICT: Code already registered
  - 422: VALIDATION_ERROR
*/
func (handler *Handler) createCurrency(writer http.ResponseWriter, request *http.Request) {
	var input currencyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	currency, err := handler.currencyService.CreateCurrency(request.Context(), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, currency)
}

func (handler *Handler) updateCurrency(writer http.ResponseWriter, request *http.Request) {
	var input currencyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	currency, err := handler.currencyService.UpdateCurrency(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, currency)
}

func (handler *Handler) setDefaultCurrency(writer http.ResponseWriter, request *http.Request) {
	currency, err := handler.currencyService.SetDefaultCurrency(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, currency)
}

func (handler *Handler) deleteCurrency(writer http.ResponseWriter, request *http.Request) {
	if err := handler.currencyService.DeleteCurrency(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
