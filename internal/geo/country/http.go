/*
Package country provides the platform-wide country registry of the geo domain.

Countries are global reference data keyed by ISO 3166-1 alpha-2 code.
*/
package country

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
)

// Handler implements the HTTP layer for country management.
type Handler struct {
	countryService *Service
}

// NewHandler constructs a new country [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{countryService: service}
}

// Routes returns a [chi.Router] configured with the country endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCountries)
	router.Post("/", handler.createCountry)
	router.Get("/by-code/{code}", handler.getCountryByCode)
	router.Get("/{id}", handler.getCountry)
	router.Put("/{id}", handler.updateCountry)
	router.Delete("/{id}", handler.deleteCountry)

	return router
}

// countryRequest defines the JSON payload for country create and update.
type countryRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dial_code"`
	IsActive *bool  `json:"is_active"`
}

func (r countryRequest) toEntity() *Country {
	return &Country{
		Code:     r.Code,
		Name:     r.Name,
		DialCode: r.DialCode,
		IsActive: pointer.Fallback(r.IsActive, true),
	}
}

func (handler *Handler) listCountries(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Search:     request.URL.Query().Get("search"),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
	}

	countries, total, err := handler.countryService.ListCountries(
		request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, countries, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	country, err := handler.countryService.GetCountry(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, country)
}

func (handler *Handler) getCountryByCode(writer http.ResponseWriter, request *http.Request) {
	country, err := handler.countryService.GetCountryByCode(
		request.Context(), requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, country)
}

func (handler *Handler) createCountry(writer http.ResponseWriter, request *http.Request) {
	var input countryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.countryService.CreateCountry(request.Context(), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, country)
}

func (handler *Handler) updateCountry(writer http.ResponseWriter, request *http.Request) {
	var input countryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.countryService.UpdateCountry(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, country)
}

func (handler *Handler) deleteCountry(writer http.ResponseWriter, request *http.Request) {
	if err := handler.countryService.DeleteCountry(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
