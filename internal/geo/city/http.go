/*
Package city provides the platform-wide city registry of the geo domain.

Every city references a registered country; the service refuses payloads
pointing at unknown countries before they reach the foreign key.
*/
package city

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
)

// Handler implements the HTTP layer for city management.
type Handler struct {
	cityService *Service
}

// NewHandler constructs a new city [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{cityService: service}
}

// Routes returns a [chi.Router] configured with the city endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCities)
	router.Post("/", handler.createCity)
	router.Get("/{id}", handler.getCity)
	router.Put("/{id}", handler.updateCity)
	router.Delete("/{id}", handler.deleteCity)

	return router
}

// cityRequest defines the JSON payload for city create and update.
type cityRequest struct {
	CountryID int64    `json:"country_id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsActive  *bool    `json:"is_active"`
}

func (r cityRequest) toEntity() *City {
	return &City{
		CountryID: r.CountryID,
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		IsActive:  pointer.Fallback(r.IsActive, true),
	}
}

func (handler *Handler) listCities(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		CountryID:  convert.ToInt64(request.URL.Query().Get("country_id")),
		Search:     request.URL.Query().Get("search"),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
	}

	cities, total, err := handler.cityService.ListCities(
		request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cities, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getCity(writer http.ResponseWriter, request *http.Request) {
	city, err := handler.cityService.GetCity(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, city)
}

/*
POST /api/v1/cities.

Response:
  - 201: City
  - 422: VALIDATION_ERROR or UNPROCESSABLE (unknown country)
*/
func (handler *Handler) createCity(writer http.ResponseWriter, request *http.Request) {
	var input cityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	city, err := handler.cityService.CreateCity(request.Context(), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, city)
}

func (handler *Handler) updateCity(writer http.ResponseWriter, request *http.Request) {
	var input cityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	city, err := handler.cityService.UpdateCity(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, city)
}

func (handler *Handler) deleteCity(writer http.ResponseWriter, request *http.Request) {
	if err := handler.cityService.DeleteCity(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
