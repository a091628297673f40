/*
Package timezone provides the platform-wide timezone registry of the geo domain.

The timezone name is the alternate key; registering the same name twice is a
conflict, and deletion works by id or by name.
*/
package timezone

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
)

// Handler implements the HTTP layer for timezone management.
type Handler struct {
	timezoneService *Service
}

// NewHandler constructs a new timezone [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{timezoneService: service}
}

// Routes returns a [chi.Router] configured with the timezone endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTimezones)
	router.Post("/", handler.createTimezone)
	router.Get("/by-name/{name}", handler.getTimezoneByName)
	router.Delete("/by-name/{name}", handler.deleteTimezoneByName)
	router.Get("/{id}", handler.getTimezone)
	router.Put("/{id}", handler.updateTimezone)
	router.Delete("/{id}", handler.deleteTimezone)

	return router
}

// timezoneRequest defines the JSON payload for timezone create and update.
type timezoneRequest struct {
	Name      string `json:"timezone"`
	UTCOffset int    `json:"utc_offset_minutes"`
}

func (r timezoneRequest) toEntity() *Timezone {
	return &Timezone{Name: r.Name, UTCOffset: r.UTCOffset}
}

func (handler *Handler) listTimezones(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get("search")}

	timezones, total, err := handler.timezoneService.ListTimezones(
		request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, timezones, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTimezone(writer http.ResponseWriter, request *http.Request) {
	timezone, err := handler.timezoneService.GetTimezone(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, timezone)
}

func (handler *Handler) getTimezoneByName(writer http.ResponseWriter, request *http.Request) {
	timezone, err := handler.timezoneService.GetTimezoneByName(
		request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, timezone)
}

/*
POST /api/v1/timezones.

Response:
  - 201: Timezone
  - 409: CONFLICT: Name already registered
  - 422: VALIDATION_ERROR
*/
func (handler *Handler) createTimezone(writer http.ResponseWriter, request *http.Request) {
	var input timezoneRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	timezone, err := handler.timezoneService.CreateTimezone(request.Context(), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, timezone)
}

func (handler *Handler) updateTimezone(writer http.ResponseWriter, request *http.Request) {
	var input timezoneRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	timezone, err := handler.timezoneService.UpdateTimezone(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, timezone)
}

func (handler *Handler) deleteTimezone(writer http.ResponseWriter, request *http.Request) {
	if err := handler.timezoneService.DeleteTimezone(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}

func (handler *Handler) deleteTimezoneByName(writer http.ResponseWriter, request *http.Request) {
	if err := handler.timezoneService.DeleteTimezoneByName(
		request.Context(), requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
