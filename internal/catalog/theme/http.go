/*
Package theme provides the storefront theme resource of the catalog domain.

A tenant owns many themes; at most one is the default served to the
storefront. Structured color and font settings attach to themes via the
settings domain.
*/
package theme

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
)

// Handler implements the HTTP layer for theme management.
type Handler struct {
	themeService *Service
}

// NewHandler constructs a new theme [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{themeService: service}
}

// Routes returns a [chi.Router] configured with the theme endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listThemes)
	router.Post("/", handler.createTheme)
	router.Get("/default", handler.getDefaultTheme)
	router.Get("/by-slug/{slug}", handler.getThemeBySlug)
	router.Get("/{id}", handler.getTheme)
	router.Put("/{id}", handler.updateTheme)
	router.Delete("/{id}", handler.deleteTheme)
	router.Post("/{id}/set-default", handler.setDefaultTheme)

	return router
}

// themeRequest defines the JSON payload for theme create and update.
type themeRequest struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Version     string          `json:"version"`
	Status      string          `json:"status"`
	Colors      json.RawMessage `json:"colors"`
	Typography  json.RawMessage `json:"typography"`
	Layout      json.RawMessage `json:"layout"`
}

func (r themeRequest) toEntity() *Theme {
	return &Theme{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Version:     r.Version,
		Status:      r.Status,
		Colors:      r.Colors,
		Typography:  r.Typography,
		Layout:      r.Layout,
	}
}

/*
GET /api/v1/themes.

Query:
  - search: matches slug and name
  - status: draft | published | archived
  - sort, dir: name | created | updated (default puts the tenant default first)

Response:
  - 200: []Theme with pagination meta
*/
func (handler *Handler) listThemes(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Search:  request.URL.Query().Get("search"),
		Status:  request.URL.Query().Get("status"),
		Sort:    request.URL.Query().Get("sort"),
		SortDir: request.URL.Query().Get("dir"),
	}

	themes, total, err := handler.themeService.ListThemes(
		request.Context(), tenantID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, themes, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTheme(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.GetTheme(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, theme)
}

func (handler *Handler) getThemeBySlug(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.GetThemeBySlug(
		request.Context(), tenantID, requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, theme)
}

func (handler *Handler) getDefaultTheme(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.GetDefaultTheme(request.Context(), tenantID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, theme)
}

/*
POST /api/v1/themes.

Response:
  - 201: Theme
  - 409: CONFLICT: Slug already used
  - 422: VALIDATION_ERROR
*/
func (handler *Handler) createTheme(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input themeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.CreateTheme(request.Context(), tenantID, input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, theme)
}

func (handler *Handler) updateTheme(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input themeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.UpdateTheme(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, theme)
}

/*
POST /api/v1/themes/{id}/set-default.

Description: Promotes a published theme to the tenant default, demoting the
previous default atomically.

Response:
  - 200: Theme
  - 404: NOT_FOUND
  - 422: UNPROCESSABLE: Theme is not published
*/
func (handler *Handler) setDefaultTheme(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.SetDefaultTheme(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, theme)
}

func (handler *Handler) deleteTheme(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.themeService.DeleteTheme(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
