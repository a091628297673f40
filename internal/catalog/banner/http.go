/*
Package banner provides the promotional banner resource of the catalog domain.

Banners hang off a theme and carry an optional display window; the live
listing filters to banners whose window contains the current time.
*/
package banner

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
	"github.com/vendora/vendora/pkg/query"
)

// Handler implements the HTTP layer for banner management.
type Handler struct {
	bannerService *Service
}

// NewHandler constructs a new banner [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{bannerService: service}
}

// Routes returns a [chi.Router] configured with the banner endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBanners)
	router.Post("/", handler.createBanner)
	router.Get("/live", handler.listLiveBanners)
	router.Get("/{id}", handler.getBanner)
	router.Put("/{id}", handler.updateBanner)
	router.Delete("/{id}", handler.deleteBanner)

	return router
}

// bannerRequest defines the JSON payload for banner create and update.
type bannerRequest struct {
	ThemeID   int64      `json:"theme_id"`
	Title     string     `json:"title"`
	ImageURL  string     `json:"image_url"`
	TargetURL *string    `json:"target_url"`
	Placement string     `json:"placement"`
	IsActive  *bool      `json:"is_active"`
	SortOrder int        `json:"sort_order"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func (r bannerRequest) toEntity() *Banner {
	return &Banner{
		ThemeID:   r.ThemeID,
		Title:     r.Title,
		ImageURL:  r.ImageURL,
		TargetURL: r.TargetURL,
		Placement: r.Placement,
		IsActive:  pointer.Fallback(r.IsActive, true),
		SortOrder: r.SortOrder,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
	}
}

func filterFromRequest(request *http.Request) Filter {
	return Filter{
		ThemeID:    convert.ToInt64(request.URL.Query().Get("theme_id")),
		Placements: query.StringSlice(request.URL.Query().Get("placement")),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
	}
}

/*
GET /api/v1/banners.

Query:
  - theme_id, placement (comma-separated), active

Response:
  - 200: []Banner with pagination meta
*/
func (handler *Handler) listBanners(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	banners, total, err := handler.bannerService.ListBanners(
		request.Context(), tenantID, filterFromRequest(request), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, banners, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/banners/live.

Description: Lists active banners whose display window contains the current
time, the set the storefront would render right now.
*/
func (handler *Handler) listLiveBanners(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := filterFromRequest(request)
	filter.ActiveOnly = true
	filter.LiveAt = time.Now().UTC()

	banners, total, err := handler.bannerService.ListBanners(
		request.Context(), tenantID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, banners, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBanner(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	banner, err := handler.bannerService.GetBanner(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, banner)
}

/*
POST /api/v1/banners.

Response:
  - 201: Banner
  - 422: VALIDATION_ERROR or UNPROCESSABLE (unknown theme)
*/
func (handler *Handler) createBanner(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bannerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	banner, err := handler.bannerService.CreateBanner(request.Context(), tenantID, input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, banner)
}

func (handler *Handler) updateBanner(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bannerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	banner, err := handler.bannerService.UpdateBanner(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, banner)
}

func (handler *Handler) deleteBanner(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.bannerService.DeleteBanner(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
