/*
Package brand provides the brand resource of the catalog domain.

Brands are tenant-scoped and carry per-language translations; reads flatten
the translation for the requested language into the top-level payload.
*/
package brand

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
)

// Handler implements the HTTP layer for brand management.
type Handler struct {
	brandService *Service
}

// NewHandler constructs a new brand [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{brandService: service}
}

// Routes returns a [chi.Router] configured with the brand endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBrands)
	router.Post("/", handler.createBrand)
	router.Get("/by-slug/{slug}", handler.getBrandBySlug)
	router.Delete("/by-slug/{slug}", handler.deleteBrandBySlug)
	router.Get("/{id}", handler.getBrand)
	router.Put("/{id}", handler.updateBrand)
	router.Delete("/{id}", handler.deleteBrand)
	router.Get("/{id}/translations", handler.getTranslations)

	return router
}

// brandRequest defines the JSON payload for brand create and update.
type brandRequest struct {
	Slug         string                 `json:"slug"`
	LogoURL      *string                `json:"logo_url"`
	BannerURL    *string                `json:"banner_url"`
	WebsiteURL   *string                `json:"website_url"`
	IsActive     *bool                  `json:"is_active"`
	IsFeatured   bool                   `json:"is_featured"`
	SortOrder    int                    `json:"sort_order"`
	Translations map[string]Translation `json:"translations"`
}

func (r brandRequest) toEntity() *Brand {
	return &Brand{
		Slug:         r.Slug,
		LogoURL:      r.LogoURL,
		BannerURL:    r.BannerURL,
		WebsiteURL:   r.WebsiteURL,
		IsActive:     pointer.Fallback(r.IsActive, true),
		IsFeatured:   r.IsFeatured,
		SortOrder:    r.SortOrder,
		Translations: r.Translations,
	}
}

/*
GET /api/v1/brands.

Description: Lists the tenant's brands, paginated and optionally filtered.

Query:
  - search: matches slug and translated name
  - featured: "true" restricts to featured brands
  - active: "true" restricts to active brands
  - lang: translation language for display fields
  - sort, dir: name | created (default sort_order), asc | desc

Response:
  - 200: []Brand with pagination meta
*/
func (handler *Handler) listBrands(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Search:       request.URL.Query().Get("search"),
		FeaturedOnly: convert.ToBool(request.URL.Query().Get("featured")),
		ActiveOnly:   convert.ToBool(request.URL.Query().Get("active")),
		Sort:         request.URL.Query().Get("sort"),
		SortDir:      request.URL.Query().Get("dir"),
	}

	brands, total, err := handler.brandService.ListBrands(
		request.Context(), tenantID, requestutil.Language(request), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, brands, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/brands/{id}.

Response:
  - 200: Brand
  - 404: NOT_FOUND: No brand with this id in the tenant
*/
func (handler *Handler) getBrand(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	brand, err := handler.brandService.GetBrand(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")), requestutil.Language(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, brand)
}

/*
GET /api/v1/brands/by-slug/{slug}.

Description: Resolves a brand by its alternate key. Pass all_translations=true
to receive the full language map.

Response:
  - 200: Brand
  - 404: NOT_FOUND
*/
func (handler *Handler) getBrandBySlug(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	brand, err := handler.brandService.GetBrandBySlug(
		request.Context(), tenantID, requestutil.Param(request, "slug"), requestutil.Language(request),
		convert.ToBool(request.URL.Query().Get("all_translations")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, brand)
}

/*
POST /api/v1/brands.

Response:
  - 201: Brand: The stored brand as re-read from the database
  - 409: CONFLICT: Slug already used by another brand of this tenant
  - 422: VALIDATION_ERROR: Field-level failures
*/
func (handler *Handler) createBrand(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input brandRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	brand, err := handler.brandService.CreateBrand(request.Context(), tenantID, input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, brand)
}

/*
PUT /api/v1/brands/{id}.

Description: Full replace of the brand row and its translations.

Response:
  - 200: Brand
  - 404: NOT_FOUND
  - 409: CONFLICT: Slug collision with another brand
  - 422: VALIDATION_ERROR
*/
func (handler *Handler) updateBrand(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input brandRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	brand, err := handler.brandService.UpdateBrand(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, brand)
}

/*
DELETE /api/v1/brands/{id}.

Response:
  - 200: {deleted:true}
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteBrand(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.brandService.DeleteBrand(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}

/*
DELETE /api/v1/brands/by-slug/{slug}.

Response:
  - 200: {deleted:true}
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteBrandBySlug(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.brandService.DeleteBrandBySlug(
		request.Context(), tenantID, requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}

/*
GET /api/v1/brands/{id}/translations.

Description: Returns the raw per-language translation map for the editor UI.

Response:
  - 200: map[lang]Translation
  - 404: NOT_FOUND
*/
func (handler *Handler) getTranslations(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	translations, err := handler.brandService.GetTranslations(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, translations)
}
