/*
Package colorsetting provides the per-theme color palette of the settings domain.

Keys follow the pattern [a-z0-9_.-]+ and values are #RRGGBB colors. The bulk
endpoint upserts a whole palette atomically, and deletes are idempotent.
*/
package colorsetting

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
)

// Handler implements the HTTP layer for color setting management.
type Handler struct {
	settingService *Service
}

// NewHandler constructs a new color setting [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{settingService: service}
}

// Routes returns a [chi.Router] configured with the color setting endpoints.
// All routes are mounted under a theme: /themes/{themeID}/color-settings.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSettings)
	router.Post("/", handler.createSetting)
	router.Put("/bulk", handler.upsertSettings)
	router.Get("/by-key/{key}", handler.getSettingByKey)
	router.Delete("/by-key/{key}", handler.deleteSettingByKey)
	router.Get("/{id}", handler.getSetting)
	router.Put("/{id}", handler.updateSetting)
	router.Delete("/{id}", handler.deleteSetting)

	return router
}

// settingRequest defines the JSON payload for a single color setting.
type settingRequest struct {
	SettingKey string `json:"setting_key"`
	ColorValue string `json:"color_value"`
	SortOrder  int    `json:"sort_order"`
}

func (r settingRequest) toEntity(themeID int64) *ColorSetting {
	return &ColorSetting{
		ThemeID:    themeID,
		SettingKey: r.SettingKey,
		ColorValue: r.ColorValue,
		SortOrder:  r.SortOrder,
	}
}

// bulkRequest defines the JSON payload for the bulk upsert endpoint.
type bulkRequest struct {
	Settings []settingRequest `json:"settings"`
}

func themeID(request *http.Request) int64 {
	return convert.ToInt64(requestutil.Param(request, "themeID"))
}

/*
GET /api/v1/themes/{themeID}/color-settings.

Response:
  - 200: []ColorSetting with pagination meta
  - 404: NOT_FOUND: Theme is not the tenant's
*/
func (handler *Handler) listSettings(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	settings, total, err := handler.settingService.ListSettings(
		request.Context(), tenantID, themeID(request), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, settings, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getSetting(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.settingService.GetSetting(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, setting)
}

func (handler *Handler) getSettingByKey(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.settingService.GetSettingByKey(
		request.Context(), tenantID, themeID(request), requestutil.Param(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, setting)
}

/*
POST /api/v1/themes/{themeID}/color-settings.

Response:
  - 201: ColorSetting
  - 409: CONFLICT: Key already set for this theme
  - 422: VALIDATION_ERROR: Bad key pattern or color value
*/
func (handler *Handler) createSetting(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input settingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.settingService.CreateSetting(
		request.Context(), tenantID, input.toEntity(themeID(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, setting)
}

func (handler *Handler) updateSetting(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input settingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.settingService.UpdateSetting(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")),
		input.toEntity(themeID(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, setting)
}

/*
PUT /api/v1/themes/{themeID}/color-settings/bulk.

Description: Upserts the whole palette in one transaction; existing keys are
updated, new keys inserted. Returns the resulting full palette.
*/
func (handler *Handler) upsertSettings(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bulkRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tid := themeID(request)
	settings := make([]*ColorSetting, 0, len(input.Settings))
	for _, s := range input.Settings {
		settings = append(settings, s.toEntity(tid))
	}

	stored, total, err := handler.settingService.UpsertSettings(request.Context(), tenantID, tid, settings)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, stored, pagination.NewMeta(1, len(stored), total))
}

/*
DELETE /api/v1/themes/{themeID}/color-settings/{id}.

Description: Idempotent; deleting an absent setting still succeeds.
*/
func (handler *Handler) deleteSetting(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.settingService.DeleteSetting(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}

func (handler *Handler) deleteSettingByKey(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.settingService.DeleteSettingByKey(
		request.Context(), tenantID, themeID(request), requestutil.Param(request, "key")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
