package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listEntries)
}

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		EntityType: request.URL.Query().Get("entity_type"),
		EntityID:   convert.ToInt64(request.URL.Query().Get("entity_id")),
		Action:     Action(request.URL.Query().Get("action")),
	}

	entries, total, err := handler.service.ListEntries(request.Context(), tenantID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}
