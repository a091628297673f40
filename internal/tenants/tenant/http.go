/*
Package tenant provides the platform-level tenant registry.

Tenants are the stores hosted on the platform, addressed by a unique bare
domain. Registry endpoints are platform tooling, not tenant admin surface, so
none of them consult the request's tenant scope.
*/
package tenant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
)

// Handler implements the HTTP layer for tenant management.
type Handler struct {
	tenantService *Service
}

// NewHandler constructs a new tenant [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{tenantService: service}
}

// Routes returns a [chi.Router] configured with the tenant registry endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTenants)
	router.Post("/", handler.createTenant)
	router.Get("/by-domain/{domain}", handler.getTenantByDomain)
	router.Get("/{id}", handler.getTenant)
	router.Put("/{id}", handler.updateTenant)
	router.Delete("/{id}", handler.deleteTenant)

	return router
}

// tenantRequest defines the JSON payload for tenant create and update.
type tenantRequest struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

func (r tenantRequest) toEntity() *Tenant {
	return &Tenant{
		Domain: r.Domain,
		Name:   r.Name,
		Plan:   r.Plan,
		Status: r.Status,
	}
}

/*
GET /api/v1/tenants.

Request: ?search=&plan=&status=&page=&limit=

Response:
  - 200: []Tenant with pagination meta
*/
func (handler *Handler) listTenants(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Search: request.URL.Query().Get("search"),
		Plan:   request.URL.Query().Get("plan"),
		Status: request.URL.Query().Get("status"),
	}

	tenants, total, err := handler.tenantService.ListTenants(
		request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tenants, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTenant(writer http.ResponseWriter, request *http.Request) {
	tenant, err := handler.tenantService.GetTenant(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tenant)
}

func (handler *Handler) getTenantByDomain(writer http.ResponseWriter, request *http.Request) {
	tenant, err := handler.tenantService.GetTenantByDomain(
		request.Context(), requestutil.Param(request, "domain"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tenant)
}

/*
POST /api/v1/tenants.

Response:
  - 201: Tenant
  - 409: CONFLICT: Domain already registered
  - 422: VALIDATION_ERROR: Bad domain, plan or status
*/
func (handler *Handler) createTenant(writer http.ResponseWriter, request *http.Request) {
	var input tenantRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tenant, err := handler.tenantService.CreateTenant(request.Context(), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tenant)
}

func (handler *Handler) updateTenant(writer http.ResponseWriter, request *http.Request) {
	var input tenantRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tenant, err := handler.tenantService.UpdateTenant(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id")), input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tenant)
}

/*
DELETE /api/v1/tenants/{id}.

Description: Refused while member accounts still belong to the tenant.
*/
func (handler *Handler) deleteTenant(writer http.ResponseWriter, request *http.Request) {
	if err := handler.tenantService.DeleteTenant(
		request.Context(), convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
