/*
Package member provides the admin accounts of a tenant.

Members sign in to the admin API; each carries a bcrypt-hashed password and a
role from the sec package hierarchy. The hash is never serialized.
*/
package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vendora/vendora/internal/platform/request"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/pkg/convert"
	"github.com/vendora/vendora/pkg/pagination"
	"github.com/vendora/vendora/pkg/pointer"
)

// Handler implements the HTTP layer for member management.
type Handler struct {
	memberService *Service
}

// NewHandler constructs a new member [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{memberService: service}
}

// Routes returns a [chi.Router] configured with the member endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMembers)
	router.Post("/", handler.createMember)
	router.Get("/by-email/{email}", handler.getMemberByEmail)
	router.Get("/{id}", handler.getMember)
	router.Put("/{id}", handler.updateMember)
	router.Put("/{id}/password", handler.changePassword)
	router.Delete("/{id}", handler.deleteMember)

	return router
}

// memberRequest defines the JSON payload for member create and update.
// Password is only honored on create; updates use the password endpoint.
type memberRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsActive    *bool  `json:"is_active"`
}

func (r memberRequest) toEntity(tenantID int64) *Member {
	return &Member{
		TenantID:    tenantID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Role:        sec.UserRole(r.Role),
		IsActive:    pointer.Fallback(r.IsActive, true),
	}
}

// passwordRequest defines the JSON payload for the password endpoint.
type passwordRequest struct {
	Password string `json:"password"`
}

/*
GET /api/v1/members.

Request: ?search=&role=&active=&page=&limit=

Response:
  - 200: []Member with pagination meta (password hash never included)
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Search:     request.URL.Query().Get("search"),
		Role:       request.URL.Query().Get("role"),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
	}

	members, total, err := handler.memberService.ListMembers(
		request.Context(), tenantID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getMember(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.memberService.GetMember(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, member)
}

func (handler *Handler) getMemberByEmail(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.memberService.GetMemberByEmail(
		request.Context(), tenantID, requestutil.Param(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, member)
}

/*
POST /api/v1/members.

Response:
  - 201: Member
  - 409: CONFLICT: Email already registered for this tenant
  - 422: VALIDATION_ERROR: Bad email, role or short password
*/
func (handler *Handler) createMember(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memberRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.memberService.CreateMember(
		request.Context(), input.toEntity(tenantID), input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, member)
}

func (handler *Handler) updateMember(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memberRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.memberService.UpdateMember(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")),
		input.toEntity(tenantID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, member)
}

/*
PUT /api/v1/members/{id}/password.

Request: {"password": "..."}
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input passwordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.memberService.ChangePassword(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id")),
		input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct {
		Updated bool `json:"updated"`
	}{Updated: true})
}

func (handler *Handler) deleteMember(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.TenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.memberService.DeleteMember(
		request.Context(), tenantID, convert.ToInt64(requestutil.Param(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}
