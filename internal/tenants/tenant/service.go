package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/validate"
)

// Lowercase hostname labels separated by dots, no scheme and no port.
var domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListTenants(context context.Context, f Filter, limit, offset int) ([]*Tenant, int, error) {
	return service.repo.ListTenants(context, f, limit, offset)
}

func (service *Service) GetTenant(context context.Context, id int64) (*Tenant, error) {
	t, err := service.repo.GetTenant(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return t, nil
}

func (service *Service) GetTenantByDomain(context context.Context, domain string) (*Tenant, error) {
	t, err := service.repo.GetTenantByDomain(context, strings.ToLower(domain))
	if err != nil {
		return nil, notFoundAs(err)
	}
	return t, nil
}

func (service *Service) CreateTenant(context context.Context, t *Tenant) (*Tenant, error) {
	t.Domain = strings.ToLower(t.Domain)
	if t.Plan == "" {
		t.Plan = PlanFree
	}
	if t.Status == "" {
		t.Status = StatusActive
	}
	if err := validateTenant(t); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetTenantByDomain(context, t.Domain); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Tenant %s already exists", t.Domain))
	}

	if err := service.repo.CreateTenant(context, t); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetTenant(context, t.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("tenant %d unreadable after create: %w", t.ID, err))
	}

	service.logger.Info("tenant_created", slog.String("domain", stored.Domain))
	return stored, nil
}

func (service *Service) UpdateTenant(context context.Context, id int64, t *Tenant) (*Tenant, error) {
	t.Domain = strings.ToLower(t.Domain)
	if err := validateTenant(t); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetTenant(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if t.Domain != previous.Domain {
		if _, err := service.repo.GetTenantByDomain(context, t.Domain); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Tenant %s already exists", t.Domain))
		}
	}

	t.ID = id
	if err := service.repo.UpdateTenant(context, t); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetTenant(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("tenant %d unreadable after update: %w", id, err))
	}

	service.logger.Info("tenant_updated", slog.String("domain", stored.Domain))
	return stored, nil
}

func (service *Service) DeleteTenant(context context.Context, id int64) error {
	previous, err := service.repo.GetTenant(context, id)
	if err != nil {
		return notFoundAs(err)
	}

	// Member accounts reference tenants; refuse rather than orphan or cascade.
	hasMembers, err := service.repo.HasMembers(context, id)
	if err != nil {
		return err
	}
	if hasMembers {
		return apperr.Unprocessable("Tenant still has member accounts attached")
	}

	if err := service.repo.DeleteTenant(context, id); err != nil {
		return notFoundAs(err)
	}

	service.logger.Warn("tenant_deleted", slog.String("domain", previous.Domain))
	return nil
}

func validateTenant(t *Tenant) error {
	validator := &validate.Validator{}

	validator.Required(FieldDomain, t.Domain).
		MaxLen(FieldDomain, t.Domain, 253).
		Custom(FieldDomain, t.Domain != "" && !domainPattern.MatchString(t.Domain),
			"Must be a bare lowercase hostname such as shop.example.com")
	validator.Required(FieldName, t.Name).MaxLen(FieldName, t.Name, 150)
	validator.OneOf(FieldPlan, t.Plan, PlanFree, PlanStarter, PlanBusiness, PlanEnterprise)
	validator.OneOf(FieldStatus, t.Status, StatusActive, StatusSuspended, StatusClosed)

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Tenant")
	}
	return err
}
