package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/validate"
	"github.com/vendora/vendora/pkg/slug"
)

const entityType = "theme"

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

func (service *Service) ListThemes(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Theme, int, error) {
	if f.Status != "" {
		if err := (&validate.Validator{}).OneOf(FieldStatus, f.Status, Statuses...).Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.ListThemes(context, tenantID, f, limit, offset)
}

func (service *Service) GetTheme(context context.Context, tenantID, id int64) (*Theme, error) {
	t, err := service.repo.GetTheme(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return t, nil
}

func (service *Service) GetThemeBySlug(context context.Context, tenantID int64, slug string) (*Theme, error) {
	t, err := service.repo.GetThemeBySlug(context, tenantID, slug)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return t, nil
}

// GetDefaultTheme returns the theme currently marked default for the tenant.
func (service *Service) GetDefaultTheme(context context.Context, tenantID int64) (*Theme, error) {
	t, err := service.repo.GetDefaultTheme(context, tenantID)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return t, nil
}

func (service *Service) CreateTheme(context context.Context, tenantID int64, t *Theme) (*Theme, error) {
	if t.Slug == "" {
		t.Slug = slug.From(t.Name)
	}
	if t.Status == "" {
		t.Status = StatusDraft
	}
	if err := validateTheme(t); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetThemeBySlug(context, tenantID, t.Slug); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Theme %q already exists", t.Slug))
	}

	t.TenantID = tenantID
	if err := service.repo.CreateTheme(context, t); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetTheme(context, tenantID, t.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("theme %d unreadable after create: %w", t.ID, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   stored.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("theme_created", slog.Int64("theme_id", stored.ID), slog.String("slug", stored.Slug))
	return stored, nil
}

func (service *Service) UpdateTheme(context context.Context, tenantID, id int64, t *Theme) (*Theme, error) {
	if err := validateTheme(t); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetTheme(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if t.Slug != previous.Slug {
		if _, err := service.repo.GetThemeBySlug(context, tenantID, t.Slug); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Theme %q already exists", t.Slug))
		}
	}

	// An archived theme cannot stay the tenant default.
	if t.Status == StatusArchived && previous.IsDefault {
		return nil, apperr.Unprocessable("The default theme cannot be archived")
	}

	t.ID = id
	t.TenantID = tenantID
	if err := service.repo.UpdateTheme(context, t); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetTheme(context, tenantID, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("theme %d unreadable after update: %w", id, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(previous, stored),
	})
	service.logger.Info("theme_updated", slog.Int64("theme_id", id))
	return stored, nil
}

// SetDefaultTheme promotes one published theme to the tenant default.
func (service *Service) SetDefaultTheme(context context.Context, tenantID, id int64) (*Theme, error) {
	t, err := service.repo.GetTheme(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if t.Status != StatusPublished {
		return nil, apperr.Unprocessable("Only a published theme can be made default")
	}

	if err := service.repo.SetDefaultTheme(context, tenantID, id); err != nil {
		return nil, notFoundAs(err)
	}

	stored, err := service.repo.GetTheme(context, tenantID, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("theme %d unreadable after set-default: %w", id, err))
	}

	service.logger.Info("theme_default_changed", slog.Int64("theme_id", id))
	return stored, nil
}

func (service *Service) DeleteTheme(context context.Context, tenantID, id int64) error {
	previous, err := service.repo.GetTheme(context, tenantID, id)
	if err != nil {
		return notFoundAs(err)
	}
	if previous.IsDefault {
		return apperr.Unprocessable("The default theme cannot be deleted")
	}

	if err := service.repo.DeleteTheme(context, tenantID, id); err != nil {
		return notFoundAs(err)
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Changes:    audit.Diff(previous, nil),
	})
	service.logger.Warn("theme_deleted", slog.Int64("theme_id", id))
	return nil
}

func validateTheme(t *Theme) error {
	validator := &validate.Validator{}

	validator.Required(FieldSlug, t.Slug).Slug(FieldSlug, t.Slug).MaxLen(FieldSlug, t.Slug, 120)
	validator.Required(FieldName, t.Name).MaxLen(FieldName, t.Name, 200)
	validator.MaxLen(FieldVersion, t.Version, 40)
	validator.OneOf(FieldStatus, t.Status, Statuses...)

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Theme")
	}
	return err
}
