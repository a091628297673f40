package banner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/validate"
)

const entityType = "banner"

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

func (service *Service) ListBanners(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Banner, int, error) {
	for _, p := range f.Placements {
		if err := (&validate.Validator{}).OneOf(FieldPlacement, p, Placements...).Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.ListBanners(context, tenantID, f, limit, offset)
}

func (service *Service) GetBanner(context context.Context, tenantID, id int64) (*Banner, error) {
	b, err := service.repo.GetBanner(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return b, nil
}

func (service *Service) CreateBanner(context context.Context, tenantID int64, b *Banner) (*Banner, error) {
	if err := service.validateBanner(context, tenantID, b); err != nil {
		return nil, err
	}

	b.TenantID = tenantID
	if err := service.repo.CreateBanner(context, b); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetBanner(context, tenantID, b.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("banner %d unreadable after create: %w", b.ID, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   stored.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("banner_created", slog.Int64("banner_id", stored.ID), slog.String("placement", stored.Placement))
	return stored, nil
}

func (service *Service) UpdateBanner(context context.Context, tenantID, id int64, b *Banner) (*Banner, error) {
	if err := service.validateBanner(context, tenantID, b); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetBanner(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	b.ID = id
	b.TenantID = tenantID
	if err := service.repo.UpdateBanner(context, b); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetBanner(context, tenantID, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("banner %d unreadable after update: %w", id, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(previous, stored),
	})
	service.logger.Info("banner_updated", slog.Int64("banner_id", id))
	return stored, nil
}

func (service *Service) DeleteBanner(context context.Context, tenantID, id int64) error {
	previous, err := service.repo.GetBanner(context, tenantID, id)
	if err != nil {
		return notFoundAs(err)
	}

	if err := service.repo.DeleteBanner(context, tenantID, id); err != nil {
		return notFoundAs(err)
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Changes:    audit.Diff(previous, nil),
	})
	service.logger.Warn("banner_deleted", slog.Int64("banner_id", id))
	return nil
}

func (service *Service) validateBanner(context context.Context, tenantID int64, b *Banner) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, b.Title).MaxLen(FieldTitle, b.Title, 200)
	validator.Required(FieldImageURL, b.ImageURL).URL(FieldImageURL, b.ImageURL)
	validator.OneOf(FieldPlacement, b.Placement, Placements...)
	validator.Range(FieldSortOrder, b.SortOrder, 0, 100000)
	validator.Custom(FieldThemeID, b.ThemeID <= 0, "A theme reference is required")

	if b.TargetURL != nil {
		validator.URL(FieldTargetURL, *b.TargetURL)
	}
	if b.StartsAt != nil && b.EndsAt != nil {
		validator.After(FieldEndsAt, *b.EndsAt, *b.StartsAt)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// The referenced theme must belong to this tenant.
	exists, err := service.repo.ThemeExists(context, tenantID, b.ThemeID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Unprocessable(fmt.Sprintf("Theme %d does not exist", b.ThemeID))
	}
	return nil
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Banner")
	}
	return err
}
