package flashsale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/validate"
	"github.com/vendora/vendora/pkg/slug"
)

const entityType = "flash_sale"

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	logger   *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (service *Service) ListFlashSales(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*FlashSale, int, error) {
	sales, total, err := service.repo.ListFlashSales(context, tenantID, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	now := service.now().UTC()
	for _, s := range sales {
		s.ComputePhase(now)
	}
	return sales, total, nil
}

func (service *Service) GetFlashSale(context context.Context, tenantID, id int64) (*FlashSale, error) {
	s, err := service.repo.GetFlashSale(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	s.ComputePhase(service.now().UTC())
	return s, nil
}

func (service *Service) GetFlashSaleBySlug(context context.Context, tenantID int64, slug string) (*FlashSale, error) {
	s, err := service.repo.GetFlashSaleBySlug(context, tenantID, slug)
	if err != nil {
		return nil, notFoundAs(err)
	}
	s.ComputePhase(service.now().UTC())
	return s, nil
}

func (service *Service) CreateFlashSale(context context.Context, tenantID int64, s *FlashSale) (*FlashSale, error) {
	if s.Slug == "" {
		s.Slug = slug.From(s.Title)
	}
	if err := validateFlashSale(s); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetFlashSaleBySlug(context, tenantID, s.Slug); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Flash sale %q already exists", s.Slug))
	}

	s.TenantID = tenantID
	if err := service.repo.CreateFlashSale(context, s); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetFlashSale(context, tenantID, s.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("flash sale %d unreadable after create: %w", s.ID, err))
	}
	stored.ComputePhase(service.now().UTC())

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   stored.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("flash_sale_created",
		slog.Int64("flash_sale_id", stored.ID),
		slog.Int("discount_percent", stored.DiscountPercent()),
	)
	return stored, nil
}

func (service *Service) UpdateFlashSale(context context.Context, tenantID, id int64, s *FlashSale) (*FlashSale, error) {
	if err := validateFlashSale(s); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetFlashSale(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if s.Slug != previous.Slug {
		if _, err := service.repo.GetFlashSaleBySlug(context, tenantID, s.Slug); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Flash sale %q already exists", s.Slug))
		}
	}

	s.ID = id
	s.TenantID = tenantID
	if err := service.repo.UpdateFlashSale(context, s); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetFlashSale(context, tenantID, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("flash sale %d unreadable after update: %w", id, err))
	}
	stored.ComputePhase(service.now().UTC())

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(previous, stored),
	})
	service.logger.Info("flash_sale_updated", slog.Int64("flash_sale_id", id))
	return stored, nil
}

func (service *Service) DeleteFlashSale(context context.Context, tenantID, id int64) error {
	previous, err := service.repo.GetFlashSale(context, tenantID, id)
	if err != nil {
		return notFoundAs(err)
	}

	if err := service.repo.DeleteFlashSale(context, tenantID, id); err != nil {
		return notFoundAs(err)
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Changes:    audit.Diff(previous, nil),
	})
	service.logger.Warn("flash_sale_deleted", slog.Int64("flash_sale_id", id))
	return nil
}

func validateFlashSale(s *FlashSale) error {
	validator := &validate.Validator{}

	validator.Required(FieldSlug, s.Slug).Slug(FieldSlug, s.Slug).MaxLen(FieldSlug, s.Slug, 120)
	validator.Required(FieldTitle, s.Title).MaxLen(FieldTitle, s.Title, 200)
	validator.Custom(FieldProductID, s.ProductID <= 0, "A product reference is required")
	validator.Positive(FieldOriginalPrice, s.OriginalPrice)
	validator.Positive(FieldSalePrice, s.SalePrice)
	validator.Custom(FieldSalePrice, s.SalePrice >= s.OriginalPrice && s.OriginalPrice > 0,
		"Sale price must be below the original price")
	validator.Custom(FieldQuantity, s.Quantity < 0, "Quantity cannot be negative")
	validator.After(FieldEndsAt, s.EndsAt, s.StartsAt)

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Flash sale")
	}
	return err
}
