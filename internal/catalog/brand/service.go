package brand

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

const entityType = "brand"

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

func (service *Service) ListBrands(context context.Context, tenantID int64, lang string, f Filter, limit, offset int) ([]*Brand, int, error) {
	return service.repo.ListBrands(context, tenantID, lang, f, limit, offset)
}

func (service *Service) GetBrand(context context.Context, tenantID, id int64, lang string) (*Brand, error) {
	b, err := service.repo.GetBrand(context, tenantID, id, lang)
	if err != nil {
		return nil, notFoundAs(err, "Brand")
	}
	return b, nil
}

// GetBrandBySlug resolves a brand by its alternate key. When allTranslations
// is set the full language map is attached to the result.
func (service *Service) GetBrandBySlug(context context.Context, tenantID int64, slug, lang string, allTranslations bool) (*Brand, error) {
	b, err := service.repo.GetBrandBySlug(context, tenantID, slug, lang)
	if err != nil {
		return nil, notFoundAs(err, "Brand")
	}

	if allTranslations {
		translations, err := service.repo.GetTranslations(context, b.ID)
		if err != nil {
			return nil, err
		}
		b.Translations = translations
	}

	return b, nil
}

// GetTranslations returns the full per-language map for one brand.
func (service *Service) GetTranslations(context context.Context, tenantID, id int64) (map[string]Translation, error) {
	if _, err := service.repo.GetBrand(context, tenantID, id, ""); err != nil {
		return nil, notFoundAs(err, "Brand")
	}
	return service.repo.GetTranslations(context, id)
}

func (service *Service) CreateBrand(context context.Context, tenantID int64, b *Brand) (*Brand, error) {
	if err := validateBrand(b); err != nil {
		return nil, err
	}

	// Alternate-key uniqueness within the tenant. The unique index backs
	// this up; the pre-check gives the client a friendly Conflict.
	if _, err := service.repo.GetBrandBySlug(context, tenantID, b.Slug, ""); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Brand %q already exists", b.Slug))
	}

	b.TenantID = tenantID
	if err := service.repo.CreateBrand(context, b); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the canonical stored shape, including
	// store-computed defaults. A miss here is a persistence bug, not a 404.
	stored, err := service.repo.GetBrand(context, tenantID, b.ID, firstLanguage(b))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("brand %d unreadable after create: %w", b.ID, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   stored.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("brand_created", slog.Int64("brand_id", stored.ID), slog.String("slug", stored.Slug))
	return stored, nil
}

func (service *Service) UpdateBrand(context context.Context, tenantID, id int64, b *Brand) (*Brand, error) {
	if err := validateBrand(b); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetBrand(context, tenantID, id, "")
	if err != nil {
		return nil, notFoundAs(err, "Brand")
	}

	// The slug may move, but not onto another brand of the same tenant.
	if b.Slug != previous.Slug {
		if _, err := service.repo.GetBrandBySlug(context, tenantID, b.Slug, ""); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Brand %q already exists", b.Slug))
		}
	}

	b.ID = id
	b.TenantID = tenantID
	if err := service.repo.UpdateBrand(context, b); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetBrand(context, tenantID, id, firstLanguage(b))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("brand %d unreadable after update: %w", id, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(previous, stored),
	})
	service.logger.Info("brand_updated", slog.Int64("brand_id", id))
	return stored, nil
}

func (service *Service) DeleteBrand(context context.Context, tenantID, id int64) error {
	previous, err := service.repo.GetBrand(context, tenantID, id, "")
	if err != nil {
		return notFoundAs(err, "Brand")
	}

	if err := service.repo.DeleteBrand(context, tenantID, id); err != nil {
		return notFoundAs(err, "Brand")
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Changes:    audit.Diff(previous, nil),
	})
	service.logger.Warn("brand_deleted", slog.Int64("brand_id", id))
	return nil
}

func (service *Service) DeleteBrandBySlug(context context.Context, tenantID int64, slug string) error {
	previous, err := service.repo.GetBrandBySlug(context, tenantID, slug, "")
	if err != nil {
		return notFoundAs(err, "Brand")
	}
	return service.DeleteBrand(context, tenantID, previous.ID)
}

// validateBrand applies the field rules shared by create and update.
func validateBrand(b *Brand) error {
	validator := &validate.Validator{}

	validator.Required(FieldSlug, b.Slug).Slug(FieldSlug, b.Slug).MaxLen(FieldSlug, b.Slug, 120)
	validator.Range(FieldSortOrder, b.SortOrder, 0, 100000)

	if b.LogoURL != nil {
		validator.URL(FieldLogoURL, *b.LogoURL)
	}
	if b.BannerURL != nil {
		validator.URL(FieldBannerURL, *b.BannerURL)
	}
	if b.WebsiteURL != nil {
		validator.URL(FieldWebsiteURL, *b.WebsiteURL)
	}

	// Translation sub-payloads follow the same rules per language, with
	// errors nested under translations.<lang>.<field>.
	for lang, t := range b.Translations {
		prefix := FieldTranslations + "." + lang + "."
		validator.Required(prefix+"name", t.Name).MaxLen(prefix+"name", t.Name, 200)
		validator.MaxLen(prefix+"description", t.Description, 2000)
		validator.MaxLen(prefix+"meta_title", t.MetaTitle, 200)
		validator.MaxLen(prefix+"meta_description", t.MetaDescription, 300)
	}

	return validator.Err()
}

// firstLanguage picks a deterministic language for the read-after-write:
// "en" when present, otherwise the lexicographically smallest language code.
func firstLanguage(b *Brand) string {
	if _, ok := b.Translations["en"]; ok || len(b.Translations) == 0 {
		return "en"
	}
	first := ""
	for lang := range b.Translations {
		if first == "" || lang < first {
			first = lang
		}
	}
	return first
}

// notFoundAs relabels the repository's generic not-found with the resource name.
func notFoundAs(err error, resource string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}
