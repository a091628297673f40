package fontsetting

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

const entityType = "font_setting"

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

func (service *Service) ListSettings(context context.Context, tenantID, themeID int64, limit, offset int) ([]*FontSetting, int, error) {
	if err := service.requireTheme(context, tenantID, themeID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListSettings(context, themeID, limit, offset)
}

func (service *Service) GetSetting(context context.Context, tenantID, id int64) (*FontSetting, error) {
	s, err := service.repo.GetSetting(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if err := service.requireTheme(context, tenantID, s.ThemeID); err != nil {
		return nil, apperr.NotFound("Font setting")
	}
	return s, nil
}

func (service *Service) GetSettingByKey(context context.Context, tenantID, themeID int64, key string) (*FontSetting, error) {
	if err := service.requireTheme(context, tenantID, themeID); err != nil {
		return nil, err
	}
	s, err := service.repo.GetSettingByKey(context, themeID, key)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return s, nil
}

func (service *Service) CreateSetting(context context.Context, tenantID int64, s *FontSetting) (*FontSetting, error) {
	if err := validateSetting(s, ""); err != nil {
		return nil, err
	}
	if err := service.requireTheme(context, tenantID, s.ThemeID); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetSettingByKey(context, s.ThemeID, s.SettingKey); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Font setting %q already exists for this theme", s.SettingKey))
	}

	if err := service.repo.CreateSetting(context, s); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetSetting(context, s.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("font setting %d unreadable after create: %w", s.ID, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   stored.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("font_setting_created",
		slog.Int64("theme_id", stored.ThemeID), slog.String("setting_key", stored.SettingKey))
	return stored, nil
}

func (service *Service) UpdateSetting(context context.Context, tenantID, id int64, s *FontSetting) (*FontSetting, error) {
	previous, err := service.GetSetting(context, tenantID, id)
	if err != nil {
		return nil, err
	}

	s.ThemeID = previous.ThemeID
	if err := validateSetting(s, ""); err != nil {
		return nil, err
	}

	if s.SettingKey != previous.SettingKey {
		if _, err := service.repo.GetSettingByKey(context, s.ThemeID, s.SettingKey); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Font setting %q already exists for this theme", s.SettingKey))
		}
	}

	s.ID = id
	if err := service.repo.UpdateSetting(context, s); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetSetting(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("font setting %d unreadable after update: %w", id, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(previous, stored),
	})
	service.logger.Info("font_setting_updated", slog.Int64("font_setting_id", id))
	return stored, nil
}

// UpsertSettings replaces or inserts the whole typography batch atomically.
func (service *Service) UpsertSettings(context context.Context, tenantID, themeID int64, settings []*FontSetting) ([]*FontSetting, int, error) {
	if len(settings) == 0 {
		return nil, 0, apperr.ValidationError("At least one setting is required")
	}
	if err := service.requireTheme(context, tenantID, themeID); err != nil {
		return nil, 0, err
	}

	// One validator across the batch so the response reports every bad
	// element, not just the first one.
	validator := &validate.Validator{}
	seen := make(map[string]bool, len(settings))
	for i, s := range settings {
		prefix := fmt.Sprintf("settings.%d.", i)
		checkSetting(validator, s, prefix)
		validator.Custom(prefix+FieldSettingKey, seen[s.SettingKey], "Duplicate key in batch")
		seen[s.SettingKey] = true
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	if err := service.repo.UpsertSettings(context, themeID, settings); err != nil {
		return nil, 0, err
	}

	stored, total, err := service.repo.ListSettings(context, themeID, len(settings), 0)
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("font settings unreadable after upsert: %w", err))
	}
	// The theme may already hold keys the batch did not touch; re-read the
	// full set when the first page ran short.
	if total > len(stored) {
		stored, total, err = service.repo.ListSettings(context, themeID, total, 0)
		if err != nil {
			return nil, 0, apperr.Internal(fmt.Errorf("font settings unreadable after upsert: %w", err))
		}
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   themeID,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("font_settings_upserted",
		slog.Int64("theme_id", themeID), slog.Int("count", len(settings)))
	return stored, total, nil
}

// DeleteSetting is idempotent: deleting an absent row is a success.
func (service *Service) DeleteSetting(context context.Context, tenantID, id int64) error {
	previous, err := service.GetSetting(context, tenantID, id)
	if err != nil {
		if apperr.As(err) != nil && apperr.As(err).Code == "NOT_FOUND" {
			return nil
		}
		return err
	}

	if err := service.repo.DeleteSetting(context, id); err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return err
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Changes:    audit.Diff(previous, nil),
	})
	service.logger.Warn("font_setting_deleted", slog.Int64("font_setting_id", id))
	return nil
}

// DeleteSettingByKey is idempotent like [Service.DeleteSetting].
func (service *Service) DeleteSettingByKey(context context.Context, tenantID, themeID int64, key string) error {
	if err := service.requireTheme(context, tenantID, themeID); err != nil {
		return err
	}

	if err := service.repo.DeleteSettingByKey(context, themeID, key); err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return err
	}

	service.logger.Warn("font_setting_deleted",
		slog.Int64("theme_id", themeID), slog.String("setting_key", key))
	return nil
}

func (service *Service) requireTheme(context context.Context, tenantID, themeID int64) error {
	if themeID <= 0 {
		return apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldThemeID, Message: "A theme reference is required"})
	}
	owned, err := service.repo.ThemeOwned(context, tenantID, themeID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.NotFound("Theme")
	}
	return nil
}

func validateSetting(s *FontSetting, fieldPrefix string) error {
	validator := &validate.Validator{}
	checkSetting(validator, s, fieldPrefix)
	return validator.Err()
}

// checkSetting appends one setting's rules to a shared validator.
func checkSetting(validator *validate.Validator, s *FontSetting, fieldPrefix string) {
	validator.Required(fieldPrefix+FieldSettingKey, s.SettingKey).
		SettingKey(fieldPrefix+FieldSettingKey, s.SettingKey).
		MaxLen(fieldPrefix+FieldSettingKey, s.SettingKey, 100)
	validator.Required(fieldPrefix+FieldFontFamily, s.FontFamily).
		MaxLen(fieldPrefix+FieldFontFamily, s.FontFamily, 120)
	validator.Range(fieldPrefix+FieldFontSize, s.FontSize, 6, 200)
	validator.Range(fieldPrefix+FieldFontWeight, s.FontWeight, 100, 900)
	validator.Range(fieldPrefix+FieldSortOrder, s.SortOrder, 0, 100000)
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Font setting")
	}
	return err
}
