package timezone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/validate"
)

// UTC offsets observed in the IANA database, in minutes.
const (
	minOffset = -12 * 60
	maxOffset = 14 * 60
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListTimezones(context context.Context, f Filter, limit, offset int) ([]*Timezone, int, error) {
	return service.repo.ListTimezones(context, f, limit, offset)
}

func (service *Service) GetTimezone(context context.Context, id int64) (*Timezone, error) {
	tz, err := service.repo.GetTimezone(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return tz, nil
}

func (service *Service) GetTimezoneByName(context context.Context, name string) (*Timezone, error) {
	tz, err := service.repo.GetTimezoneByName(context, name)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return tz, nil
}

func (service *Service) CreateTimezone(context context.Context, tz *Timezone) (*Timezone, error) {
	if err := validateTimezone(tz); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetTimezoneByName(context, tz.Name); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Timezone %q already exists", tz.Name))
	}

	if err := service.repo.CreateTimezone(context, tz); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetTimezone(context, tz.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("timezone %d unreadable after create: %w", tz.ID, err))
	}

	service.logger.Info("timezone_created", slog.String("timezone", stored.Name))
	return stored, nil
}

func (service *Service) UpdateTimezone(context context.Context, id int64, tz *Timezone) (*Timezone, error) {
	if err := validateTimezone(tz); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetTimezone(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if tz.Name != previous.Name {
		if _, err := service.repo.GetTimezoneByName(context, tz.Name); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Timezone %q already exists", tz.Name))
		}
	}

	tz.ID = id
	if err := service.repo.UpdateTimezone(context, tz); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetTimezone(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("timezone %d unreadable after update: %w", id, err))
	}

	service.logger.Info("timezone_updated", slog.String("timezone", stored.Name))
	return stored, nil
}

func (service *Service) DeleteTimezone(context context.Context, id int64) error {
	if err := service.repo.DeleteTimezone(context, id); err != nil {
		return notFoundAs(err)
	}
	service.logger.Warn("timezone_deleted", slog.Int64("timezone_id", id))
	return nil
}

func (service *Service) DeleteTimezoneByName(context context.Context, name string) error {
	if err := service.repo.DeleteTimezoneByName(context, name); err != nil {
		return notFoundAs(err)
	}
	service.logger.Warn("timezone_deleted", slog.String("timezone", name))
	return nil
}

func validateTimezone(tz *Timezone) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, tz.Name).MaxLen(FieldName, tz.Name, 64)
	validator.Range(FieldUTCOffset, tz.UTCOffset, minOffset, maxOffset)

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Timezone")
	}
	return err
}
