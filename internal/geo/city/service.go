package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListCities(context context.Context, f Filter, limit, offset int) ([]*City, int, error) {
	return service.repo.ListCities(context, f, limit, offset)
}

func (service *Service) GetCity(context context.Context, id int64) (*City, error) {
	c, err := service.repo.GetCity(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return c, nil
}

func (service *Service) CreateCity(context context.Context, c *City) (*City, error) {
	if err := service.validateCity(context, c); err != nil {
		return nil, err
	}

	if err := service.repo.CreateCity(context, c); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetCity(context, c.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("city %d unreadable after create: %w", c.ID, err))
	}

	service.logger.Info("city_created", slog.Int64("city_id", stored.ID), slog.String("name", stored.Name))
	return stored, nil
}

func (service *Service) UpdateCity(context context.Context, id int64, c *City) (*City, error) {
	if err := service.validateCity(context, c); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetCity(context, id); err != nil {
		return nil, notFoundAs(err)
	}

	c.ID = id
	if err := service.repo.UpdateCity(context, c); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetCity(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("city %d unreadable after update: %w", id, err))
	}

	service.logger.Info("city_updated", slog.Int64("city_id", id))
	return stored, nil
}

func (service *Service) DeleteCity(context context.Context, id int64) error {
	previous, err := service.repo.GetCity(context, id)
	if err != nil {
		return notFoundAs(err)
	}

	if err := service.repo.DeleteCity(context, id); err != nil {
		return notFoundAs(err)
	}

	service.logger.Warn("city_deleted", slog.String("name", previous.Name))
	return nil
}

func (service *Service) validateCity(context context.Context, c *City) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, c.Name).MaxLen(FieldName, c.Name, 120)
	validator.Custom(FieldCountryID, c.CountryID <= 0, "A country reference is required")

	if c.Latitude != nil {
		validator.Custom(FieldLatitude, *c.Latitude < -90 || *c.Latitude > 90, "Must be between -90 and 90")
	}
	if c.Longitude != nil {
		validator.Custom(FieldLongitude, *c.Longitude < -180 || *c.Longitude > 180, "Must be between -180 and 180")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	exists, err := service.repo.CountryExists(context, c.CountryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Unprocessable(fmt.Sprintf("Country %d does not exist", c.CountryID))
	}
	return nil
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("City")
	}
	return err
}
