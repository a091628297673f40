package country

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

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

func (service *Service) ListCountries(context context.Context, f Filter, limit, offset int) ([]*Country, int, error) {
	return service.repo.ListCountries(context, f, limit, offset)
}

func (service *Service) GetCountry(context context.Context, id int64) (*Country, error) {
	c, err := service.repo.GetCountry(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return c, nil
}

func (service *Service) GetCountryByCode(context context.Context, code string) (*Country, error) {
	c, err := service.repo.GetCountryByCode(context, strings.ToUpper(code))
	if err != nil {
		return nil, notFoundAs(err)
	}
	return c, nil
}

func (service *Service) CreateCountry(context context.Context, c *Country) (*Country, error) {
	c.Code = strings.ToUpper(c.Code)
	if err := validateCountry(c); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetCountryByCode(context, c.Code); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Country %s already exists", c.Code))
	}

	if err := service.repo.CreateCountry(context, c); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetCountry(context, c.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("country %d unreadable after create: %w", c.ID, err))
	}

	service.logger.Info("country_created", slog.String("code", stored.Code))
	return stored, nil
}

func (service *Service) UpdateCountry(context context.Context, id int64, c *Country) (*Country, error) {
	c.Code = strings.ToUpper(c.Code)
	if err := validateCountry(c); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetCountry(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if c.Code != previous.Code {
		if _, err := service.repo.GetCountryByCode(context, c.Code); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Country %s already exists", c.Code))
		}
	}

	c.ID = id
	if err := service.repo.UpdateCountry(context, c); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetCountry(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("country %d unreadable after update: %w", id, err))
	}

	service.logger.Info("country_updated", slog.String("code", stored.Code))
	return stored, nil
}

func (service *Service) DeleteCountry(context context.Context, id int64) error {
	previous, err := service.repo.GetCountry(context, id)
	if err != nil {
		return notFoundAs(err)
	}

	// Cities reference countries; refuse rather than orphan or cascade.
	hasCities, err := service.repo.HasCities(context, id)
	if err != nil {
		return err
	}
	if hasCities {
		return apperr.Unprocessable("Country still has cities attached")
	}

	if err := service.repo.DeleteCountry(context, id); err != nil {
		return notFoundAs(err)
	}

	service.logger.Warn("country_deleted", slog.String("code", previous.Code))
	return nil
}

func validateCountry(c *Country) error {
	validator := &validate.Validator{}

	validator.Required(FieldCode, c.Code).CountryCode(FieldCode, c.Code)
	validator.Required(FieldName, c.Name).MaxLen(FieldName, c.Name, 100)
	validator.MaxLen(FieldDialCode, c.DialCode, 8)

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Country")
	}
	return err
}
