package currency

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

func (service *Service) ListCurrencies(context context.Context, f Filter, limit, offset int) ([]*Currency, int, error) {
	return service.repo.ListCurrencies(context, f, limit, offset)
}

func (service *Service) GetCurrency(context context.Context, id int64) (*Currency, error) {
	c, err := service.repo.GetCurrency(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return c, nil
}

func (service *Service) GetCurrencyByCode(context context.Context, code string) (*Currency, error) {
	c, err := service.repo.GetCurrencyByCode(context, strings.ToUpper(code))
	if err != nil {
		return nil, notFoundAs(err)
	}
	return c, nil
}

func (service *Service) CreateCurrency(context context.Context, c *Currency) (*Currency, error) {
	c.Code = strings.ToUpper(c.Code)
	if err := validateCurrency(c); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetCurrencyByCode(context, c.Code); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Currency %s already exists", c.Code))
	}

	// The first currency in the system becomes the default with rate 1.
	if _, total, err := service.repo.ListCurrencies(context, Filter{}, 1, 0); err == nil && total == 0 {
		c.IsDefault = true
		c.ExchangeRate = 1
	}

	if err := service.repo.CreateCurrency(context, c); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetCurrency(context, c.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("currency %d unreadable after create: %w", c.ID, err))
	}

	service.logger.Info("currency_created", slog.Int64("currency_id", stored.ID), slog.String("code", stored.Code))
	return stored, nil
}

func (service *Service) UpdateCurrency(context context.Context, id int64, c *Currency) (*Currency, error) {
	c.Code = strings.ToUpper(c.Code)
	if err := validateCurrency(c); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetCurrency(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if c.Code != previous.Code {
		if _, err := service.repo.GetCurrencyByCode(context, c.Code); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Currency %s already exists", c.Code))
		}
	}

	// The default currency is the pricing anchor; its rate stays 1.
	if previous.IsDefault && c.ExchangeRate != 1 {
		return nil, apperr.Unprocessable("The default currency keeps an exchange rate of 1")
	}

	c.ID = id
	if err := service.repo.UpdateCurrency(context, c); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetCurrency(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("currency %d unreadable after update: %w", id, err))
	}

	service.logger.Info("currency_updated", slog.Int64("currency_id", id))
	return stored, nil
}

func (service *Service) SetDefaultCurrency(context context.Context, id int64) (*Currency, error) {
	c, err := service.repo.GetCurrency(context, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if !c.IsActive {
		return nil, apperr.Unprocessable("An inactive currency cannot be the default")
	}

	if err := service.repo.SetDefaultCurrency(context, id); err != nil {
		return nil, notFoundAs(err)
	}

	stored, err := service.repo.GetCurrency(context, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("currency %d unreadable after set-default: %w", id, err))
	}

	service.logger.Info("currency_default_changed", slog.String("code", stored.Code))
	return stored, nil
}

func (service *Service) DeleteCurrency(context context.Context, id int64) error {
	previous, err := service.repo.GetCurrency(context, id)
	if err != nil {
		return notFoundAs(err)
	}
	if previous.IsDefault {
		return apperr.Unprocessable("The default currency cannot be deleted")
	}

	if err := service.repo.DeleteCurrency(context, id); err != nil {
		return notFoundAs(err)
	}

	service.logger.Warn("currency_deleted", slog.String("code", previous.Code))
	return nil
}

func validateCurrency(c *Currency) error {
	validator := &validate.Validator{}

	validator.Required(FieldCode, c.Code).CurrencyCode(FieldCode, c.Code)
	validator.Required(FieldName, c.Name).MaxLen(FieldName, c.Name, 100)
	validator.Required(FieldSymbol, c.Symbol).MaxLen(FieldSymbol, c.Symbol, 8)
	validator.Positive(FieldExchangeRate, c.ExchangeRate)

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Currency")
	}
	return err
}
