package currency

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendora/vendora/internal/platform/database/schema"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func currencySelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Currency.ID, schema.Currency.Code, schema.Currency.Name, schema.Currency.Symbol,
		schema.Currency.ExchangeRate, schema.Currency.IsDefault, schema.Currency.IsActive,
		schema.Currency.CreatedAt, schema.Currency.UpdatedAt,
		schema.Currency.Table,
	)
}

func scanCurrency(row pgx.Row) (*Currency, error) {
	c := &Currency{}
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Symbol, &c.ExchangeRate,
		&c.IsDefault, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (repository *PostgresRepository) ListCurrencies(context context.Context, f Filter, limit, offset int) ([]*Currency, int, error) {
	where := " WHERE TRUE"
	var args []any

	if f.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.Currency.IsActive)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Currency.Code, len(args), schema.Currency.Name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Currency.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_currencies")
	}

	query := currencySelect() + where +
		fmt.Sprintf(" ORDER BY %s DESC, %s ASC LIMIT $%d OFFSET $%d",
			schema.Currency.IsDefault, schema.Currency.Code, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_currencies")
	}
	defer rows.Close()

	var currencies []*Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_currency")
		}
		currencies = append(currencies, c)
	}

	return currencies, total, nil
}

func (repository *PostgresRepository) GetCurrency(context context.Context, id int64) (*Currency, error) {
	query := currencySelect() + fmt.Sprintf(" WHERE %s = $1", schema.Currency.ID)

	c, err := scanCurrency(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_currency")
	}
	return c, nil
}

func (repository *PostgresRepository) GetCurrencyByCode(context context.Context, code string) (*Currency, error) {
	query := currencySelect() + fmt.Sprintf(" WHERE %s = $1", schema.Currency.Code)

	c, err := scanCurrency(repository.db.QueryRow(context, query, code))
	if err != nil {
		return nil, dberr.Wrap(err, "get_currency_by_code")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCurrency(context context.Context, c *Currency) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Currency.Table, schema.Currency.Code, schema.Currency.Name, schema.Currency.Symbol,
		schema.Currency.ExchangeRate, schema.Currency.IsDefault, schema.Currency.IsActive,
		schema.Currency.CreatedAt, schema.Currency.UpdatedAt,
		schema.Currency.ID, schema.Currency.CreatedAt, schema.Currency.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.Code, c.Name, c.Symbol, c.ExchangeRate, c.IsDefault, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_currency")
}

func (repository *PostgresRepository) UpdateCurrency(context context.Context, c *Currency) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Currency.Table,
		schema.Currency.Code, schema.Currency.Name, schema.Currency.Symbol,
		schema.Currency.ExchangeRate, schema.Currency.IsActive, schema.Currency.UpdatedAt,
		schema.Currency.ID,
		schema.Currency.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.ID, c.Code, c.Name, c.Symbol, c.ExchangeRate, c.IsActive,
	).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_currency")
}

func (repository *PostgresRepository) SetDefaultCurrency(context context.Context, id int64) error {
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		clear := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = TRUE`,
			schema.Currency.Table, schema.Currency.IsDefault, schema.Currency.IsDefault)
		if _, err := tx.Exec(context, clear); err != nil {
			return err
		}

		set := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = 1, %s = NOW() WHERE %s = $1`,
			schema.Currency.Table, schema.Currency.IsDefault, schema.Currency.ExchangeRate,
			schema.Currency.UpdatedAt, schema.Currency.ID)
		cmd, err := tx.Exec(context, set, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	return dberr.Wrap(err, "set_default_currency")
}

func (repository *PostgresRepository) DeleteCurrency(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Currency.Table, schema.Currency.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_currency")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
