package country

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendora/vendora/internal/platform/database/schema"
	"github.com/vendora/vendora/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func countrySelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Country.ID, schema.Country.Code, schema.Country.Name, schema.Country.DialCode,
		schema.Country.IsActive, schema.Country.CreatedAt, schema.Country.UpdatedAt,
		schema.Country.Table,
	)
}

func scanCountry(row pgx.Row) (*Country, error) {
	c := &Country{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.DialCode, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (repository *PostgresRepository) ListCountries(context context.Context, f Filter, limit, offset int) ([]*Country, int, error) {
	where := " WHERE TRUE"
	var args []any

	if f.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.Country.IsActive)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Country.Code, len(args), schema.Country.Name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Country.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_countries")
	}

	query := countrySelect() + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Country.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_countries")
	}
	defer rows.Close()

	var countries []*Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_country")
		}
		countries = append(countries, c)
	}

	return countries, total, nil
}

func (repository *PostgresRepository) GetCountry(context context.Context, id int64) (*Country, error) {
	query := countrySelect() + fmt.Sprintf(" WHERE %s = $1", schema.Country.ID)

	c, err := scanCountry(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_country")
	}
	return c, nil
}

func (repository *PostgresRepository) GetCountryByCode(context context.Context, code string) (*Country, error) {
	query := countrySelect() + fmt.Sprintf(" WHERE %s = $1", schema.Country.Code)

	c, err := scanCountry(repository.db.QueryRow(context, query, code))
	if err != nil {
		return nil, dberr.Wrap(err, "get_country_by_code")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCountry(context context.Context, c *Country) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Country.Table, schema.Country.Code, schema.Country.Name, schema.Country.DialCode,
		schema.Country.IsActive, schema.Country.CreatedAt, schema.Country.UpdatedAt,
		schema.Country.ID, schema.Country.CreatedAt, schema.Country.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.Code, c.Name, c.DialCode, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_country")
}

func (repository *PostgresRepository) UpdateCountry(context context.Context, c *Country) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Country.Table,
		schema.Country.Code, schema.Country.Name, schema.Country.DialCode,
		schema.Country.IsActive, schema.Country.UpdatedAt,
		schema.Country.ID,
		schema.Country.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.ID, c.Code, c.Name, c.DialCode, c.IsActive,
	).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_country")
}

func (repository *PostgresRepository) DeleteCountry(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Country.Table, schema.Country.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_country")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) HasCities(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.City.Table, schema.City.CountryID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "country_has_cities")
	}
	return exists, nil
}
