package city

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

func citySelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.City.ID, schema.City.CountryID, schema.City.Name, schema.City.Latitude,
		schema.City.Longitude, schema.City.IsActive, schema.City.CreatedAt, schema.City.UpdatedAt,
		schema.City.Table,
	)
}

func scanCity(row pgx.Row) (*City, error) {
	c := &City{}
	err := row.Scan(&c.ID, &c.CountryID, &c.Name, &c.Latitude, &c.Longitude, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (repository *PostgresRepository) ListCities(context context.Context, f Filter, limit, offset int) ([]*City, int, error) {
	where := " WHERE TRUE"
	var args []any

	if f.CountryID != 0 {
		args = append(args, f.CountryID)
		where += fmt.Sprintf(" AND %s = $%d", schema.City.CountryID, len(args))
	}
	if f.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.City.IsActive)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", schema.City.Name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.City.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_cities")
	}

	query := citySelect() + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.City.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_cities")
	}
	defer rows.Close()

	var cities []*City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_city")
		}
		cities = append(cities, c)
	}

	return cities, total, nil
}

func (repository *PostgresRepository) GetCity(context context.Context, id int64) (*City, error) {
	query := citySelect() + fmt.Sprintf(" WHERE %s = $1", schema.City.ID)

	c, err := scanCity(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_city")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCity(context context.Context, c *City) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.City.Table, schema.City.CountryID, schema.City.Name, schema.City.Latitude,
		schema.City.Longitude, schema.City.IsActive, schema.City.CreatedAt, schema.City.UpdatedAt,
		schema.City.ID, schema.City.CreatedAt, schema.City.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.CountryID, c.Name, c.Latitude, c.Longitude, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_city")
}

func (repository *PostgresRepository) UpdateCity(context context.Context, c *City) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.City.Table,
		schema.City.CountryID, schema.City.Name, schema.City.Latitude,
		schema.City.Longitude, schema.City.IsActive, schema.City.UpdatedAt,
		schema.City.ID,
		schema.City.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.ID, c.CountryID, c.Name, c.Latitude, c.Longitude, c.IsActive,
	).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_city")
}

func (repository *PostgresRepository) DeleteCity(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.City.Table, schema.City.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_city")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountryExists(context context.Context, countryID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Country.Table, schema.Country.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, countryID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "country_exists")
	}
	return exists, nil
}
