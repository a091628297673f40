package timezone

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

func timezoneSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Timezone.ID, schema.Timezone.Name, schema.Timezone.UTCOffset,
		schema.Timezone.CreatedAt, schema.Timezone.UpdatedAt,
		schema.Timezone.Table,
	)
}

func scanTimezone(row pgx.Row) (*Timezone, error) {
	tz := &Timezone{}
	err := row.Scan(&tz.ID, &tz.Name, &tz.UTCOffset, &tz.CreatedAt, &tz.UpdatedAt)
	return tz, err
}

func (repository *PostgresRepository) ListTimezones(context context.Context, f Filter, limit, offset int) ([]*Timezone, int, error) {
	where := " WHERE TRUE"
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", schema.Timezone.Name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Timezone.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_timezones")
	}

	query := timezoneSelect() + where +
		fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d",
			schema.Timezone.UTCOffset, schema.Timezone.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_timezones")
	}
	defer rows.Close()

	var timezones []*Timezone
	for rows.Next() {
		tz, err := scanTimezone(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_timezone")
		}
		timezones = append(timezones, tz)
	}

	return timezones, total, nil
}

func (repository *PostgresRepository) GetTimezone(context context.Context, id int64) (*Timezone, error) {
	query := timezoneSelect() + fmt.Sprintf(" WHERE %s = $1", schema.Timezone.ID)

	tz, err := scanTimezone(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_timezone")
	}
	return tz, nil
}

func (repository *PostgresRepository) GetTimezoneByName(context context.Context, name string) (*Timezone, error) {
	query := timezoneSelect() + fmt.Sprintf(" WHERE %s = $1", schema.Timezone.Name)

	tz, err := scanTimezone(repository.db.QueryRow(context, query, name))
	if err != nil {
		return nil, dberr.Wrap(err, "get_timezone_by_name")
	}
	return tz, nil
}

func (repository *PostgresRepository) CreateTimezone(context context.Context, tz *Timezone) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Timezone.Table, schema.Timezone.Name, schema.Timezone.UTCOffset,
		schema.Timezone.CreatedAt, schema.Timezone.UpdatedAt,
		schema.Timezone.ID, schema.Timezone.CreatedAt, schema.Timezone.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, tz.Name, tz.UTCOffset).
		Scan(&tz.ID, &tz.CreatedAt, &tz.UpdatedAt)
	return dberr.Wrap(err, "create_timezone")
}

func (repository *PostgresRepository) UpdateTimezone(context context.Context, tz *Timezone) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Timezone.Table,
		schema.Timezone.Name, schema.Timezone.UTCOffset, schema.Timezone.UpdatedAt,
		schema.Timezone.ID,
		schema.Timezone.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, tz.ID, tz.Name, tz.UTCOffset).Scan(&tz.UpdatedAt)
	return dberr.Wrap(err, "update_timezone")
}

func (repository *PostgresRepository) DeleteTimezone(context context.Context, id int64) error {
	return repository.deleteWhere(context, schema.Timezone.ID, id)
}

func (repository *PostgresRepository) DeleteTimezoneByName(context context.Context, name string) error {
	return repository.deleteWhere(context, schema.Timezone.Name, name)
}

func (repository *PostgresRepository) deleteWhere(context context.Context, column string, arg any) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Timezone.Table, column)

	cmd, err := repository.db.Exec(context, query, arg)
	if err != nil {
		return dberr.Wrap(err, "delete_timezone")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
