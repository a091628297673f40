package banner

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

func bannerSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Banner.ID, schema.Banner.TenantID, schema.Banner.ThemeID, schema.Banner.Title,
		schema.Banner.ImageURL, schema.Banner.TargetURL, schema.Banner.Placement,
		schema.Banner.IsActive, schema.Banner.SortOrder, schema.Banner.StartsAt, schema.Banner.EndsAt,
		schema.Banner.CreatedAt, schema.Banner.UpdatedAt,
		schema.Banner.Table,
	)
}

func scanBanner(row pgx.Row) (*Banner, error) {
	b := &Banner{}
	err := row.Scan(
		&b.ID, &b.TenantID, &b.ThemeID, &b.Title, &b.ImageURL, &b.TargetURL,
		&b.Placement, &b.IsActive, &b.SortOrder, &b.StartsAt, &b.EndsAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (repository *PostgresRepository) ListBanners(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Banner, int, error) {
	where := fmt.Sprintf(" WHERE %s = $1", schema.Banner.TenantID)
	args := []any{tenantID}

	if f.ThemeID != 0 {
		args = append(args, f.ThemeID)
		where += fmt.Sprintf(" AND %s = $%d", schema.Banner.ThemeID, len(args))
	}
	if len(f.Placements) > 0 {
		args = append(args, f.Placements)
		where += fmt.Sprintf(" AND %s = ANY($%d)", schema.Banner.Placement, len(args))
	}
	if f.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.Banner.IsActive)
	}
	if !f.LiveAt.IsZero() {
		args = append(args, f.LiveAt)
		where += fmt.Sprintf(" AND (%s IS NULL OR %s <= $%d) AND (%s IS NULL OR %s > $%d)",
			schema.Banner.StartsAt, schema.Banner.StartsAt, len(args),
			schema.Banner.EndsAt, schema.Banner.EndsAt, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Banner.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_banners")
	}

	query := bannerSelect() + where +
		fmt.Sprintf(" ORDER BY %s ASC, %s DESC LIMIT $%d OFFSET $%d",
			schema.Banner.SortOrder, schema.Banner.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_banners")
	}
	defer rows.Close()

	var banners []*Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_banner")
		}
		banners = append(banners, b)
	}

	return banners, total, nil
}

func (repository *PostgresRepository) GetBanner(context context.Context, tenantID, id int64) (*Banner, error) {
	query := bannerSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.Banner.TenantID, schema.Banner.ID)

	b, err := scanBanner(repository.db.QueryRow(context, query, tenantID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_banner")
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBanner(context context.Context, b *Banner) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Banner.Table, schema.Banner.TenantID, schema.Banner.ThemeID, schema.Banner.Title,
		schema.Banner.ImageURL, schema.Banner.TargetURL, schema.Banner.Placement,
		schema.Banner.IsActive, schema.Banner.SortOrder, schema.Banner.StartsAt, schema.Banner.EndsAt,
		schema.Banner.CreatedAt, schema.Banner.UpdatedAt,
		schema.Banner.ID, schema.Banner.CreatedAt, schema.Banner.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.TenantID, b.ThemeID, b.Title, b.ImageURL, b.TargetURL, b.Placement,
		b.IsActive, b.SortOrder, b.StartsAt, b.EndsAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return dberr.Wrap(err, "create_banner")
}

func (repository *PostgresRepository) UpdateBanner(context context.Context, b *Banner) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Banner.Table,
		schema.Banner.ThemeID, schema.Banner.Title, schema.Banner.ImageURL, schema.Banner.TargetURL,
		schema.Banner.Placement, schema.Banner.IsActive, schema.Banner.SortOrder,
		schema.Banner.StartsAt, schema.Banner.EndsAt, schema.Banner.UpdatedAt,
		schema.Banner.TenantID, schema.Banner.ID,
		schema.Banner.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.TenantID, b.ID, b.ThemeID, b.Title, b.ImageURL, b.TargetURL,
		b.Placement, b.IsActive, b.SortOrder, b.StartsAt, b.EndsAt,
	).Scan(&b.UpdatedAt)
	return dberr.Wrap(err, "update_banner")
}

func (repository *PostgresRepository) DeleteBanner(context context.Context, tenantID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Banner.Table, schema.Banner.TenantID, schema.Banner.ID)

	cmd, err := repository.db.Exec(context, query, tenantID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_banner")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ThemeExists(context context.Context, tenantID, themeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Theme.Table, schema.Theme.TenantID, schema.Theme.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, tenantID, themeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "theme_exists")
	}
	return exists, nil
}
