package theme

import (
	"context"
	"fmt"
	"strings"

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

func themeSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Theme.ID, schema.Theme.TenantID, schema.Theme.Slug, schema.Theme.Name,
		schema.Theme.Description, schema.Theme.Version, schema.Theme.Status, schema.Theme.IsDefault,
		schema.Theme.ColorsJSON, schema.Theme.TypographyJSON, schema.Theme.LayoutJSON,
		schema.Theme.CreatedAt, schema.Theme.UpdatedAt,
		schema.Theme.Table,
	)
}

func scanTheme(row pgx.Row) (*Theme, error) {
	t := &Theme{}
	err := row.Scan(
		&t.ID, &t.TenantID, &t.Slug, &t.Name, &t.Description, &t.Version, &t.Status,
		&t.IsDefault, &t.Colors, &t.Typography, &t.Layout, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (repository *PostgresRepository) ListThemes(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Theme, int, error) {
	where := fmt.Sprintf(" WHERE %s = $1", schema.Theme.TenantID)
	args := []any{tenantID}

	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND %s = $%d", schema.Theme.Status, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Theme.Slug, len(args), schema.Theme.Name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Theme.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_themes")
	}

	// Ordering is restricted to a fixed column set; the unsorted listing
	// keeps the tenant default first.
	order := fmt.Sprintf("%s DESC, %s ASC", schema.Theme.IsDefault, schema.Theme.Slug)
	sort := ""
	switch f.Sort {
	case "name":
		sort = schema.Theme.Name
	case "created":
		sort = schema.Theme.CreatedAt
	case "updated":
		sort = schema.Theme.UpdatedAt
	}
	if sort != "" {
		sortDir := "ASC"
		if strings.ToLower(f.SortDir) == "desc" {
			sortDir = "DESC"
		}
		order = fmt.Sprintf("%s %s, %s ASC", sort, sortDir, schema.Theme.Slug)
	}

	query := themeSelect() + where +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d",
			order, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_themes")
	}
	defer rows.Close()

	var themes []*Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_theme")
		}
		themes = append(themes, t)
	}

	return themes, total, nil
}

func (repository *PostgresRepository) GetTheme(context context.Context, tenantID, id int64) (*Theme, error) {
	query := themeSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.Theme.TenantID, schema.Theme.ID)

	t, err := scanTheme(repository.db.QueryRow(context, query, tenantID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_theme")
	}
	return t, nil
}

func (repository *PostgresRepository) GetThemeBySlug(context context.Context, tenantID int64, slug string) (*Theme, error) {
	query := themeSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.Theme.TenantID, schema.Theme.Slug)

	t, err := scanTheme(repository.db.QueryRow(context, query, tenantID, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_theme_by_slug")
	}
	return t, nil
}

func (repository *PostgresRepository) GetDefaultTheme(context context.Context, tenantID int64) (*Theme, error) {
	query := themeSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = TRUE", schema.Theme.TenantID, schema.Theme.IsDefault)

	t, err := scanTheme(repository.db.QueryRow(context, query, tenantID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_default_theme")
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTheme(context context.Context, t *Theme) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Theme.Table, schema.Theme.TenantID, schema.Theme.Slug, schema.Theme.Name,
		schema.Theme.Description, schema.Theme.Version, schema.Theme.Status, schema.Theme.IsDefault,
		schema.Theme.ColorsJSON, schema.Theme.TypographyJSON, schema.Theme.LayoutJSON,
		schema.Theme.CreatedAt, schema.Theme.UpdatedAt,
		schema.Theme.ID, schema.Theme.CreatedAt, schema.Theme.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		t.TenantID, t.Slug, t.Name, t.Description, t.Version, t.Status, t.IsDefault,
		t.Colors, t.Typography, t.Layout,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_theme")
}

func (repository *PostgresRepository) UpdateTheme(context context.Context, t *Theme) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Theme.Table,
		schema.Theme.Slug, schema.Theme.Name, schema.Theme.Description, schema.Theme.Version,
		schema.Theme.Status, schema.Theme.ColorsJSON, schema.Theme.TypographyJSON, schema.Theme.LayoutJSON,
		schema.Theme.UpdatedAt,
		schema.Theme.TenantID, schema.Theme.ID,
		schema.Theme.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		t.TenantID, t.ID, t.Slug, t.Name, t.Description, t.Version, t.Status,
		t.Colors, t.Typography, t.Layout,
	).Scan(&t.UpdatedAt)
	return dberr.Wrap(err, "update_theme")
}

func (repository *PostgresRepository) SetDefaultTheme(context context.Context, tenantID, id int64) error {
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		clear := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = TRUE`,
			schema.Theme.Table, schema.Theme.IsDefault, schema.Theme.TenantID, schema.Theme.IsDefault)
		if _, err := tx.Exec(context, clear, tenantID); err != nil {
			return err
		}

		set := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = $2`,
			schema.Theme.Table, schema.Theme.IsDefault, schema.Theme.UpdatedAt,
			schema.Theme.TenantID, schema.Theme.ID)
		cmd, err := tx.Exec(context, set, tenantID, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	return dberr.Wrap(err, "set_default_theme")
}

func (repository *PostgresRepository) DeleteTheme(context context.Context, tenantID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Theme.Table, schema.Theme.TenantID, schema.Theme.ID)

	cmd, err := repository.db.Exec(context, query, tenantID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_theme")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
