package brand

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

// brandSelect joins the requested language's translation onto the brand row.
// COALESCE keeps rows without that translation readable.
func brandSelect() string {
	return fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		       COALESCE(t.%s, ''), COALESCE(t.%s, ''), COALESCE(t.%s, ''), COALESCE(t.%s, '')
		FROM %s b
		LEFT JOIN %s t ON t.%s = b.%s AND t.%s = $2
	`,
		schema.Brand.ID, schema.Brand.TenantID, schema.Brand.Slug, schema.Brand.LogoURL,
		schema.Brand.BannerURL, schema.Brand.WebsiteURL, schema.Brand.IsActive, schema.Brand.IsFeatured,
		schema.Brand.SortOrder, schema.Brand.CreatedAt, schema.Brand.UpdatedAt,
		schema.BrandTranslation.Name, schema.BrandTranslation.Description,
		schema.BrandTranslation.MetaTitle, schema.BrandTranslation.MetaDescription,
		schema.Brand.Table,
		schema.BrandTranslation.Table, schema.BrandTranslation.BrandID, schema.Brand.ID,
		schema.BrandTranslation.LanguageCode,
	)
}

func scanBrand(row pgx.Row) (*Brand, error) {
	b := &Brand{}
	err := row.Scan(
		&b.ID, &b.TenantID, &b.Slug, &b.LogoURL, &b.BannerURL, &b.WebsiteURL,
		&b.IsActive, &b.IsFeatured, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt,
		&b.Name, &b.Description, &b.MetaTitle, &b.MetaDescription,
	)
	return b, err
}

func (repository *PostgresRepository) ListBrands(context context.Context, tenantID int64, lang string, f Filter, limit, offset int) ([]*Brand, int, error) {
	where := fmt.Sprintf(" WHERE b.%s = $1", schema.Brand.TenantID)
	args := []any{tenantID, lang}

	if f.ActiveOnly {
		where += fmt.Sprintf(" AND b.%s = TRUE", schema.Brand.IsActive)
	}
	if f.FeaturedOnly {
		where += fmt.Sprintf(" AND b.%s = TRUE", schema.Brand.IsFeatured)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (b.%s ILIKE $%d OR t.%s ILIKE $%d)",
			schema.Brand.Slug, len(args), schema.BrandTranslation.Name, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s b LEFT JOIN %s t ON t.%s = b.%s AND t.%s = $2`,
		schema.Brand.Table, schema.BrandTranslation.Table,
		schema.BrandTranslation.BrandID, schema.Brand.ID, schema.BrandTranslation.LanguageCode,
	) + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_brands")
	}

	// Ordering is restricted to a fixed column set.
	sort := "b." + schema.Brand.SortOrder
	switch f.Sort {
	case "name":
		sort = "t." + schema.BrandTranslation.Name
	case "created":
		sort = "b." + schema.Brand.CreatedAt
	}
	sortDir := "ASC"
	if strings.ToLower(f.SortDir) == "desc" {
		sortDir = "DESC"
	}

	query := brandSelect() + where +
		fmt.Sprintf(" ORDER BY %s %s, b.%s ASC LIMIT $%d OFFSET $%d",
			sort, sortDir, schema.Brand.Slug, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_brands")
	}
	defer rows.Close()

	var brands []*Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_brand")
		}
		brands = append(brands, b)
	}

	return brands, total, nil
}

func (repository *PostgresRepository) GetBrand(context context.Context, tenantID, id int64, lang string) (*Brand, error) {
	query := brandSelect() + fmt.Sprintf(" WHERE b.%s = $1 AND b.%s = $3", schema.Brand.TenantID, schema.Brand.ID)

	b, err := scanBrand(repository.db.QueryRow(context, query, tenantID, lang, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_brand")
	}
	return b, nil
}

func (repository *PostgresRepository) GetBrandBySlug(context context.Context, tenantID int64, slug, lang string) (*Brand, error) {
	query := brandSelect() + fmt.Sprintf(" WHERE b.%s = $1 AND b.%s = $3", schema.Brand.TenantID, schema.Brand.Slug)

	b, err := scanBrand(repository.db.QueryRow(context, query, tenantID, lang, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_brand_by_slug")
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBrand(context context.Context, b *Brand) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Brand.Table, schema.Brand.TenantID, schema.Brand.Slug, schema.Brand.LogoURL,
		schema.Brand.BannerURL, schema.Brand.WebsiteURL, schema.Brand.IsActive,
		schema.Brand.IsFeatured, schema.Brand.SortOrder, schema.Brand.CreatedAt, schema.Brand.UpdatedAt,
		schema.Brand.ID, schema.Brand.CreatedAt, schema.Brand.UpdatedAt,
	)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, query,
			b.TenantID, b.Slug, b.LogoURL, b.BannerURL, b.WebsiteURL,
			b.IsActive, b.IsFeatured, b.SortOrder,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}
		return upsertTranslations(context, tx, b.ID, b.Translations)
	})
	return dberr.Wrap(err, "create_brand")
}

func (repository *PostgresRepository) UpdateBrand(context context.Context, b *Brand) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Brand.Table,
		schema.Brand.Slug, schema.Brand.LogoURL, schema.Brand.BannerURL, schema.Brand.WebsiteURL,
		schema.Brand.IsActive, schema.Brand.IsFeatured, schema.Brand.SortOrder, schema.Brand.UpdatedAt,
		schema.Brand.TenantID, schema.Brand.ID,
		schema.Brand.UpdatedAt,
	)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, query,
			b.TenantID, b.ID, b.Slug, b.LogoURL, b.BannerURL, b.WebsiteURL,
			b.IsActive, b.IsFeatured, b.SortOrder,
		).Scan(&b.UpdatedAt); err != nil {
			return err
		}
		return upsertTranslations(context, tx, b.ID, b.Translations)
	})
	return dberr.Wrap(err, "update_brand")
}

func (repository *PostgresRepository) DeleteBrand(context context.Context, tenantID, id int64) error {
	return repository.deleteWhere(context,
		fmt.Sprintf("%s = $1 AND %s = $2", schema.Brand.TenantID, schema.Brand.ID),
		tenantID, id)
}

func (repository *PostgresRepository) DeleteBrandBySlug(context context.Context, tenantID int64, slug string) error {
	return repository.deleteWhere(context,
		fmt.Sprintf("%s = $1 AND %s = $2", schema.Brand.TenantID, schema.Brand.Slug),
		tenantID, slug)
}

// deleteWhere removes matching brands and their translations in one transaction.
func (repository *PostgresRepository) deleteWhere(context context.Context, predicate string, args ...any) error {
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		cleanup := fmt.Sprintf(`DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s)`,
			schema.BrandTranslation.Table, schema.BrandTranslation.BrandID,
			schema.Brand.ID, schema.Brand.Table, predicate,
		)
		if _, err := tx.Exec(context, cleanup, args...); err != nil {
			return err
		}

		cmd, err := tx.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s`, schema.Brand.Table, predicate), args...)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	return dberr.Wrap(err, "delete_brand")
}

func (repository *PostgresRepository) GetTranslations(context context.Context, brandID int64) (map[string]Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.BrandTranslation.LanguageCode, schema.BrandTranslation.Name,
		schema.BrandTranslation.Description, schema.BrandTranslation.MetaTitle,
		schema.BrandTranslation.MetaDescription,
		schema.BrandTranslation.Table, schema.BrandTranslation.BrandID,
	)

	rows, err := repository.db.Query(context, query, brandID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_brand_translations")
	}
	defer rows.Close()

	translations := make(map[string]Translation)
	for rows.Next() {
		var lang string
		var t Translation
		if err := rows.Scan(&lang, &t.Name, &t.Description, &t.MetaTitle, &t.MetaDescription); err != nil {
			return nil, dberr.Wrap(err, "scan_brand_translation")
		}
		translations[lang] = t
	}

	return translations, nil
}

// upsertTranslations writes one row per language inside the caller's transaction.
func upsertTranslations(context context.Context, tx pgx.Tx, brandID int64, translations map[string]Translation) error {
	if len(translations) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		schema.BrandTranslation.Table, schema.BrandTranslation.BrandID, schema.BrandTranslation.LanguageCode,
		schema.BrandTranslation.Name, schema.BrandTranslation.Description,
		schema.BrandTranslation.MetaTitle, schema.BrandTranslation.MetaDescription,
		schema.BrandTranslation.BrandID, schema.BrandTranslation.LanguageCode,
		schema.BrandTranslation.Name, schema.BrandTranslation.Name,
		schema.BrandTranslation.Description, schema.BrandTranslation.Description,
		schema.BrandTranslation.MetaTitle, schema.BrandTranslation.MetaTitle,
		schema.BrandTranslation.MetaDescription, schema.BrandTranslation.MetaDescription,
	)

	for lang, t := range translations {
		if _, err := tx.Exec(context, query, brandID, lang, t.Name, t.Description, t.MetaTitle, t.MetaDescription); err != nil {
			return err
		}
	}
	return nil
}
