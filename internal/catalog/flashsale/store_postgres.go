package flashsale

import (
	"context"
	"fmt"
	"strings"

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

func flashSaleSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.FlashSale.ID, schema.FlashSale.TenantID, schema.FlashSale.Slug, schema.FlashSale.Title,
		schema.FlashSale.ProductID, schema.FlashSale.OriginalPrice, schema.FlashSale.SalePrice,
		schema.FlashSale.Quantity, schema.FlashSale.StartsAt, schema.FlashSale.EndsAt,
		schema.FlashSale.IsActive, schema.FlashSale.CreatedAt, schema.FlashSale.UpdatedAt,
		schema.FlashSale.Table,
	)
}

func scanFlashSale(row pgx.Row) (*FlashSale, error) {
	s := &FlashSale{}
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Slug, &s.Title, &s.ProductID,
		&s.OriginalPrice, &s.SalePrice, &s.Quantity, &s.StartsAt, &s.EndsAt,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (repository *PostgresRepository) ListFlashSales(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*FlashSale, int, error) {
	where := fmt.Sprintf(" WHERE %s = $1", schema.FlashSale.TenantID)
	args := []any{tenantID}

	if f.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.FlashSale.IsActive)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.FlashSale.Slug, len(args), schema.FlashSale.Title, len(args))
	}
	if !f.RunningAt.IsZero() {
		args = append(args, f.RunningAt)
		where += fmt.Sprintf(" AND %s <= $%d AND %s > $%d",
			schema.FlashSale.StartsAt, len(args), schema.FlashSale.EndsAt, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.FlashSale.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_flash_sales")
	}

	// Ordering is restricted to a fixed column set.
	sort := schema.FlashSale.StartsAt
	switch f.Sort {
	case "ends_at":
		sort = schema.FlashSale.EndsAt
	case "sale_price":
		sort = schema.FlashSale.SalePrice
	}
	sortDir := "ASC"
	if strings.ToLower(f.SortDir) == "desc" {
		sortDir = "DESC"
	}

	query := flashSaleSelect() + where +
		fmt.Sprintf(" ORDER BY %s %s, %s ASC LIMIT $%d OFFSET $%d",
			sort, sortDir, schema.FlashSale.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_flash_sales")
	}
	defer rows.Close()

	var sales []*FlashSale
	for rows.Next() {
		s, err := scanFlashSale(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_flash_sale")
		}
		sales = append(sales, s)
	}

	return sales, total, nil
}

func (repository *PostgresRepository) GetFlashSale(context context.Context, tenantID, id int64) (*FlashSale, error) {
	query := flashSaleSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.FlashSale.TenantID, schema.FlashSale.ID)

	s, err := scanFlashSale(repository.db.QueryRow(context, query, tenantID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_flash_sale")
	}
	return s, nil
}

func (repository *PostgresRepository) GetFlashSaleBySlug(context context.Context, tenantID int64, slug string) (*FlashSale, error) {
	query := flashSaleSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.FlashSale.TenantID, schema.FlashSale.Slug)

	s, err := scanFlashSale(repository.db.QueryRow(context, query, tenantID, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_flash_sale_by_slug")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateFlashSale(context context.Context, s *FlashSale) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.FlashSale.Table, schema.FlashSale.TenantID, schema.FlashSale.Slug, schema.FlashSale.Title,
		schema.FlashSale.ProductID, schema.FlashSale.OriginalPrice, schema.FlashSale.SalePrice,
		schema.FlashSale.Quantity, schema.FlashSale.StartsAt, schema.FlashSale.EndsAt, schema.FlashSale.IsActive,
		schema.FlashSale.CreatedAt, schema.FlashSale.UpdatedAt,
		schema.FlashSale.ID, schema.FlashSale.CreatedAt, schema.FlashSale.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.TenantID, s.Slug, s.Title, s.ProductID, s.OriginalPrice, s.SalePrice,
		s.Quantity, s.StartsAt, s.EndsAt, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_flash_sale")
}

func (repository *PostgresRepository) UpdateFlashSale(context context.Context, s *FlashSale) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.FlashSale.Table,
		schema.FlashSale.Slug, schema.FlashSale.Title, schema.FlashSale.ProductID,
		schema.FlashSale.OriginalPrice, schema.FlashSale.SalePrice, schema.FlashSale.Quantity,
		schema.FlashSale.StartsAt, schema.FlashSale.EndsAt, schema.FlashSale.IsActive, schema.FlashSale.UpdatedAt,
		schema.FlashSale.TenantID, schema.FlashSale.ID,
		schema.FlashSale.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.TenantID, s.ID, s.Slug, s.Title, s.ProductID, s.OriginalPrice, s.SalePrice,
		s.Quantity, s.StartsAt, s.EndsAt, s.IsActive,
	).Scan(&s.UpdatedAt)
	return dberr.Wrap(err, "update_flash_sale")
}

func (repository *PostgresRepository) DeleteFlashSale(context context.Context, tenantID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.FlashSale.Table, schema.FlashSale.TenantID, schema.FlashSale.ID)

	cmd, err := repository.db.Exec(context, query, tenantID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_flash_sale")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
