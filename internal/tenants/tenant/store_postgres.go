package tenant

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

func tenantSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Tenant.ID, schema.Tenant.Domain, schema.Tenant.Name, schema.Tenant.Plan,
		schema.Tenant.Status, schema.Tenant.CreatedAt, schema.Tenant.UpdatedAt,
		schema.Tenant.Table,
	)
}

func scanTenant(row pgx.Row) (*Tenant, error) {
	t := &Tenant{}
	err := row.Scan(&t.ID, &t.Domain, &t.Name, &t.Plan, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (repository *PostgresRepository) ListTenants(context context.Context, f Filter, limit, offset int) ([]*Tenant, int, error) {
	where := " WHERE TRUE"
	var args []any

	if f.Plan != "" {
		args = append(args, f.Plan)
		where += fmt.Sprintf(" AND %s = $%d", schema.Tenant.Plan, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND %s = $%d", schema.Tenant.Status, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Tenant.Domain, len(args), schema.Tenant.Name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Tenant.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tenants")
	}

	query := tenantSelect() + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Tenant.Domain, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tenants")
	}
	defer rows.Close()

	var tenants []*Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tenant")
		}
		tenants = append(tenants, t)
	}

	return tenants, total, nil
}

func (repository *PostgresRepository) GetTenant(context context.Context, id int64) (*Tenant, error) {
	query := tenantSelect() + fmt.Sprintf(" WHERE %s = $1", schema.Tenant.ID)

	t, err := scanTenant(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_tenant")
	}
	return t, nil
}

func (repository *PostgresRepository) GetTenantByDomain(context context.Context, domain string) (*Tenant, error) {
	query := tenantSelect() + fmt.Sprintf(" WHERE %s = $1", schema.Tenant.Domain)

	t, err := scanTenant(repository.db.QueryRow(context, query, domain))
	if err != nil {
		return nil, dberr.Wrap(err, "get_tenant_by_domain")
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTenant(context context.Context, t *Tenant) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Tenant.Table, schema.Tenant.Domain, schema.Tenant.Name, schema.Tenant.Plan,
		schema.Tenant.Status, schema.Tenant.CreatedAt, schema.Tenant.UpdatedAt,
		schema.Tenant.ID, schema.Tenant.CreatedAt, schema.Tenant.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		t.Domain, t.Name, t.Plan, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_tenant")
}

func (repository *PostgresRepository) UpdateTenant(context context.Context, t *Tenant) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Tenant.Table,
		schema.Tenant.Domain, schema.Tenant.Name, schema.Tenant.Plan,
		schema.Tenant.Status, schema.Tenant.UpdatedAt,
		schema.Tenant.ID,
		schema.Tenant.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		t.ID, t.Domain, t.Name, t.Plan, t.Status,
	).Scan(&t.UpdatedAt)
	return dberr.Wrap(err, "update_tenant")
}

func (repository *PostgresRepository) DeleteTenant(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Tenant.Table, schema.Tenant.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tenant")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) HasMembers(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Member.Table, schema.Member.TenantID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "tenant_has_members")
	}
	return exists, nil
}
