package member

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

func memberSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Member.ID, schema.Member.TenantID, schema.Member.Email, schema.Member.PasswordHash,
		schema.Member.DisplayName, schema.Member.Role, schema.Member.IsActive,
		schema.Member.CreatedAt, schema.Member.UpdatedAt,
		schema.Member.Table,
	)
}

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(&m.ID, &m.TenantID, &m.Email, &m.PasswordHash,
		&m.DisplayName, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (repository *PostgresRepository) ListMembers(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Member, int, error) {
	where := fmt.Sprintf(" WHERE %s = $1", schema.Member.TenantID)
	args := []any{tenantID}

	if f.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.Member.IsActive)
	}
	if f.Role != "" {
		args = append(args, f.Role)
		where += fmt.Sprintf(" AND %s = $%d", schema.Member.Role, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Member.Email, len(args), schema.Member.DisplayName, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Member.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_members")
	}

	query := memberSelect() + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Member.Email, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_members")
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_member")
		}
		members = append(members, m)
	}

	return members, total, nil
}

func (repository *PostgresRepository) GetMember(context context.Context, tenantID, id int64) (*Member, error) {
	query := memberSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2",
		schema.Member.TenantID, schema.Member.ID)

	m, err := scanMember(repository.db.QueryRow(context, query, tenantID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_member")
	}
	return m, nil
}

func (repository *PostgresRepository) GetMemberByEmail(context context.Context, tenantID int64, email string) (*Member, error) {
	query := memberSelect() + fmt.Sprintf(" WHERE %s = $1 AND lower(%s) = lower($2)",
		schema.Member.TenantID, schema.Member.Email)

	m, err := scanMember(repository.db.QueryRow(context, query, tenantID, email))
	if err != nil {
		return nil, dberr.Wrap(err, "get_member_by_email")
	}
	return m, nil
}

func (repository *PostgresRepository) CreateMember(context context.Context, m *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Member.Table,
		schema.Member.TenantID, schema.Member.Email, schema.Member.PasswordHash,
		schema.Member.DisplayName, schema.Member.Role, schema.Member.IsActive,
		schema.Member.CreatedAt, schema.Member.UpdatedAt,
		schema.Member.ID, schema.Member.CreatedAt, schema.Member.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.TenantID, m.Email, m.PasswordHash, m.DisplayName, m.Role, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return dberr.Wrap(err, "create_member")
}

func (repository *PostgresRepository) UpdateMember(context context.Context, m *Member) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Member.Table,
		schema.Member.Email, schema.Member.DisplayName, schema.Member.Role,
		schema.Member.IsActive, schema.Member.UpdatedAt,
		schema.Member.TenantID, schema.Member.ID,
		schema.Member.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.TenantID, m.ID, m.Email, m.DisplayName, m.Role, m.IsActive,
	).Scan(&m.UpdatedAt)
	return dberr.Wrap(err, "update_member")
}

func (repository *PostgresRepository) UpdatePasswordHash(context context.Context, tenantID, id int64, passwordHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2
	`,
		schema.Member.Table, schema.Member.PasswordHash, schema.Member.UpdatedAt,
		schema.Member.TenantID, schema.Member.ID,
	)

	cmd, err := repository.db.Exec(context, query, tenantID, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_member_password")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteMember(context context.Context, tenantID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Member.Table, schema.Member.TenantID, schema.Member.ID)

	cmd, err := repository.db.Exec(context, query, tenantID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_member")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
