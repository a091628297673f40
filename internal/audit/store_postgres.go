package audit

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListEntries(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Entry, int, error) {
	base := fmt.Sprintf(` FROM %s WHERE %s = $1`, schema.EntityLog.Table, schema.EntityLog.TenantID)
	args := []any{tenantID}

	if f.EntityType != "" {
		args = append(args, f.EntityType)
		base += fmt.Sprintf(" AND %s = $%d", schema.EntityLog.EntityType, len(args))
	}
	if f.EntityID > 0 {
		args = append(args, f.EntityID)
		base += fmt.Sprintf(" AND %s = $%d", schema.EntityLog.EntityID, len(args))
	}
	if f.Action != "" {
		args = append(args, string(f.Action))
		base += fmt.Sprintf(" AND %s = $%d", schema.EntityLog.Action, len(args))
	}

	var total int
	if err := repository.db.QueryRow(context, "SELECT count(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_audit_entries")
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s`,
		schema.EntityLog.ID, schema.EntityLog.TenantID, schema.EntityLog.ActorID,
		schema.EntityLog.EntityType, schema.EntityLog.EntityID, schema.EntityLog.Action,
		schema.EntityLog.Changes, schema.EntityLog.IPAddress, schema.EntityLog.CreatedAt,
	) + base + fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", schema.EntityLog.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ActorID, &e.EntityType, &e.EntityID, &e.Action, &e.Changes, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audit_entry")
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) CreateEntry(context context.Context, e *Entry) error {
	err := repository.db.QueryRow(context, insertEntrySQL(),
		e.TenantID, e.ActorID, e.EntityType, e.EntityID, e.Action, e.Changes, e.IPAddress,
	).Scan(&e.ID, &e.CreatedAt)
	return dberr.Wrap(err, "create_audit_entry")
}

func insertEntrySQL() string {
	return fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING %s, %s
	`,
		schema.EntityLog.Table, schema.EntityLog.TenantID, schema.EntityLog.ActorID,
		schema.EntityLog.EntityType, schema.EntityLog.EntityID, schema.EntityLog.Action,
		schema.EntityLog.Changes, schema.EntityLog.IPAddress, schema.EntityLog.CreatedAt,
		schema.EntityLog.ID, schema.EntityLog.CreatedAt,
	)
}
