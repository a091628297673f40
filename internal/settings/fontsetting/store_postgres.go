package fontsetting

import (
	"context"
	"fmt"

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

func settingSelect() string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.FontSetting.ID, schema.FontSetting.ThemeID, schema.FontSetting.SettingKey,
		schema.FontSetting.FontFamily, schema.FontSetting.FontSize, schema.FontSetting.FontWeight,
		schema.FontSetting.SortOrder, schema.FontSetting.CreatedAt, schema.FontSetting.UpdatedAt,
		schema.FontSetting.Table,
	)
}

func scanSetting(row pgx.Row) (*FontSetting, error) {
	s := &FontSetting{}
	err := row.Scan(
		&s.ID, &s.ThemeID, &s.SettingKey, &s.FontFamily, &s.FontSize, &s.FontWeight,
		&s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (repository *PostgresRepository) ListSettings(context context.Context, themeID int64, limit, offset int) ([]*FontSetting, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.FontSetting.Table, schema.FontSetting.ThemeID)
	if err := repository.db.QueryRow(context, countQuery, themeID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_font_settings")
	}

	query := settingSelect() + fmt.Sprintf(" WHERE %s = $1 ORDER BY %s ASC, %s ASC LIMIT $2 OFFSET $3",
		schema.FontSetting.ThemeID, schema.FontSetting.SortOrder, schema.FontSetting.SettingKey)

	rows, err := repository.db.Query(context, query, themeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_font_settings")
	}
	defer rows.Close()

	var settings []*FontSetting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_font_setting")
		}
		settings = append(settings, s)
	}

	return settings, total, nil
}

func (repository *PostgresRepository) GetSetting(context context.Context, id int64) (*FontSetting, error) {
	query := settingSelect() + fmt.Sprintf(" WHERE %s = $1", schema.FontSetting.ID)

	s, err := scanSetting(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_font_setting")
	}
	return s, nil
}

func (repository *PostgresRepository) GetSettingByKey(context context.Context, themeID int64, key string) (*FontSetting, error) {
	query := settingSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2",
		schema.FontSetting.ThemeID, schema.FontSetting.SettingKey)

	s, err := scanSetting(repository.db.QueryRow(context, query, themeID, key))
	if err != nil {
		return nil, dberr.Wrap(err, "get_font_setting_by_key")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSetting(context context.Context, s *FontSetting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.FontSetting.Table, schema.FontSetting.ThemeID, schema.FontSetting.SettingKey,
		schema.FontSetting.FontFamily, schema.FontSetting.FontSize, schema.FontSetting.FontWeight,
		schema.FontSetting.SortOrder, schema.FontSetting.CreatedAt, schema.FontSetting.UpdatedAt,
		schema.FontSetting.ID, schema.FontSetting.CreatedAt, schema.FontSetting.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ThemeID, s.SettingKey, s.FontFamily, s.FontSize, s.FontWeight, s.SortOrder,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_font_setting")
}

func (repository *PostgresRepository) UpdateSetting(context context.Context, s *FontSetting) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.FontSetting.Table,
		schema.FontSetting.SettingKey, schema.FontSetting.FontFamily, schema.FontSetting.FontSize,
		schema.FontSetting.FontWeight, schema.FontSetting.SortOrder, schema.FontSetting.UpdatedAt,
		schema.FontSetting.ID,
		schema.FontSetting.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.SettingKey, s.FontFamily, s.FontSize, s.FontWeight, s.SortOrder,
	).Scan(&s.UpdatedAt)
	return dberr.Wrap(err, "update_font_setting")
}

func (repository *PostgresRepository) UpsertSettings(context context.Context, themeID int64, settings []*FontSetting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.FontSetting.Table, schema.FontSetting.ThemeID, schema.FontSetting.SettingKey,
		schema.FontSetting.FontFamily, schema.FontSetting.FontSize, schema.FontSetting.FontWeight,
		schema.FontSetting.SortOrder, schema.FontSetting.CreatedAt, schema.FontSetting.UpdatedAt,
		schema.FontSetting.ThemeID, schema.FontSetting.SettingKey,
		schema.FontSetting.FontFamily, schema.FontSetting.FontFamily,
		schema.FontSetting.FontSize, schema.FontSetting.FontSize,
		schema.FontSetting.FontWeight, schema.FontSetting.FontWeight,
		schema.FontSetting.SortOrder, schema.FontSetting.SortOrder,
		schema.FontSetting.UpdatedAt,
	)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		for _, s := range settings {
			if _, err := tx.Exec(context, query,
				themeID, s.SettingKey, s.FontFamily, s.FontSize, s.FontWeight, s.SortOrder); err != nil {
				return err
			}
		}
		return nil
	})
	return dberr.Wrap(err, "upsert_font_settings")
}

func (repository *PostgresRepository) DeleteSetting(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.FontSetting.Table, schema.FontSetting.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_font_setting")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteSettingByKey(context context.Context, themeID int64, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.FontSetting.Table, schema.FontSetting.ThemeID, schema.FontSetting.SettingKey)

	cmd, err := repository.db.Exec(context, query, themeID, key)
	if err != nil {
		return dberr.Wrap(err, "delete_font_setting_by_key")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ThemeOwned(context context.Context, tenantID, themeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Theme.Table, schema.Theme.TenantID, schema.Theme.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, tenantID, themeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "theme_owned")
	}
	return exists, nil
}
