package colorsetting

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
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.ColorSetting.ID, schema.ColorSetting.ThemeID, schema.ColorSetting.SettingKey,
		schema.ColorSetting.ColorValue, schema.ColorSetting.SortOrder,
		schema.ColorSetting.CreatedAt, schema.ColorSetting.UpdatedAt,
		schema.ColorSetting.Table,
	)
}

func scanSetting(row pgx.Row) (*ColorSetting, error) {
	s := &ColorSetting{}
	err := row.Scan(&s.ID, &s.ThemeID, &s.SettingKey, &s.ColorValue, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (repository *PostgresRepository) ListSettings(context context.Context, themeID int64, limit, offset int) ([]*ColorSetting, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.ColorSetting.Table, schema.ColorSetting.ThemeID)
	if err := repository.db.QueryRow(context, countQuery, themeID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_color_settings")
	}

	query := settingSelect() + fmt.Sprintf(" WHERE %s = $1 ORDER BY %s ASC, %s ASC LIMIT $2 OFFSET $3",
		schema.ColorSetting.ThemeID, schema.ColorSetting.SortOrder, schema.ColorSetting.SettingKey)

	rows, err := repository.db.Query(context, query, themeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_color_settings")
	}
	defer rows.Close()

	var settings []*ColorSetting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_color_setting")
		}
		settings = append(settings, s)
	}

	return settings, total, nil
}

func (repository *PostgresRepository) GetSetting(context context.Context, id int64) (*ColorSetting, error) {
	query := settingSelect() + fmt.Sprintf(" WHERE %s = $1", schema.ColorSetting.ID)

	s, err := scanSetting(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_color_setting")
	}
	return s, nil
}

func (repository *PostgresRepository) GetSettingByKey(context context.Context, themeID int64, key string) (*ColorSetting, error) {
	query := settingSelect() + fmt.Sprintf(" WHERE %s = $1 AND %s = $2",
		schema.ColorSetting.ThemeID, schema.ColorSetting.SettingKey)

	s, err := scanSetting(repository.db.QueryRow(context, query, themeID, key))
	if err != nil {
		return nil, dberr.Wrap(err, "get_color_setting_by_key")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSetting(context context.Context, s *ColorSetting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.ColorSetting.Table, schema.ColorSetting.ThemeID, schema.ColorSetting.SettingKey,
		schema.ColorSetting.ColorValue, schema.ColorSetting.SortOrder,
		schema.ColorSetting.CreatedAt, schema.ColorSetting.UpdatedAt,
		schema.ColorSetting.ID, schema.ColorSetting.CreatedAt, schema.ColorSetting.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ThemeID, s.SettingKey, s.ColorValue, s.SortOrder,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_color_setting")
}

func (repository *PostgresRepository) UpdateSetting(context context.Context, s *ColorSetting) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ColorSetting.Table,
		schema.ColorSetting.SettingKey, schema.ColorSetting.ColorValue,
		schema.ColorSetting.SortOrder, schema.ColorSetting.UpdatedAt,
		schema.ColorSetting.ID,
		schema.ColorSetting.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.SettingKey, s.ColorValue, s.SortOrder,
	).Scan(&s.UpdatedAt)
	return dberr.Wrap(err, "update_color_setting")
}

func (repository *PostgresRepository) UpsertSettings(context context.Context, themeID int64, settings []*ColorSetting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.ColorSetting.Table, schema.ColorSetting.ThemeID, schema.ColorSetting.SettingKey,
		schema.ColorSetting.ColorValue, schema.ColorSetting.SortOrder,
		schema.ColorSetting.CreatedAt, schema.ColorSetting.UpdatedAt,
		schema.ColorSetting.ThemeID, schema.ColorSetting.SettingKey,
		schema.ColorSetting.ColorValue, schema.ColorSetting.ColorValue,
		schema.ColorSetting.SortOrder, schema.ColorSetting.SortOrder,
		schema.ColorSetting.UpdatedAt,
	)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		for _, s := range settings {
			if _, err := tx.Exec(context, query, themeID, s.SettingKey, s.ColorValue, s.SortOrder); err != nil {
				return err
			}
		}
		return nil
	})
	return dberr.Wrap(err, "upsert_color_settings")
}

func (repository *PostgresRepository) DeleteSetting(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ColorSetting.Table, schema.ColorSetting.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_color_setting")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteSettingByKey(context context.Context, themeID int64, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ColorSetting.Table, schema.ColorSetting.ThemeID, schema.ColorSetting.SettingKey)

	cmd, err := repository.db.Exec(context, query, themeID, key)
	if err != nil {
		return dberr.Wrap(err, "delete_color_setting_by_key")
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
