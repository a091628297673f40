package colorsetting_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/settings/colorsetting"
)

// fakeRepository keys settings by id and knows one owned theme per tenant.
type fakeRepository struct {
	settings    map[int64]*colorsetting.ColorSetting
	ownedThemes map[int64]int64 // themeID -> tenantID
	nextID      int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		settings:    make(map[int64]*colorsetting.ColorSetting),
		ownedThemes: map[int64]int64{10: 1},
		nextID:      1,
	}
}

func (f *fakeRepository) ListSettings(_ context.Context, themeID int64, limit, offset int) ([]*colorsetting.ColorSetting, int, error) {
	var out []*colorsetting.ColorSetting
	for _, s := range f.settings {
		if s.ThemeID == themeID {
			out = append(out, s)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeRepository) GetSetting(_ context.Context, id int64) (*colorsetting.ColorSetting, error) {
	s, ok := f.settings[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeRepository) GetSettingByKey(_ context.Context, themeID int64, key string) (*colorsetting.ColorSetting, error) {
	for _, s := range f.settings {
		if s.ThemeID == themeID && s.SettingKey == key {
			clone := *s
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateSetting(_ context.Context, s *colorsetting.ColorSetting) error {
	s.ID = f.nextID
	f.nextID++
	clone := *s
	f.settings[s.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateSetting(_ context.Context, s *colorsetting.ColorSetting) error {
	if _, ok := f.settings[s.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *s
	f.settings[s.ID] = &clone
	return nil
}

func (f *fakeRepository) UpsertSettings(ctx context.Context, themeID int64, settings []*colorsetting.ColorSetting) error {
	for _, s := range settings {
		if existing, err := f.GetSettingByKey(ctx, themeID, s.SettingKey); err == nil {
			existing.ColorValue = s.ColorValue
			existing.SortOrder = s.SortOrder
			f.settings[existing.ID] = existing
			continue
		}
		s.ThemeID = themeID
		_ = f.CreateSetting(ctx, s)
	}
	return nil
}

func (f *fakeRepository) DeleteSetting(_ context.Context, id int64) error {
	if _, ok := f.settings[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.settings, id)
	return nil
}

func (f *fakeRepository) DeleteSettingByKey(_ context.Context, themeID int64, key string) error {
	for id, s := range f.settings {
		if s.ThemeID == themeID && s.SettingKey == key {
			delete(f.settings, id)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) ThemeOwned(_ context.Context, tenantID, themeID int64) (bool, error) {
	return f.ownedThemes[themeID] == tenantID, nil
}

type fakeAuditRepository struct{ entries []*audit.Entry }

func (f *fakeAuditRepository) ListEntries(_ context.Context, _ int64, _ audit.Filter, _, _ int) ([]*audit.Entry, int, error) {
	return f.entries, len(f.entries), nil
}

func (f *fakeAuditRepository) CreateEntry(_ context.Context, e *audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestService() *colorsetting.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return colorsetting.NewService(newFakeRepository(), audit.NewRecorder(&fakeAuditRepository{}, logger), logger)
}

func TestCreateColorSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_key_and_color", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateSetting(ctx, 1, &colorsetting.ColorSetting{
			ThemeID:    10,
			SettingKey: "primary.background",
			ColorValue: "#1a2b3c",
		})
		require.NoError(t, err)
		// Hex values are normalized to upper case.
		assert.Equal(t, "#1A2B3C", created.ColorValue)
	})

	t.Run("bad_key_and_color_report_both_fields", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateSetting(ctx, 1, &colorsetting.ColorSetting{
			ThemeID:    10,
			SettingKey: "Primary Background!",
			ColorValue: "blue",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "setting_key")
		assert.Contains(t, fields, "color_value")
	})

	t.Run("duplicate_key_is_conflict", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateSetting(ctx, 1, &colorsetting.ColorSetting{
			ThemeID: 10, SettingKey: "primary", ColorValue: "#FFFFFF",
		})
		require.NoError(t, err)

		_, err = service.CreateSetting(ctx, 1, &colorsetting.ColorSetting{
			ThemeID: 10, SettingKey: "primary", ColorValue: "#000000",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("foreign_theme_is_not_found", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateSetting(ctx, 2, &colorsetting.ColorSetting{
			ThemeID: 10, SettingKey: "primary", ColorValue: "#FFFFFF",
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestUpsertColorSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts_and_updates_in_one_batch", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateSetting(ctx, 1, &colorsetting.ColorSetting{
			ThemeID: 10, SettingKey: "primary", ColorValue: "#FFFFFF",
		})
		require.NoError(t, err)

		stored, total, err := service.UpsertSettings(ctx, 1, 10, []*colorsetting.ColorSetting{
			{SettingKey: "primary", ColorValue: "#111111"},
			{SettingKey: "secondary", ColorValue: "#222222"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		byKey := map[string]string{}
		for _, s := range stored {
			byKey[s.SettingKey] = s.ColorValue
		}
		assert.Equal(t, "#111111", byKey["primary"])
		assert.Equal(t, "#222222", byKey["secondary"])
	})

	t.Run("reports_every_invalid_element", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.UpsertSettings(ctx, 1, 10, []*colorsetting.ColorSetting{
			{SettingKey: "primary", ColorValue: "blue"},
			{SettingKey: "secondary", ColorValue: "#222222"},
			{SettingKey: "Not A Key!", ColorValue: "#333333"},
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "settings.0.color_value")
		assert.Contains(t, fields, "settings.2.setting_key")
	})

	t.Run("returns_whole_palette_even_for_small_batches", func(t *testing.T) {
		service := newTestService()

		seed := make([]*colorsetting.ColorSetting, 0, 8)
		for i := 0; i < 8; i++ {
			seed = append(seed, &colorsetting.ColorSetting{
				SettingKey: fmt.Sprintf("shade.%d", i),
				ColorValue: fmt.Sprintf("#1111%02X", i),
			})
		}
		_, _, err := service.UpsertSettings(ctx, 1, 10, seed)
		require.NoError(t, err)

		stored, total, err := service.UpsertSettings(ctx, 1, 10, []*colorsetting.ColorSetting{
			{SettingKey: "accent", ColorValue: "#ABCDEF"},
		})
		require.NoError(t, err)
		assert.Equal(t, 9, total)
		assert.Len(t, stored, 9)
	})

	t.Run("duplicate_key_in_batch_is_rejected", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.UpsertSettings(ctx, 1, 10, []*colorsetting.ColorSetting{
			{SettingKey: "primary", ColorValue: "#111111"},
			{SettingKey: "primary", ColorValue: "#222222"},
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestDeleteColorSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("delete_is_idempotent", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateSetting(ctx, 1, &colorsetting.ColorSetting{
			ThemeID: 10, SettingKey: "primary", ColorValue: "#FFFFFF",
		})
		require.NoError(t, err)

		require.NoError(t, service.DeleteSetting(ctx, 1, created.ID))
		// Second delete of the same id still succeeds.
		require.NoError(t, service.DeleteSetting(ctx, 1, created.ID))
	})

	t.Run("delete_by_key_is_idempotent", func(t *testing.T) {
		service := newTestService()

		require.NoError(t, service.DeleteSettingByKey(ctx, 1, 10, "never.existed"))
	})
}
