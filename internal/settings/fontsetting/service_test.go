package fontsetting_test

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
	"github.com/vendora/vendora/internal/settings/fontsetting"
)

// fakeRepository keys settings by id and knows one owned theme per tenant.
type fakeRepository struct {
	settings    map[int64]*fontsetting.FontSetting
	ownedThemes map[int64]int64 // themeID -> tenantID
	nextID      int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		settings:    make(map[int64]*fontsetting.FontSetting),
		ownedThemes: map[int64]int64{10: 1},
		nextID:      1,
	}
}

func (f *fakeRepository) ListSettings(_ context.Context, themeID int64, limit, offset int) ([]*fontsetting.FontSetting, int, error) {
	var out []*fontsetting.FontSetting
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

func (f *fakeRepository) GetSetting(_ context.Context, id int64) (*fontsetting.FontSetting, error) {
	s, ok := f.settings[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeRepository) GetSettingByKey(_ context.Context, themeID int64, key string) (*fontsetting.FontSetting, error) {
	for _, s := range f.settings {
		if s.ThemeID == themeID && s.SettingKey == key {
			clone := *s
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateSetting(_ context.Context, s *fontsetting.FontSetting) error {
	s.ID = f.nextID
	f.nextID++
	clone := *s
	f.settings[s.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateSetting(_ context.Context, s *fontsetting.FontSetting) error {
	if _, ok := f.settings[s.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *s
	f.settings[s.ID] = &clone
	return nil
}

func (f *fakeRepository) UpsertSettings(ctx context.Context, themeID int64, settings []*fontsetting.FontSetting) error {
	for _, s := range settings {
		if existing, err := f.GetSettingByKey(ctx, themeID, s.SettingKey); err == nil {
			existing.FontFamily = s.FontFamily
			existing.FontSize = s.FontSize
			existing.FontWeight = s.FontWeight
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

func newTestService() *fontsetting.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fontsetting.NewService(newFakeRepository(), audit.NewRecorder(&fakeAuditRepository{}, logger), logger)
}

func TestCreateFontSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_typography_slot", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateSetting(ctx, 1, &fontsetting.FontSetting{
			ThemeID:    10,
			SettingKey: "heading.h1",
			FontFamily: "Inter",
			FontSize:   32,
			FontWeight: 700,
		})
		require.NoError(t, err)
		assert.Equal(t, "heading.h1", created.SettingKey)
	})

	t.Run("size_and_weight_out_of_range", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateSetting(ctx, 1, &fontsetting.FontSetting{
			ThemeID:    10,
			SettingKey: "heading.h1",
			FontFamily: "Inter",
			FontSize:   3,
			FontWeight: 1000,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "font_size")
		assert.Contains(t, fields, "font_weight")
	})

	t.Run("foreign_theme_is_not_found", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateSetting(ctx, 2, &fontsetting.FontSetting{
			ThemeID: 10, SettingKey: "body", FontFamily: "Inter", FontSize: 16, FontWeight: 400,
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestUpsertFontSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("reports_every_invalid_element", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.UpsertSettings(ctx, 1, 10, []*fontsetting.FontSetting{
			{SettingKey: "body", FontFamily: "", FontSize: 16, FontWeight: 400},
			{SettingKey: "heading.h1", FontFamily: "Inter", FontSize: 32, FontWeight: 700},
			{SettingKey: "caption", FontFamily: "Inter", FontSize: 500, FontWeight: 400},
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "settings.0.font_family")
		assert.Contains(t, fields, "settings.2.font_size")
	})

	t.Run("returns_whole_set_even_for_small_batches", func(t *testing.T) {
		service := newTestService()

		seed := make([]*fontsetting.FontSetting, 0, 8)
		for i := 0; i < 8; i++ {
			seed = append(seed, &fontsetting.FontSetting{
				SettingKey: fmt.Sprintf("slot.%d", i),
				FontFamily: "Inter",
				FontSize:   14 + i,
				FontWeight: 400,
			})
		}
		_, _, err := service.UpsertSettings(ctx, 1, 10, seed)
		require.NoError(t, err)

		stored, total, err := service.UpsertSettings(ctx, 1, 10, []*fontsetting.FontSetting{
			{SettingKey: "accent", FontFamily: "Lora", FontSize: 18, FontWeight: 500},
		})
		require.NoError(t, err)
		assert.Equal(t, 9, total)
		assert.Len(t, stored, 9)
	})

	t.Run("duplicate_key_in_batch_is_rejected", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.UpsertSettings(ctx, 1, 10, []*fontsetting.FontSetting{
			{SettingKey: "body", FontFamily: "Inter", FontSize: 16, FontWeight: 400},
			{SettingKey: "body", FontFamily: "Lora", FontSize: 17, FontWeight: 400},
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestDeleteFontSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("delete_is_idempotent", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateSetting(ctx, 1, &fontsetting.FontSetting{
			ThemeID: 10, SettingKey: "body", FontFamily: "Inter", FontSize: 16, FontWeight: 400,
		})
		require.NoError(t, err)

		require.NoError(t, service.DeleteSetting(ctx, 1, created.ID))
		require.NoError(t, service.DeleteSetting(ctx, 1, created.ID))
	})
}
