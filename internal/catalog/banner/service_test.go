package banner_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/catalog/banner"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
)

// fakeRepository keys banners by id and knows one theme per tenant.
type fakeRepository struct {
	banners map[int64]*banner.Banner
	themes  map[int64]int64 // themeID -> tenantID
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		banners: make(map[int64]*banner.Banner),
		themes:  map[int64]int64{10: 1, 20: 2},
		nextID:  1,
	}
}

func (f *fakeRepository) ListBanners(_ context.Context, tenantID int64, filter banner.Filter, limit, offset int) ([]*banner.Banner, int, error) {
	var out []*banner.Banner
	for _, b := range f.banners {
		if b.TenantID != tenantID {
			continue
		}
		if filter.ThemeID != 0 && b.ThemeID != filter.ThemeID {
			continue
		}
		if filter.ActiveOnly && !b.IsActive {
			continue
		}
		if len(filter.Placements) > 0 && !contains(filter.Placements, b.Placement) {
			continue
		}
		if !filter.LiveAt.IsZero() {
			if b.StartsAt != nil && filter.LiveAt.Before(*b.StartsAt) {
				continue
			}
			if b.EndsAt != nil && filter.LiveAt.After(*b.EndsAt) {
				continue
			}
		}
		out = append(out, b)
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

func contains(values []string, v string) bool {
	for _, c := range values {
		if c == v {
			return true
		}
	}
	return false
}

func (f *fakeRepository) GetBanner(_ context.Context, tenantID, id int64) (*banner.Banner, error) {
	b, ok := f.banners[id]
	if !ok || b.TenantID != tenantID {
		return nil, dberr.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepository) CreateBanner(_ context.Context, b *banner.Banner) error {
	b.ID = f.nextID
	f.nextID++
	clone := *b
	f.banners[b.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateBanner(_ context.Context, b *banner.Banner) error {
	if _, ok := f.banners[b.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *b
	f.banners[b.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteBanner(_ context.Context, tenantID, id int64) error {
	b, ok := f.banners[id]
	if !ok || b.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	delete(f.banners, id)
	return nil
}

func (f *fakeRepository) ThemeExists(_ context.Context, tenantID, themeID int64) (bool, error) {
	return f.themes[themeID] == tenantID, nil
}

type fakeAuditRepository struct{ entries []*audit.Entry }

func (f *fakeAuditRepository) ListEntries(_ context.Context, _ int64, _ audit.Filter, _, _ int) ([]*audit.Entry, int, error) {
	return f.entries, len(f.entries), nil
}

func (f *fakeAuditRepository) CreateEntry(_ context.Context, e *audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestService() (*banner.Service, *fakeRepository, *fakeAuditRepository) {
	repo := newFakeRepository()
	auditRepo := &fakeAuditRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return banner.NewService(repo, audit.NewRecorder(auditRepo, logger), logger), repo, auditRepo
}

func validBanner(themeID int64) *banner.Banner {
	return &banner.Banner{
		ThemeID:   themeID,
		Title:     "Summer sale",
		ImageURL:  "https://cdn.example.com/summer.png",
		Placement: banner.PlacementHero,
		IsActive:  true,
	}
}

func TestCreateBanner(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_banner_is_audited", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateBanner(ctx, 1, validBanner(10))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, int64(1), created.TenantID)

		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, audit.ActionCreate, auditRepo.entries[0].Action)
	})

	t.Run("window_must_end_after_it_starts", func(t *testing.T) {
		service, _, _ := newTestService()

		starts := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		ends := starts.Add(-time.Hour)

		b := validBanner(10)
		b.StartsAt = &starts
		b.EndsAt = &ends

		_, err := service.CreateBanner(ctx, 1, b)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "ends_at")
	})

	t.Run("open_ended_window_is_accepted", func(t *testing.T) {
		service, _, _ := newTestService()

		starts := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		b := validBanner(10)
		b.StartsAt = &starts

		_, err := service.CreateBanner(ctx, 1, b)
		assert.NoError(t, err)
	})

	t.Run("unknown_placement_is_rejected", func(t *testing.T) {
		service, _, _ := newTestService()

		b := validBanner(10)
		b.Placement = "marquee"

		_, err := service.CreateBanner(ctx, 1, b)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("other_tenants_theme_is_unprocessable", func(t *testing.T) {
		service, _, _ := newTestService()

		// Theme 20 belongs to tenant 2.
		_, err := service.CreateBanner(ctx, 1, validBanner(20))
		require.Error(t, err)
		assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	})
}

func TestUpdateBanner(t *testing.T) {
	ctx := context.Background()

	t.Run("shrinking_window_below_start_is_rejected", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateBanner(ctx, 1, validBanner(10))
		require.NoError(t, err)

		starts := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		ends := starts
		b := validBanner(10)
		b.StartsAt = &starts
		b.EndsAt = &ends

		_, err = service.UpdateBanner(ctx, 1, created.ID, b)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("cross_tenant_update_is_not_found", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateBanner(ctx, 1, validBanner(10))
		require.NoError(t, err)

		_, err = service.UpdateBanner(ctx, 2, created.ID, validBanner(20))
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestListBanners(t *testing.T) {
	ctx := context.Background()

	t.Run("filters_by_placement", func(t *testing.T) {
		service, _, _ := newTestService()

		hero := validBanner(10)
		_, err := service.CreateBanner(ctx, 1, hero)
		require.NoError(t, err)

		footer := validBanner(10)
		footer.Placement = banner.PlacementFooter
		_, err = service.CreateBanner(ctx, 1, footer)
		require.NoError(t, err)

		got, total, err := service.ListBanners(ctx, 1, banner.Filter{Placements: []string{banner.PlacementFooter}}, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, banner.PlacementFooter, got[0].Placement)
	})

	t.Run("unknown_placement_filter_is_rejected", func(t *testing.T) {
		service, _, _ := newTestService()

		_, _, err := service.ListBanners(ctx, 1, banner.Filter{Placements: []string{"marquee"}}, 20, 0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestDeleteBanner(t *testing.T) {
	ctx := context.Background()

	t.Run("second_delete_is_not_found", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateBanner(ctx, 1, validBanner(10))
		require.NoError(t, err)

		require.NoError(t, service.DeleteBanner(ctx, 1, created.ID))
		err = service.DeleteBanner(ctx, 1, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

		// One create entry plus one delete entry.
		assert.Len(t, auditRepo.entries, 2)
	})
}
