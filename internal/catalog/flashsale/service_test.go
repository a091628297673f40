package flashsale_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/catalog/flashsale"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
)

// fakeRepository is an in-memory Repository backed by a map keyed by sale id.
type fakeRepository struct {
	sales  map[int64]*flashsale.FlashSale
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{sales: make(map[int64]*flashsale.FlashSale), nextID: 1}
}

func (f *fakeRepository) ListFlashSales(_ context.Context, tenantID int64, _ flashsale.Filter, limit, offset int) ([]*flashsale.FlashSale, int, error) {
	var out []*flashsale.FlashSale
	for _, s := range f.sales {
		if s.TenantID == tenantID {
			clone := *s
			out = append(out, &clone)
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

func (f *fakeRepository) GetFlashSale(_ context.Context, tenantID, id int64) (*flashsale.FlashSale, error) {
	s, ok := f.sales[id]
	if !ok || s.TenantID != tenantID {
		return nil, dberr.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeRepository) GetFlashSaleBySlug(_ context.Context, tenantID int64, slug string) (*flashsale.FlashSale, error) {
	for _, s := range f.sales {
		if s.TenantID == tenantID && s.Slug == slug {
			clone := *s
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateFlashSale(_ context.Context, s *flashsale.FlashSale) error {
	s.ID = f.nextID
	f.nextID++
	clone := *s
	f.sales[s.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateFlashSale(_ context.Context, s *flashsale.FlashSale) error {
	if _, ok := f.sales[s.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *s
	f.sales[s.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteFlashSale(_ context.Context, tenantID, id int64) error {
	s, ok := f.sales[id]
	if !ok || s.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	delete(f.sales, id)
	return nil
}

// fakeAuditRepository records entries for assertions.
type fakeAuditRepository struct {
	entries []*audit.Entry
}

func (f *fakeAuditRepository) ListEntries(_ context.Context, _ int64, _ audit.Filter, _, _ int) ([]*audit.Entry, int, error) {
	return f.entries, len(f.entries), nil
}

func (f *fakeAuditRepository) CreateEntry(_ context.Context, e *audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestService() (*flashsale.Service, *fakeRepository, *fakeAuditRepository) {
	repo := newFakeRepository()
	auditRepo := &fakeAuditRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return flashsale.NewService(repo, audit.NewRecorder(auditRepo, logger), logger), repo, auditRepo
}

// validSale returns a payload that passes validation, with the sale window
// offset from now so the derived phase is deterministic.
func validSale(slug string, startsIn, endsIn time.Duration) *flashsale.FlashSale {
	now := time.Now().UTC()
	return &flashsale.FlashSale{
		Slug:          slug,
		Title:         "Summer clearance",
		ProductID:     42,
		OriginalPrice: 100,
		SalePrice:     60,
		Quantity:      25,
		StartsAt:      now.Add(startsIn),
		EndsAt:        now.Add(endsIn),
		IsActive:      true,
	}
}

/*
TestComputePhase pins the phase boundaries: a sale is upcoming strictly
before its window, running from starts_at inclusive, and ended from
ends_at inclusive.
*/
func TestComputePhase(t *testing.T) {
	starts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ends := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"before_window", starts.Add(-time.Second), flashsale.PhaseUpcoming},
		{"at_start", starts, flashsale.PhaseRunning},
		{"inside_window", starts.Add(time.Hour), flashsale.PhaseRunning},
		{"at_end", ends, flashsale.PhaseEnded},
		{"after_window", ends.Add(time.Hour), flashsale.PhaseEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &flashsale.FlashSale{StartsAt: starts, EndsAt: ends}
			s.ComputePhase(tt.at)
			assert.Equal(t, tt.want, s.Phase)
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		sale     float64
		want     int
	}{
		{"forty_percent_off", 100, 60, 40},
		{"rounds_down", 100, 66.5, 33},
		{"free", 100, 0, 100},
		{"zero_original_is_zero", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &flashsale.FlashSale{OriginalPrice: tt.original, SalePrice: tt.sale}
			assert.Equal(t, tt.want, s.DiscountPercent())
		})
	}
}

func TestCreateFlashSale(t *testing.T) {
	ctx := context.Background()

	t.Run("persists_and_stamps_phase", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("summer", time.Hour, 48*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.TenantID)
		assert.NotZero(t, created.ID)
		assert.Equal(t, flashsale.PhaseUpcoming, created.Phase)
		assert.Equal(t, 40, created.DiscountPercent())

		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, audit.ActionCreate, auditRepo.entries[0].Action)
		assert.Equal(t, "flash_sale", auditRepo.entries[0].EntityType)
	})

	t.Run("running_window_is_stamped_running", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("live-now", -time.Hour, time.Hour))
		require.NoError(t, err)
		assert.Equal(t, flashsale.PhaseRunning, created.Phase)
	})

	t.Run("past_window_is_stamped_ended", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("over", -48*time.Hour, -time.Hour))
		require.NoError(t, err)
		assert.Equal(t, flashsale.PhaseEnded, created.Phase)
	})

	t.Run("sale_price_must_undercut_original", func(t *testing.T) {
		service, _, _ := newTestService()

		s := validSale("bad-price", time.Hour, 48*time.Hour)
		s.SalePrice = s.OriginalPrice
		_, err := service.CreateFlashSale(ctx, 1, s)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "sale_price")
	})

	t.Run("window_must_end_after_it_starts", func(t *testing.T) {
		service, _, _ := newTestService()

		s := validSale("bad-window", 48*time.Hour, time.Hour)
		_, err := service.CreateFlashSale(ctx, 1, s)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("missing_product_is_validation_error", func(t *testing.T) {
		service, _, _ := newTestService()

		s := validSale("no-product", time.Hour, 48*time.Hour)
		s.ProductID = 0
		_, err := service.CreateFlashSale(ctx, 1, s)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_slug_is_conflict", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateFlashSale(ctx, 1, validSale("summer", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		_, err = service.CreateFlashSale(ctx, 1, validSale("summer", time.Hour, 48*time.Hour))
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, 409, ae.HTTPStatus)
	})

	t.Run("same_slug_other_tenant_is_allowed", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateFlashSale(ctx, 1, validSale("summer", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		_, err = service.CreateFlashSale(ctx, 2, validSale("summer", time.Hour, 48*time.Hour))
		assert.NoError(t, err)
	})
}

func TestGetFlashSale(t *testing.T) {
	ctx := context.Background()

	t.Run("round_trips_by_id_and_slug", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("drop", -time.Hour, time.Hour))
		require.NoError(t, err)

		byID, err := service.GetFlashSale(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, flashsale.PhaseRunning, byID.Phase)

		bySlug, err := service.GetFlashSaleBySlug(ctx, 1, "drop")
		require.NoError(t, err)
		assert.Equal(t, created.ID, bySlug.ID)
	})

	t.Run("other_tenant_cannot_see_it", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("drop", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		_, err = service.GetFlashSale(ctx, 2, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestUpdateFlashSale(t *testing.T) {
	ctx := context.Background()

	t.Run("moves_slug_when_free", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("drop", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		updated, err := service.UpdateFlashSale(ctx, 1, created.ID, validSale("drop-v2", time.Hour, 48*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "drop-v2", updated.Slug)
	})

	t.Run("slug_collision_is_conflict", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateFlashSale(ctx, 1, validSale("first", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		second, err := service.CreateFlashSale(ctx, 1, validSale("second", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		_, err = service.UpdateFlashSale(ctx, 1, second.ID, validSale("first", time.Hour, 48*time.Hour))
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("missing_sale_is_not_found", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.UpdateFlashSale(ctx, 1, 999, validSale("ghost", time.Hour, 48*time.Hour))
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestDeleteFlashSale(t *testing.T) {
	ctx := context.Background()

	t.Run("delete_then_get_is_not_found", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("drop", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		require.NoError(t, service.DeleteFlashSale(ctx, 1, created.ID))

		_, err = service.GetFlashSale(ctx, 1, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

		last := auditRepo.entries[len(auditRepo.entries)-1]
		assert.Equal(t, audit.ActionDelete, last.Action)
	})

	t.Run("other_tenant_cannot_delete", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateFlashSale(ctx, 1, validSale("drop", time.Hour, 48*time.Hour))
		require.NoError(t, err)

		err = service.DeleteFlashSale(ctx, 2, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestListFlashSales(t *testing.T) {
	ctx := context.Background()

	service, _, _ := newTestService()
	_, err := service.CreateFlashSale(ctx, 1, validSale("one", -time.Hour, time.Hour))
	require.NoError(t, err)
	_, err = service.CreateFlashSale(ctx, 1, validSale("two", time.Hour, 48*time.Hour))
	require.NoError(t, err)
	_, err = service.CreateFlashSale(ctx, 2, validSale("elsewhere", -time.Hour, time.Hour))
	require.NoError(t, err)

	sales, total, err := service.ListFlashSales(ctx, 1, flashsale.Filter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, s := range sales {
		assert.Equal(t, int64(1), s.TenantID)
		assert.NotEmpty(t, s.Phase)
	}
}
