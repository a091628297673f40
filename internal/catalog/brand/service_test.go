package brand_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/catalog/brand"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
)

// fakeRepository is an in-memory Repository backed by a map keyed by brand id.
type fakeRepository struct {
	brands map[int64]*brand.Brand
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{brands: make(map[int64]*brand.Brand), nextID: 1}
}

func (f *fakeRepository) ListBrands(_ context.Context, tenantID int64, _ string, _ brand.Filter, limit, offset int) ([]*brand.Brand, int, error) {
	var out []*brand.Brand
	for _, b := range f.brands {
		if b.TenantID == tenantID {
			out = append(out, b)
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

func (f *fakeRepository) GetBrand(_ context.Context, tenantID, id int64, lang string) (*brand.Brand, error) {
	b, ok := f.brands[id]
	if !ok || b.TenantID != tenantID {
		return nil, dberr.ErrNotFound
	}
	clone := *b
	if t, ok := b.Translations[lang]; ok {
		clone.Name = t.Name
		clone.Description = t.Description
		clone.MetaTitle = t.MetaTitle
		clone.MetaDescription = t.MetaDescription
	}
	return &clone, nil
}

func (f *fakeRepository) GetBrandBySlug(_ context.Context, tenantID int64, slug, _ string) (*brand.Brand, error) {
	for _, b := range f.brands {
		if b.TenantID == tenantID && b.Slug == slug {
			clone := *b
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateBrand(_ context.Context, b *brand.Brand) error {
	b.ID = f.nextID
	f.nextID++
	clone := *b
	f.brands[b.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateBrand(_ context.Context, b *brand.Brand) error {
	if _, ok := f.brands[b.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *b
	f.brands[b.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteBrand(_ context.Context, tenantID, id int64) error {
	b, ok := f.brands[id]
	if !ok || b.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	delete(f.brands, id)
	return nil
}

func (f *fakeRepository) DeleteBrandBySlug(_ context.Context, tenantID int64, slug string) error {
	for id, b := range f.brands {
		if b.TenantID == tenantID && b.Slug == slug {
			delete(f.brands, id)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) GetTranslations(_ context.Context, brandID int64) (map[string]brand.Translation, error) {
	b, ok := f.brands[brandID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return b.Translations, nil
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

func newTestService() (*brand.Service, *fakeRepository, *fakeAuditRepository) {
	repo := newFakeRepository()
	auditRepo := &fakeAuditRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return brand.NewService(repo, audit.NewRecorder(auditRepo, logger), logger), repo, auditRepo
}

func TestCreateBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("persists_and_returns_stored_shape", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug: "nike",
			Translations: map[string]brand.Translation{
				"en": {Name: "Nike"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.TenantID)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "nike", created.Slug)

		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, audit.ActionCreate, auditRepo.entries[0].Action)
		assert.Equal(t, "brand", auditRepo.entries[0].EntityType)
	})

	t.Run("optional_urls_may_be_absent", func(t *testing.T) {
		service, repo, _ := newTestService()

		created, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "nike",
			Translations: map[string]brand.Translation{"en": {Name: "Nike"}},
		})
		require.NoError(t, err)
		assert.Nil(t, created.LogoURL)
		assert.Nil(t, created.BannerURL)
		assert.Nil(t, created.WebsiteURL)

		// The nil pointers reach the store as-is; the columns admit NULL.
		stored := repo.brands[created.ID]
		assert.Nil(t, stored.LogoURL)
	})

	t.Run("read_after_write_language_is_stable_without_english", func(t *testing.T) {
		service, _, _ := newTestService()

		// No "en" translation: the response flattens the smallest
		// language code, never a map-iteration-order pick.
		for i := 0; i < 20; i++ {
			created, err := service.CreateBrand(ctx, 1, &brand.Brand{
				Slug: fmt.Sprintf("puma-%d", i),
				Translations: map[string]brand.Translation{
					"fr": {Name: "Puma (fr)"},
					"de": {Name: "Puma (de)"},
					"it": {Name: "Puma (it)"},
				},
			})
			require.NoError(t, err)
			assert.Equal(t, "Puma (de)", created.Name)
		}
	})

	t.Run("duplicate_slug_is_conflict", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "nike",
			Translations: map[string]brand.Translation{"en": {Name: "Nike"}},
		})
		require.NoError(t, err)

		_, err = service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "nike",
			Translations: map[string]brand.Translation{"en": {Name: "Nike Again"}},
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, 409, ae.HTTPStatus)
	})

	t.Run("same_slug_other_tenant_is_allowed", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "nike",
			Translations: map[string]brand.Translation{"en": {Name: "Nike"}},
		})
		require.NoError(t, err)

		_, err = service.CreateBrand(ctx, 2, &brand.Brand{
			Slug:         "nike",
			Translations: map[string]brand.Translation{"en": {Name: "Nike"}},
		})
		assert.NoError(t, err)
	})

	t.Run("invalid_payload_is_validation_error", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug: "Not A Slug!",
			Translations: map[string]brand.Translation{
				"en": {Name: ""},
			},
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Equal(t, 422, ae.HTTPStatus)

		fields := make([]string, 0, len(ae.Details))
		for _, d := range ae.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "slug")
		assert.Contains(t, fields, "translations.en.name")
	})
}

func TestGetBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("round_trips_created_brand", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "adidas",
			Translations: map[string]brand.Translation{"en": {Name: "Adidas"}},
		})
		require.NoError(t, err)

		got, err := service.GetBrand(ctx, 1, created.ID, "en")
		require.NoError(t, err)
		assert.Equal(t, created.Slug, got.Slug)
	})

	t.Run("other_tenant_cannot_see_it", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "adidas",
			Translations: map[string]brand.Translation{"en": {Name: "Adidas"}},
		})
		require.NoError(t, err)

		_, err = service.GetBrand(ctx, 2, created.ID, "en")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

func TestUpdateBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("moves_slug_when_free", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "puma",
			Translations: map[string]brand.Translation{"en": {Name: "Puma"}},
		})
		require.NoError(t, err)

		updated, err := service.UpdateBrand(ctx, 1, created.ID, &brand.Brand{
			Slug:         "puma-sport",
			Translations: map[string]brand.Translation{"en": {Name: "Puma Sport"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "puma-sport", updated.Slug)
	})

	t.Run("slug_collision_is_conflict", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "puma",
			Translations: map[string]brand.Translation{"en": {Name: "Puma"}},
		})
		require.NoError(t, err)

		second, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "reebok",
			Translations: map[string]brand.Translation{"en": {Name: "Reebok"}},
		})
		require.NoError(t, err)

		_, err = service.UpdateBrand(ctx, 1, second.ID, &brand.Brand{
			Slug:         "puma",
			Translations: map[string]brand.Translation{"en": {Name: "Reebok"}},
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("missing_brand_is_not_found", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.UpdateBrand(ctx, 1, 999, &brand.Brand{
			Slug:         "ghost",
			Translations: map[string]brand.Translation{"en": {Name: "Ghost"}},
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestDeleteBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("delete_then_get_is_not_found", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "vans",
			Translations: map[string]brand.Translation{"en": {Name: "Vans"}},
		})
		require.NoError(t, err)

		require.NoError(t, service.DeleteBrand(ctx, 1, created.ID))

		_, err = service.GetBrand(ctx, 1, created.ID, "en")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

		last := auditRepo.entries[len(auditRepo.entries)-1]
		assert.Equal(t, audit.ActionDelete, last.Action)
	})

	t.Run("missing_brand_is_not_found", func(t *testing.T) {
		service, _, _ := newTestService()

		err := service.DeleteBrand(ctx, 1, 42)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("delete_by_slug", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateBrand(ctx, 1, &brand.Brand{
			Slug:         "vans",
			Translations: map[string]brand.Translation{"en": {Name: "Vans"}},
		})
		require.NoError(t, err)

		require.NoError(t, service.DeleteBrandBySlug(ctx, 1, "vans"))
		assert.Equal(t, "NOT_FOUND", apperr.As(service.DeleteBrandBySlug(ctx, 1, "vans")).Code)
	})
}
