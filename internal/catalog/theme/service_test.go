package theme_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/catalog/theme"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
)

// fakeRepository is an in-memory Repository backed by a map keyed by theme id.
type fakeRepository struct {
	themes map[int64]*theme.Theme
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{themes: make(map[int64]*theme.Theme), nextID: 1}
}

func (f *fakeRepository) ListThemes(_ context.Context, tenantID int64, _ theme.Filter, limit, offset int) ([]*theme.Theme, int, error) {
	var out []*theme.Theme
	for _, t := range f.themes {
		if t.TenantID == tenantID {
			out = append(out, t)
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

func (f *fakeRepository) GetTheme(_ context.Context, tenantID, id int64) (*theme.Theme, error) {
	t, ok := f.themes[id]
	if !ok || t.TenantID != tenantID {
		return nil, dberr.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeRepository) GetThemeBySlug(_ context.Context, tenantID int64, slug string) (*theme.Theme, error) {
	for _, t := range f.themes {
		if t.TenantID == tenantID && t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetDefaultTheme(_ context.Context, tenantID int64) (*theme.Theme, error) {
	for _, t := range f.themes {
		if t.TenantID == tenantID && t.IsDefault {
			clone := *t
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateTheme(_ context.Context, t *theme.Theme) error {
	t.ID = f.nextID
	f.nextID++
	clone := *t
	f.themes[t.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateTheme(_ context.Context, t *theme.Theme) error {
	stored, ok := f.themes[t.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	clone := *t
	clone.IsDefault = stored.IsDefault
	f.themes[t.ID] = &clone
	return nil
}

func (f *fakeRepository) SetDefaultTheme(_ context.Context, tenantID, id int64) error {
	t, ok := f.themes[id]
	if !ok || t.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	for _, other := range f.themes {
		if other.TenantID == tenantID {
			other.IsDefault = false
		}
	}
	t.IsDefault = true
	return nil
}

func (f *fakeRepository) DeleteTheme(_ context.Context, tenantID, id int64) error {
	t, ok := f.themes[id]
	if !ok || t.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	delete(f.themes, id)
	return nil
}

type fakeAuditRepository struct{ entries []*audit.Entry }

func (f *fakeAuditRepository) ListEntries(_ context.Context, _ int64, _ audit.Filter, _, _ int) ([]*audit.Entry, int, error) {
	return f.entries, len(f.entries), nil
}

func (f *fakeAuditRepository) CreateEntry(_ context.Context, e *audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestService() (*theme.Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return theme.NewService(repo, audit.NewRecorder(&fakeAuditRepository{}, logger), logger), repo
}

func TestCreateTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("slug_is_derived_from_name_when_empty", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Café Noir 2.0"})
		require.NoError(t, err)
		assert.Equal(t, "cafe-noir-2-0", created.Slug)
		assert.Equal(t, theme.StatusDraft, created.Status)
	})

	t.Run("explicit_slug_wins_over_name", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Slug: "noir", Name: "Café Noir"})
		require.NoError(t, err)
		assert.Equal(t, "noir", created.Slug)
	})

	t.Run("duplicate_slug_is_conflict", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal"})
		require.NoError(t, err)

		_, err = service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("unknown_status_is_rejected", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal", Status: "retired"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestUpdateTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("default_theme_cannot_be_archived", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal", Status: theme.StatusPublished})
		require.NoError(t, err)
		_, err = service.SetDefaultTheme(ctx, 1, created.ID)
		require.NoError(t, err)

		_, err = service.UpdateTheme(ctx, 1, created.ID, &theme.Theme{
			Slug: created.Slug, Name: created.Name, Status: theme.StatusArchived,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNPROCESSABLE", ae.Code)
		assert.Equal(t, 422, ae.HTTPStatus)
	})

	t.Run("non_default_theme_can_be_archived", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal", Status: theme.StatusPublished})
		require.NoError(t, err)

		updated, err := service.UpdateTheme(ctx, 1, created.ID, &theme.Theme{
			Slug: created.Slug, Name: created.Name, Status: theme.StatusArchived,
		})
		require.NoError(t, err)
		assert.Equal(t, theme.StatusArchived, updated.Status)
	})

	t.Run("renaming_to_taken_slug_is_conflict", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal"})
		require.NoError(t, err)
		other, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Bold"})
		require.NoError(t, err)

		_, err = service.UpdateTheme(ctx, 1, other.ID, &theme.Theme{
			Slug: "minimal", Name: "Bold", Status: theme.StatusDraft,
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestSetDefaultTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes_published_theme_and_demotes_previous", func(t *testing.T) {
		service, _ := newTestService()

		first, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal", Status: theme.StatusPublished})
		require.NoError(t, err)
		second, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Bold", Status: theme.StatusPublished})
		require.NoError(t, err)

		_, err = service.SetDefaultTheme(ctx, 1, first.ID)
		require.NoError(t, err)
		promoted, err := service.SetDefaultTheme(ctx, 1, second.ID)
		require.NoError(t, err)
		assert.True(t, promoted.IsDefault)

		current, err := service.GetDefaultTheme(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, second.ID, current.ID)
	})

	t.Run("draft_theme_cannot_be_default", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal"})
		require.NoError(t, err)

		_, err = service.SetDefaultTheme(ctx, 1, created.ID)
		require.Error(t, err)
		assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	})
}

func TestDeleteTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("default_theme_cannot_be_deleted", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal", Status: theme.StatusPublished})
		require.NoError(t, err)
		_, err = service.SetDefaultTheme(ctx, 1, created.ID)
		require.NoError(t, err)

		err = service.DeleteTheme(ctx, 1, created.ID)
		require.Error(t, err)
		assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	})

	t.Run("cross_tenant_delete_is_not_found", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.CreateTheme(ctx, 1, &theme.Theme{Name: "Minimal"})
		require.NoError(t, err)

		err = service.DeleteTheme(ctx, 2, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
