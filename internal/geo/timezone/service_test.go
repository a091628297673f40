package timezone_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/geo/timezone"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
)

type fakeRepository struct {
	timezones map[int64]*timezone.Timezone
	nextID    int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{timezones: make(map[int64]*timezone.Timezone), nextID: 1}
}

func (f *fakeRepository) ListTimezones(_ context.Context, _ timezone.Filter, limit, offset int) ([]*timezone.Timezone, int, error) {
	var out []*timezone.Timezone
	for _, tz := range f.timezones {
		out = append(out, tz)
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

func (f *fakeRepository) GetTimezone(_ context.Context, id int64) (*timezone.Timezone, error) {
	tz, ok := f.timezones[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *tz
	return &clone, nil
}

func (f *fakeRepository) GetTimezoneByName(_ context.Context, name string) (*timezone.Timezone, error) {
	for _, tz := range f.timezones {
		if tz.Name == name {
			clone := *tz
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateTimezone(_ context.Context, tz *timezone.Timezone) error {
	tz.ID = f.nextID
	f.nextID++
	clone := *tz
	f.timezones[tz.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateTimezone(_ context.Context, tz *timezone.Timezone) error {
	if _, ok := f.timezones[tz.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *tz
	f.timezones[tz.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteTimezone(_ context.Context, id int64) error {
	if _, ok := f.timezones[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.timezones, id)
	return nil
}

func (f *fakeRepository) DeleteTimezoneByName(_ context.Context, name string) error {
	for id, tz := range f.timezones {
		if tz.Name == name {
			delete(f.timezones, id)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func newTestService() *timezone.Service {
	return timezone.NewService(newFakeRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateTimezone(t *testing.T) {
	ctx := context.Background()

	t.Run("round_trip", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateTimezone(ctx, &timezone.Timezone{Name: "Asia/Tokyo", UTCOffset: 540})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := service.GetTimezoneByName(ctx, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, 540, got.UTCOffset)
	})

	t.Run("duplicate_name_is_conflict_not_500", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateTimezone(ctx, &timezone.Timezone{Name: "Asia/Tokyo", UTCOffset: 540})
		require.NoError(t, err)

		_, err = service.CreateTimezone(ctx, &timezone.Timezone{Name: "Asia/Tokyo", UTCOffset: 540})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, 409, ae.HTTPStatus)
	})

	t.Run("offset_out_of_range", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateTimezone(ctx, &timezone.Timezone{Name: "Nowhere/Invalid", UTCOffset: 2000})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestDeleteTimezone(t *testing.T) {
	ctx := context.Background()

	t.Run("by_id_then_missing", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateTimezone(ctx, &timezone.Timezone{Name: "Europe/Berlin", UTCOffset: 60})
		require.NoError(t, err)

		require.NoError(t, service.DeleteTimezone(ctx, created.ID))
		assert.Equal(t, "NOT_FOUND", apperr.As(service.DeleteTimezone(ctx, created.ID)).Code)
	})

	t.Run("by_name", func(t *testing.T) {
		service := newTestService()

		_, err := service.CreateTimezone(ctx, &timezone.Timezone{Name: "Europe/Berlin", UTCOffset: 60})
		require.NoError(t, err)

		require.NoError(t, service.DeleteTimezoneByName(ctx, "Europe/Berlin"))

		_, err = service.GetTimezoneByName(ctx, "Europe/Berlin")
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
