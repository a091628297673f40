package member_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/tenants/member"
)

// fakeRepository is an in-memory Repository backed by a map keyed by member id.
type fakeRepository struct {
	members map[int64]*member.Member
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{members: make(map[int64]*member.Member), nextID: 1}
}

func (f *fakeRepository) ListMembers(_ context.Context, tenantID int64, _ member.Filter, limit, offset int) ([]*member.Member, int, error) {
	var out []*member.Member
	for _, m := range f.members {
		if m.TenantID == tenantID {
			clone := *m
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

func (f *fakeRepository) GetMember(_ context.Context, tenantID, id int64) (*member.Member, error) {
	m, ok := f.members[id]
	if !ok || m.TenantID != tenantID {
		return nil, dberr.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (f *fakeRepository) GetMemberByEmail(_ context.Context, tenantID int64, email string) (*member.Member, error) {
	for _, m := range f.members {
		if m.TenantID == tenantID && strings.EqualFold(m.Email, email) {
			clone := *m
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateMember(_ context.Context, m *member.Member) error {
	m.ID = f.nextID
	f.nextID++
	clone := *m
	f.members[m.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateMember(_ context.Context, m *member.Member) error {
	stored, ok := f.members[m.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	clone := *m
	clone.PasswordHash = stored.PasswordHash
	f.members[m.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdatePasswordHash(_ context.Context, tenantID, id int64, passwordHash string) error {
	m, ok := f.members[id]
	if !ok || m.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	m.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepository) DeleteMember(_ context.Context, tenantID, id int64) error {
	m, ok := f.members[id]
	if !ok || m.TenantID != tenantID {
		return dberr.ErrNotFound
	}
	delete(f.members, id)
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

func newTestService() (*member.Service, *fakeRepository, *fakeAuditRepository) {
	repo := newFakeRepository()
	auditRepo := &fakeAuditRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return member.NewService(repo, audit.NewRecorder(auditRepo, logger), logger), repo, auditRepo
}

func validMember(tenantID int64, email string) *member.Member {
	return &member.Member{
		TenantID:    tenantID,
		Email:       email,
		DisplayName: "Sam Vendor",
		Role:        sec.RoleStaff,
		IsActive:    true,
	}
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes_password_and_normalizes_email", func(t *testing.T) {
		service, repo, auditRepo := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "  Sam@Example.COM "), "hunter2-secret")
		require.NoError(t, err)
		assert.Equal(t, "sam@example.com", created.Email)

		stored := repo.members[created.ID]
		require.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "hunter2-secret", stored.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("hunter2-secret", stored.PasswordHash))

		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, "member", auditRepo.entries[0].EntityType)
		assert.Equal(t, audit.ActionCreate, auditRepo.entries[0].Action)
	})

	t.Run("short_password_is_validation_error", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "short")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_role_is_validation_error", func(t *testing.T) {
		service, _, _ := newTestService()

		m := validMember(1, "sam@example.com")
		m.Role = "superuser"
		_, err := service.CreateMember(ctx, m, "hunter2-secret")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_email_is_conflict", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)

		_, err = service.CreateMember(ctx, validMember(1, "SAM@example.com"), "hunter2-secret")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, 409, ae.HTTPStatus)
	})

	t.Run("same_email_other_tenant_is_allowed", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)

		_, err = service.CreateMember(ctx, validMember(2, "sam@example.com"), "hunter2-secret")
		assert.NoError(t, err)
	})
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("changes_profile_and_keeps_hash", func(t *testing.T) {
		service, repo, _ := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)
		originalHash := repo.members[created.ID].PasswordHash

		next := validMember(1, "sam@example.com")
		next.DisplayName = "Sam V."
		next.Role = sec.RoleAdmin
		updated, err := service.UpdateMember(ctx, 1, created.ID, next)
		require.NoError(t, err)
		assert.Equal(t, "Sam V.", updated.DisplayName)
		assert.Equal(t, sec.RoleAdmin, updated.Role)
		assert.Equal(t, originalHash, repo.members[created.ID].PasswordHash)
	})

	t.Run("email_collision_is_conflict", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.CreateMember(ctx, validMember(1, "first@example.com"), "hunter2-secret")
		require.NoError(t, err)

		second, err := service.CreateMember(ctx, validMember(1, "second@example.com"), "hunter2-secret")
		require.NoError(t, err)

		_, err = service.UpdateMember(ctx, 1, second.ID, validMember(1, "first@example.com"))
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("missing_member_is_not_found", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.UpdateMember(ctx, 1, 999, validMember(1, "ghost@example.com"))
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("rehashes_and_audits_without_changes_payload", func(t *testing.T) {
		service, repo, auditRepo := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)
		oldHash := repo.members[created.ID].PasswordHash

		require.NoError(t, service.ChangePassword(ctx, 1, created.ID, "a-new-password"))

		newHash := repo.members[created.ID].PasswordHash
		assert.NotEqual(t, oldHash, newHash)
		assert.True(t, sec.CheckPasswordHash("a-new-password", newHash))

		last := auditRepo.entries[len(auditRepo.entries)-1]
		assert.Equal(t, audit.ActionUpdate, last.Action)
		assert.Empty(t, last.Changes)
	})

	t.Run("short_password_is_rejected", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)

		err = service.ChangePassword(ctx, 1, created.ID, "tiny")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("other_tenant_is_not_found", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)

		err = service.ChangePassword(ctx, 2, created.ID, "a-new-password")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("delete_then_get_is_not_found", func(t *testing.T) {
		service, _, auditRepo := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)

		require.NoError(t, service.DeleteMember(ctx, 1, created.ID))

		_, err = service.GetMember(ctx, 1, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

		last := auditRepo.entries[len(auditRepo.entries)-1]
		assert.Equal(t, audit.ActionDelete, last.Action)
	})

	t.Run("other_tenant_cannot_delete", func(t *testing.T) {
		service, _, _ := newTestService()

		created, err := service.CreateMember(ctx, validMember(1, "sam@example.com"), "hunter2-secret")
		require.NoError(t, err)

		err = service.DeleteMember(ctx, 2, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
