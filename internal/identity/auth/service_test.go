package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/internal/identity/auth"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/tenants/member"
	"github.com/vendora/vendora/internal/tenants/tenant"
)

// fakeSessions is an in-memory SessionRepository keyed by token hash.
type fakeSessions struct {
	sessions map[string]*auth.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*auth.Session)}
}

func (f *fakeSessions) Set(_ context.Context, tokenHash string, session *auth.Session, _ time.Duration) error {
	clone := *session
	f.sessions[tokenHash] = &clone
	return nil
}

func (f *fakeSessions) Get(_ context.Context, tokenHash string) (*auth.Session, error) {
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSessions) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

// fakeMembers serves a fixed set of members by id and email.
type fakeMembers struct {
	members []*member.Member
}

func (f *fakeMembers) GetMember(_ context.Context, tenantID, id int64) (*member.Member, error) {
	for _, m := range f.members {
		if m.TenantID == tenantID && m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeMembers) GetMemberByEmail(_ context.Context, tenantID int64, email string) (*member.Member, error) {
	for _, m := range f.members {
		if m.TenantID == tenantID && strings.EqualFold(m.Email, email) {
			clone := *m
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

// fakeTenants serves a fixed set of tenants by id and domain.
type fakeTenants struct {
	tenants []*tenant.Tenant
}

func (f *fakeTenants) GetTenant(_ context.Context, id int64) (*tenant.Tenant, error) {
	for _, t := range f.tenants {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeTenants) GetTenantByDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	for _, t := range f.tenants {
		if t.Domain == domain {
			clone := *t
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

// fakeTokens issues predictable access tokens.
type fakeTokens struct {
	issued int
}

func (f *fakeTokens) GenerateAccessToken(userID string, _ int64, _ string, _ string, _ time.Duration) (string, error) {
	f.issued++
	return "token-" + userID, nil
}

type fixture struct {
	service  *auth.Service
	sessions *fakeSessions
	tokens   *fakeTokens
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := sec.HashPassword("hunter2-secret")
	require.NoError(t, err)

	members := &fakeMembers{members: []*member.Member{
		{ID: 7, TenantID: 1, Email: "sam@example.com", PasswordHash: hash, Role: sec.RoleAdmin, IsActive: true},
		{ID: 8, TenantID: 1, Email: "idle@example.com", PasswordHash: hash, Role: sec.RoleStaff, IsActive: false},
		{ID: 9, TenantID: 2, Email: "sam@example.com", PasswordHash: hash, Role: sec.RoleOwner, IsActive: true},
	}}
	tenants := &fakeTenants{tenants: []*tenant.Tenant{
		{ID: 1, Domain: "shop.example.com", Status: tenant.StatusActive},
		{ID: 2, Domain: "closed.example.com", Status: tenant.StatusSuspended},
	}}

	sessions := newFakeSessions()
	tokens := &fakeTokens{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service:  auth.NewService(members, tenants, sessions, tokens, logger),
		sessions: sessions,
		tokens:   tokens,
	}
}

func login(domain, email, password string) auth.LoginInput {
	return auth.LoginInput{Domain: domain, Email: email, Password: password,
		UserAgent: "test-agent", IPAddress: "203.0.113.9"}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_credentials_open_a_session", func(t *testing.T) {
		f := newFixture(t)

		session, err := f.service.Login(ctx, login("shop.example.com", "sam@example.com", "hunter2-secret"))
		require.NoError(t, err)
		assert.Equal(t, "token-7", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))
		require.NotNil(t, session.Member)
		assert.Equal(t, int64(7), session.Member.ID)

		stored, err := f.sessions.Get(ctx, sec.HashToken(session.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, int64(7), stored.MemberID)
		assert.Equal(t, int64(1), stored.TenantID)
		assert.Equal(t, "test-agent", stored.UserAgent)
	})

	t.Run("domain_is_matched_case_insensitively", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Login(ctx, login("SHOP.Example.COM", "sam@example.com", "hunter2-secret"))
		assert.NoError(t, err)
	})

	t.Run("wrong_password_and_unknown_email_look_identical", func(t *testing.T) {
		f := newFixture(t)

		_, errPassword := f.service.Login(ctx, login("shop.example.com", "sam@example.com", "wrong"))
		_, errEmail := f.service.Login(ctx, login("shop.example.com", "nobody@example.com", "hunter2-secret"))
		_, errDomain := f.service.Login(ctx, login("unknown.example.com", "sam@example.com", "hunter2-secret"))

		for _, err := range []error{errPassword, errEmail, errDomain} {
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNAUTHORIZED", ae.Code)
			assert.Equal(t, "Invalid login credentials", ae.Message)
		}
	})

	t.Run("suspended_tenant_is_forbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Login(ctx, login("closed.example.com", "sam@example.com", "hunter2-secret"))
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("deactivated_account_is_forbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Login(ctx, login("shop.example.com", "idle@example.com", "hunter2-secret"))
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

func TestRefreshSession(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation_invalidates_the_presented_token", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.service.Login(ctx, login("shop.example.com", "sam@example.com", "hunter2-secret"))
		require.NoError(t, err)

		second, err := f.service.RefreshSession(ctx, first.RefreshToken, "test-agent", "203.0.113.9")
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// Replaying the rotated-out token must fail.
		_, err = f.service.RefreshSession(ctx, first.RefreshToken, "test-agent", "203.0.113.9")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

		// The replacement still works.
		_, err = f.service.RefreshSession(ctx, second.RefreshToken, "test-agent", "203.0.113.9")
		assert.NoError(t, err)
	})

	t.Run("garbage_token_is_unauthorized", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.RefreshSession(ctx, "not-a-real-token", "test-agent", "203.0.113.9")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes_the_session", func(t *testing.T) {
		f := newFixture(t)

		session, err := f.service.Login(ctx, login("shop.example.com", "sam@example.com", "hunter2-secret"))
		require.NoError(t, err)

		require.NoError(t, f.service.Logout(ctx, session.RefreshToken))

		_, err = f.service.RefreshSession(ctx, session.RefreshToken, "test-agent", "203.0.113.9")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unknown_token_is_a_no_op", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.service.Logout(ctx, "never-issued"))
	})
}
