package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/tenants/member"
	"github.com/vendora/vendora/internal/tenants/tenant"
)

type Service struct {
	members  MemberDirectory
	tenants  TenantDirectory
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(
	members MemberDirectory,
	tenants TenantDirectory,
	sessions SessionRepository,
	tokens TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		members:  members,
		tenants:  tenants,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// LoginInput holds the credentials of an authentication attempt. The domain
// names the tenant whose admin panel the member is signing in to.
type LoginInput struct {
	Domain    string
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is the transport-ready result of a successful login or refresh.
type LoginSession struct {
	AccessToken           string         `json:"access_token"`
	RefreshToken          string         `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time      `json:"refresh_token_expires_at"`
	Member                *member.Member `json:"member"`
}

// Login verifies credentials and opens a fresh session. Every rejection path
// returns the same Unauthorized message so the endpoint leaks nothing about
// which part of the credentials was wrong.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	t, err := service.tenants.GetTenantByDomain(context, strings.ToLower(input.Domain))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if t.Status != tenant.StatusActive {
		return nil, apperr.Forbidden("Tenant is not active")
	}

	m, err := service.members.GetMemberByEmail(context, t.ID, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(input.Password, m.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !m.IsActive {
		return nil, apperr.Forbidden("Account is deactivated")
	}

	session, err := service.openSession(context, m, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("member_logged_in",
		slog.Int64("tenant_id", m.TenantID), slog.Int64("member_id", m.ID))
	return session, nil
}

// RefreshSession rotates a refresh token: the presented token is invalidated
// before a new pair is issued, so a replayed token fails.
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)
	stored, err := service.sessions.Get(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_refresh_rotate_failed: %w", err)
	}

	t, err := service.tenants.GetTenant(context, stored.TenantID)
	if err != nil || t.Status != tenant.StatusActive {
		return nil, apperr.Unauthorized("Tenant is not active")
	}

	m, err := service.members.GetMember(context, stored.TenantID, stored.MemberID)
	if err != nil || !m.IsActive {
		return nil, apperr.Unauthorized("Account not found or deactivated")
	}

	session, err := service.openSession(context, m, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_refreshed",
		slog.Int64("tenant_id", m.TenantID), slog.Int64("member_id", m.ID))
	return session, nil
}

// Logout revokes the session behind the refresh token. An unknown token is
// treated as already logged out.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)
	if _, err := service.sessions.Get(context, tokenHash); err != nil {
		return nil
	}

	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_logout_failed: %w", err)
	}
	return nil
}

func (service *Service) openSession(context context.Context, m *member.Member, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		strconv.FormatInt(m.ID, 10), m.TenantID, m.Email, string(m.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_access_token_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_refresh_token_failed: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(RefreshTokenTTL)
	session := &Session{
		MemberID:  m.ID,
		TenantID:  m.TenantID,
		Email:     m.Email,
		Role:      string(m.Role),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Set(context, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_session_store_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		Member:                m,
	}, nil
}
