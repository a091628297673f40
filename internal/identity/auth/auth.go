package auth

import "time"

// Token lifetimes. Access tokens stay short so a leaked JWT ages out fast;
// the refresh token carries the long-lived session.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32
)

// Session is the server-side record behind one refresh token. It lives in
// Redis under the hash of the token and expires with it.
type Session struct {
	MemberID  int64     `json:"member_id"`
	TenantID  int64     `json:"tenant_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Global field names for validation
const (
	FieldDomain       = "domain"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRefreshToken = "refresh_token"
)
