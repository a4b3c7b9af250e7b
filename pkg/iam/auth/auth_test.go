package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/fiberx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "relay", time.Hour)

	token, err := svc.GenerateAccessToken("user-1", "ada@example.com", RoleCompany)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID.String())
	assert.Equal(t, RoleCompany, claims.Role)
	assert.Contains(t, claims.Scopes, ScopeMatchesCandidates)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestJWTRejectsBadTokens(t *testing.T) {
	svc := NewJWTService("secret", "relay", time.Hour)
	token, err := svc.GenerateAccessToken("user-1", "ada@example.com", RoleCandidate)
	require.NoError(t, err)

	_, err = NewJWTService("other-secret", "relay", time.Hour).ValidateAccessToken(token)
	assert.True(t, errx.Is(err, CodeInvalidToken))

	_, err = NewJWTService("secret", "someone-else", time.Hour).ValidateAccessToken(token)
	assert.True(t, errx.Is(err, CodeInvalidToken))

	expired := NewJWTService("secret", "relay", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.ValidateAccessToken(token)
	assert.True(t, errx.Is(err, CodeInvalidToken))

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	svc := NewJWTService("secret", "relay", time.Hour, WithRefreshTokenTTL(48*time.Hour))

	refresh, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID.String())

	_, err = svc.ValidateAccessToken(refresh)
	assert.True(t, errx.Is(err, CodeInvalidToken), "refresh token must not authenticate requests")

	access, err := svc.GenerateAccessToken("user-1", "ada@example.com", RoleCandidate)
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.True(t, errx.Is(err, CodeInvalidToken), "access token must not be exchangeable")

	// outlives the access token but not its own ttl
	later := NewJWTService("secret", "relay", time.Hour, WithRefreshTokenTTL(48*time.Hour))
	later.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	_, err = later.ValidateRefreshToken(refresh)
	assert.NoError(t, err)

	later.now = func() time.Time { return time.Now().Add(72 * time.Hour) }
	_, err = later.ValidateRefreshToken(refresh)
	assert.True(t, errx.Is(err, CodeInvalidToken))
}

func TestBcryptPasswordService(t *testing.T) {
	svc := NewBcryptPasswordService(4)

	hash, err := svc.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, svc.Compare(hash, "correct horse"))
	assert.False(t, svc.Compare(hash, "battery staple"))

	_, err = svc.Hash("")
	assert.Error(t, err)
}

func TestScopeGranted(t *testing.T) {
	assert.True(t, ScopeGranted([]string{ScopeJobsAll}, ScopeJobsWrite))
	assert.True(t, ScopeGranted([]string{ScopeAll}, ScopeProfileWrite))
	assert.True(t, ScopeGranted(ScopesForRole(RoleCandidate), ScopeMatchesJobs))
	assert.False(t, ScopeGranted(ScopesForRole(RoleCandidate), ScopeJobsWrite))
	assert.False(t, ScopeGranted(ScopesForRole(RoleCompany), ScopeProfileWrite))
	assert.False(t, ScopeGranted(nil, ScopeJobsRead))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Company ")
	assert.True(t, ok)
	assert.Equal(t, RoleCompany, r)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}

func TestMiddleware(t *testing.T) {
	tokens := NewJWTService("secret", "relay", time.Hour)
	mw := NewUnifiedAuthMiddleware(tokens)

	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler})
	app.Get("/jobs/new", mw.Authenticate(), mw.RequireScope(ScopeJobsWrite), func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		require.True(t, ok)
		return c.SendString(authContext.UserID.String())
	})
	app.Get("/me", mw.Authenticate(), mw.RequireRole(RoleCandidate), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	company, err := tokens.GenerateAccessToken("company-1", "hr@acme.io", RoleCompany)
	require.NoError(t, err)
	candidate, err := tokens.GenerateAccessToken("user-1", "ada@example.com", RoleCandidate)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/jobs/new", "", http.StatusUnauthorized},
		{"wrong scheme", "/jobs/new", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/jobs/new", "Bearer abc", http.StatusUnauthorized},
		{"company can post", "/jobs/new", "Bearer " + company, http.StatusOK},
		{"candidate cannot post", "/jobs/new", "Bearer " + candidate, http.StatusForbidden},
		{"candidate role ok", "/me", "Bearer " + candidate, http.StatusNoContent},
		{"company wrong role", "/me", "Bearer " + company, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
