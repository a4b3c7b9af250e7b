package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenService issues and validates access and refresh tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	AccessTokenTTL() time.Duration

	// GenerateRefreshToken issues a long-lived token that can only be
	// exchanged for a new access token
	GenerateRefreshToken(userID kernel.UserID) (string, error)
	ValidateRefreshToken(token string) (kernel.UserID, error)
}

// TokenClaims are the claims carried by an access token
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	Role      Role
	Scopes    []string
	ExpiresAt time.Time
}

type jwtClaims struct {
	Type   string   `json:"typ"`
	Email  string   `json:"email,omitempty"`
	Role   string   `json:"role,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens with a shared secret
type JWTService struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// JWTOption configures a JWTService
type JWTOption func(*JWTService)

// WithRefreshTokenTTL sets the refresh token lifetime
func WithRefreshTokenTTL(ttl time.Duration) JWTOption {
	return func(s *JWTService) {
		if ttl > 0 {
			s.refreshTTL = ttl
		}
	}
}

func NewJWTService(secret, issuer string, ttl time.Duration, opts ...JWTOption) *JWTService {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	s := &JWTService{
		secret:     []byte(secret),
		issuer:     issuer,
		ttl:        ttl,
		refreshTTL: DefaultRefreshTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JWTService) AccessTokenTTL() time.Duration { return s.ttl }

// GenerateAccessToken issues a token whose scopes derive from the role
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role) (string, error) {
	now := s.now()
	claims := jwtClaims{
		Type:   tokenTypeAccess,
		Email:  email.String(),
		Role:   string(role),
		Scopes: ScopesForRole(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return s.sign(claims)
}

// GenerateRefreshToken issues a refresh token carrying only the subject
func (s *JWTService) GenerateRefreshToken(userID kernel.UserID) (string, error) {
	now := s.now()
	return s.sign(jwtClaims{
		Type: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})
}

// ValidateAccessToken checks signature, issuer, expiry and token type
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	claims, err := s.parse(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	role := Role(claims.Role)
	if !role.IsValid() {
		return nil, ErrInvalidToken().WithDetail("role", claims.Role)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Email:     kernel.Email(claims.Email),
		Role:      role,
		Scopes:    claims.Scopes,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateRefreshToken returns the subject of a valid refresh token.
// Access tokens are rejected.
func (s *JWTService) ValidateRefreshToken(tokenString string) (kernel.UserID, error) {
	claims, err := s.parse(tokenString, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return kernel.UserID(claims.Subject), nil
}

func (s *JWTService) sign(claims jwtClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) parse(tokenString, tokenType string) (*jwtClaims, error) {
	var claims jwtClaims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken().WithCause(errors.New("token has no subject"))
	}
	if claims.Type != tokenType {
		return nil, ErrInvalidToken().WithDetail("token_type", claims.Type)
	}
	return &claims, nil
}
