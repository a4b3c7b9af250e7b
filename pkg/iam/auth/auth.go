package auth

import (
	"net/http"
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// Role is the kind of account behind a token
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

func (r Role) IsValid() bool {
	return r == RoleCandidate || r == RoleCompany
}

// ParseRole accepts any casing; the original clients sent "Candidate"/"Company"
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.IsValid()
}

// AuthContext is what the middleware stores for the request
type AuthContext struct {
	UserID kernel.UserID
	Email  kernel.Email
	Role   Role
	Scopes []string
}

func (a *AuthContext) HasScope(scope string) bool {
	return ScopeGranted(a.Scopes, scope)
}

func (a *AuthContext) IsCandidate() bool { return a.Role == RoleCandidate }
func (a *AuthContext) IsCompany() bool   { return a.Role == RoleCompany }

// ============================================================================
// Errors
// ============================================================================

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken      = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing authorization header")
	CodeInvalidToken      = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeInsufficientScope = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeWrongRole         = ErrRegistry.Register("WRONG_ROLE", errx.TypeAuthorization, http.StatusForbidden, "This action is not available for your account type")
)

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrInsufficientScope(scope string) *errx.Error {
	return ErrRegistry.New(CodeInsufficientScope).WithDetail("required_scope", scope)
}

func ErrWrongRole(role Role) *errx.Error {
	return ErrRegistry.New(CodeWrongRole).WithDetail("required_role", string(role))
}
