package usersrv

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/google/uuid"
)

const MinPasswordLength = 8

// UserService registers accounts and logs them in
type UserService struct {
	repo        user.Repository
	passwords   auth.PasswordService
	tokens      auth.TokenService
	provisioner user.ProfileProvisioner
}

func NewUserService(
	repo user.Repository,
	passwords auth.PasswordService,
	tokens auth.TokenService,
	provisioner user.ProfileProvisioner,
) *UserService {
	return &UserService{
		repo:        repo,
		passwords:   passwords,
		tokens:      tokens,
		provisioner: provisioner,
	}
}

// Register creates an account. Candidate accounts also get an empty
// candidate profile so the import, chat and ikigai flows have a target.
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	email := user.NormalizeEmail(req.Email)
	if addr, err := mail.ParseAddress(email.String()); err != nil || addr.Address != email.String() {
		return nil, user.ErrInvalidRequest().WithDetail("email", "invalid address")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, user.ErrInvalidRequest().WithDetail("password", "too short").WithDetail("min_length", MinPasswordLength)
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		return nil, user.ErrInvalidRole().WithDetail("role", req.Role)
	}

	name := strings.TrimSpace(req.Name)
	if role == auth.RoleCompany && name == "" {
		return nil, user.ErrInvalidRequest().WithDetail("name", "company name is required")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailInUse().WithDetail("email", email.String())
	} else if !errx.Is(err, user.CodeUserNotFound) {
		return nil, errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	now := time.Now()
	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	if role == auth.RoleCandidate && s.provisioner != nil {
		if err := s.provisioner.ProvisionProfile(ctx, u.ID, name, strings.TrimSpace(req.LinkedInURL)); err != nil {
			return nil, errx.Wrap(err, "failed to create candidate profile", errx.TypeInternal)
		}
	}

	logx.Infof("User registered: UserID=%s role=%s", u.ID, u.Role)
	return s.issue(u)
}

// Login checks the password and issues a fresh access token
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errx.Is(err, user.CodeUserNotFound) {
			return nil, user.ErrInvalidCredentials()
		}
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}

	if !s.passwords.Compare(u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials()
	}

	return s.issue(u)
}

// Refresh exchanges a refresh token for a new token pair. The account
// is reloaded so role changes and deletions take effect.
func (s *UserService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.AuthResponse, error) {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return nil, user.ErrInvalidRequest().WithDetail("refresh_token", "required")
	}

	userID, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errx.Is(err, user.CodeUserNotFound) {
			return nil, auth.ErrInvalidToken().WithDetail("reason", "account no longer exists")
		}
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}

	return s.issue(u)
}

// Me returns the authenticated account
func (s *UserService) Me(ctx context.Context, id kernel.UserID) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse()
	return &resp, nil
}

func (s *UserService) issue(u *user.User) (*user.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue refresh token", errx.TypeInternal)
	}

	return &user.AuthResponse{
		User:         u.ToResponse(),
		AccessToken:  token,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTokenTTL().Seconds()),
	}, nil
}
