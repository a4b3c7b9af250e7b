package usersrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvisioner struct {
	calls map[kernel.UserID]string
	err   error
}

func (p *recordingProvisioner) ProvisionProfile(ctx context.Context, userID kernel.UserID, name, linkedInURL string) error {
	if p.err != nil {
		return p.err
	}
	if p.calls == nil {
		p.calls = make(map[kernel.UserID]string)
	}
	p.calls[userID] = name + "|" + linkedInURL
	return nil
}

func newService(p user.ProfileProvisioner) (*UserService, *auth.JWTService) {
	tokens := auth.NewJWTService("secret", "relay", time.Hour)
	return NewUserService(userinfra.NewMemoryUserRepository(), auth.NewBcryptPasswordService(4), tokens, p), tokens
}

func TestRegisterCandidateProvisionsProfile(t *testing.T) {
	p := &recordingProvisioner{}
	svc, tokens := newService(p)

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:       " Ada@Example.com ",
		Password:    "long-enough",
		Role:        "Candidate",
		Name:        "Ada",
		LinkedInURL: "https://linkedin.com/in/ada",
	})
	require.NoError(t, err)

	assert.Equal(t, kernel.Email("ada@example.com"), resp.User.Email)
	assert.Equal(t, auth.RoleCandidate, resp.User.Role)
	assert.Equal(t, "Ada|https://linkedin.com/in/ada", p.calls[resp.User.ID])
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterCompanyDoesNotProvision(t *testing.T) {
	p := &recordingProvisioner{}
	svc, _ := newService(p)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email: "hr@acme.io", Password: "long-enough", Role: "company",
	})
	assert.True(t, errx.Is(err, user.CodeInvalidRequest))

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		Email: "hr@acme.io", Password: "long-enough", Role: "company", Name: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCompany, resp.User.Role)
	assert.Empty(t, p.calls)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  user.RegisterRequest
		code errx.Code
	}{
		{"bad email", user.RegisterRequest{Email: "nope", Password: "long-enough", Role: "candidate"}, user.CodeInvalidRequest},
		{"short password", user.RegisterRequest{Email: "a@b.co", Password: "short", Role: "candidate"}, user.CodeInvalidRequest},
		{"bad role", user.RegisterRequest{Email: "a@b.co", Password: "long-enough", Role: "admin"}, user.CodeInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.True(t, errx.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()
	req := user.RegisterRequest{Email: "a@b.co", Password: "long-enough", Role: "candidate"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Email = "A@B.CO"
	_, err = svc.Register(ctx, req)
	assert.True(t, errx.Is(err, user.CodeEmailInUse))
}

func TestRegisterProvisionFailure(t *testing.T) {
	svc, _ := newService(&recordingProvisioner{err: errors.New("db down")})

	_, err := svc.Register(context.Background(), user.RegisterRequest{Email: "a@b.co", Password: "long-enough", Role: "candidate"})
	assert.True(t, errx.IsType(err, errx.TypeInternal))
}

func TestLogin(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, user.RegisterRequest{Email: "a@b.co", Password: "long-enough", Role: "candidate"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, user.LoginRequest{Email: "A@b.co", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@b.co", Password: "wrong-password"})
	assert.True(t, errx.Is(err, user.CodeInvalidCredentials))

	_, err = svc.Login(ctx, user.LoginRequest{Email: "ghost@b.co", Password: "long-enough"})
	assert.True(t, errx.Is(err, user.CodeInvalidCredentials))

	me, err := svc.Me(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("a@b.co"), me.Email)
}

func TestRefresh(t *testing.T) {
	svc, tokens := newService(nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, user.RegisterRequest{Email: "a@b.co", Password: "long-enough", Role: "candidate"})
	require.NoError(t, err)
	require.NotEmpty(t, registered.RefreshToken)

	resp, err := svc.Refresh(ctx, user.RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, auth.RoleCandidate, claims.Role)

	_, err = svc.Refresh(ctx, user.RefreshRequest{RefreshToken: registered.AccessToken})
	assert.True(t, errx.Is(err, auth.CodeInvalidToken))

	_, err = svc.Refresh(ctx, user.RefreshRequest{})
	assert.True(t, errx.Is(err, user.CodeInvalidRequest))

	orphan, err := tokens.GenerateRefreshToken("deleted-user")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, user.RefreshRequest{RefreshToken: orphan})
	assert.True(t, errx.Is(err, auth.CodeInvalidToken))
}
