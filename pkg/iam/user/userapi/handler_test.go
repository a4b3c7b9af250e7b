package userapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/fiberx"
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/usersrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	tokens := auth.NewJWTService("secret", "relay", time.Hour)
	svc := usersrv.NewUserService(userinfra.NewMemoryUserRepository(), auth.NewBcryptPasswordService(4), tokens, nil)

	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler})
	RegisterRoutes(app, NewHandlers(svc), auth.NewUnifiedAuthMiddleware(tokens))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterLoginMe(t *testing.T) {
	app := newApp()

	resp := postJSON(t, app, "/auth/register", `{"email":"hr@acme.io","password":"long-enough","role":"company","name":"Acme"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", `{"email":"hr@acme.io","password":"long-enough","role":"company","name":"Acme"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", `{"email":"hr@acme.io","password":"nope-nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", `{"email":"hr@acme.io","password":"long-enough"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login user.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	assert.Equal(t, "Bearer", login.TokenType)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me user.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "Acme", me.Name)
	assert.Equal(t, auth.RoleCompany, me.Role)
}

func TestRegisterBadBody(t *testing.T) {
	resp := postJSON(t, newApp(), "/auth/register", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefreshRoute(t *testing.T) {
	app := newApp()

	resp := postJSON(t, app, "/auth/register", `{"email":"ada@example.com","password":"long-enough","role":"candidate"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered user.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	require.NotEmpty(t, registered.RefreshToken)

	// refresh tokens do not authenticate regular requests
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+registered.RefreshToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/refresh", `{"refresh_token":"`+registered.AccessToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/refresh", `{"refresh_token":"`+registered.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed user.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshed))
	assert.Equal(t, registered.User.ID, refreshed.User.ID)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+refreshed.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
