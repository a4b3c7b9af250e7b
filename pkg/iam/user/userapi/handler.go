package userapi

import (
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/usersrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for account operations
type Handlers struct {
	service *usersrv.UserService
}

func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{service: service}
}

// Register creates a candidate or company account
// POST /auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login
// POST /auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Refresh exchanges a refresh token for a new token pair
// POST /auth/refresh
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req user.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Refresh(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Me returns the authenticated account
// GET /auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	resp, err := h.service.Me(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all account routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Post("/refresh", handlers.Refresh)
	api.Get("/me", authMiddleware.Authenticate(), handlers.Me)
}
