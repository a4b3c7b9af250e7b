package candidateapi

import (
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

func callerID(c *fiber.Ctx) (kernel.UserID, error) {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return "", auth.ErrMissingToken()
	}
	return authContext.UserID, nil
}

// ImportProfile parses pasted LinkedIn or résumé text into the caller's profile
// POST /api/candidates/profile/import
func (h *Handlers) ImportProfile(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req candidate.ImportProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.ImportProfile(c.Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Chat asks the career coach a question
// POST /api/candidates/chat
func (h *Handlers) Chat(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req candidate.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.AnswerChat(c.Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// SubmitIkigai stores the self-assessment
// POST /api/candidates/ikigai
func (h *Handlers) SubmitIkigai(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req candidate.SubmitIkigaiRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.SubmitIkigai(c.Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// IkigaiQuestions
// GET /api/candidates/ikigai/questions
func (h *Handlers) IkigaiQuestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"questions": h.service.IkigaiQuestions()})
}

// Me returns the caller's candidate profile
// GET /api/candidates/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetCandidateByID lets companies open a ranked candidate
// GET /api/candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	// The questionnaire is static and public
	app.Get("/api/candidates/ikigai/questions", handlers.IkigaiQuestions)

	api := app.Group("/api/candidates", authMiddleware.Authenticate())

	// Candidate self-service
	self := authMiddleware.RequireRole(auth.RoleCandidate)

	api.Get("/me", self, authMiddleware.RequireScope(auth.ScopeProfileRead), handlers.Me)

	api.Post("/profile/import", self, authMiddleware.RequireScope(auth.ScopeProfileWrite), handlers.ImportProfile)
	api.Post("/chat", self, authMiddleware.RequireScope(auth.ScopeProfileWrite), handlers.Chat)
	api.Post("/ikigai", self, authMiddleware.RequireScope(auth.ScopeProfileWrite), handlers.SubmitIkigai)

	// Company view
	api.Get("/:id",
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByID,
	)
}
