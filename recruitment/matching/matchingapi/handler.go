package matchingapi

import (
	"github.com/Abraxas-365/relaymatch/pkg/fiberx"
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/Abraxas-365/relaymatch/recruitment/matching/matchingsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for ranked matches
type Handlers struct {
	service         *matchingsrv.MatchingService
	defaultPageSize int
	maxPageSize     int
}

// NewHandlers creates a new matching handlers instance
func NewHandlers(service *matchingsrv.MatchingService, defaultPageSize, maxPageSize int) *Handlers {
	return &Handlers{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Recommendations ranks every job for the calling candidate
// GET /api/candidates/me/recommendations
func (h *Handlers) Recommendations(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := fiberx.PaginationOptions(c, h.defaultPageSize, h.maxPageSize)

	resp, err := h.service.JobsForUser(c.Context(), authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RankedCandidates ranks every candidate for one of the caller's jobs
// GET /api/jobs/:id/candidates
func (h *Handlers) RankedCandidates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	pagination := fiberx.PaginationOptions(c, h.defaultPageSize, h.maxPageSize)

	resp, err := h.service.CandidatesForCompanyJob(c.Context(), authContext.UserID, jobID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers the match listing routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	app.Get("/api/candidates/me/recommendations",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		authMiddleware.RequireScope(auth.ScopeMatchesJobs),
		handlers.Recommendations,
	)

	app.Get("/api/jobs/:id/candidates",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCompany),
		authMiddleware.RequireScope(auth.ScopeMatchesCandidates),
		handlers.RankedCandidates,
	)
}
