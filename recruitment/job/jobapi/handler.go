package jobapi

import (
	"github.com/Abraxas-365/relaymatch/pkg/fiberx"
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/Abraxas-365/relaymatch/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting for the calling company
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.CreateJob(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetJobByID retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	jobResp, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(jobResp)
}

// ListJobs retrieves all jobs with pagination. No login required.
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	pagination := fiberx.PaginationOptions(c, kernel.DefaultPageSize, kernel.MaxPageSize)

	jobs, err := h.service.ListJobs(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// ListMyJobs retrieves the jobs posted by the calling company
// GET /api/jobs/mine
func (h *Handlers) ListMyJobs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	pagination := fiberx.PaginationOptions(c, kernel.DefaultPageSize, kernel.MaxPageSize)

	jobs, err := h.service.ListCompanyJobs(c.Context(), authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// RegenerateEmbedding retries the job vector
// POST /api/jobs/:id/embedding
func (h *Handlers) RegenerateEmbedding(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	resp, err := h.service.RegenerateEmbedding(c.Context(), authContext.UserID, kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	// Public board. Registered ahead of the group so its auth never runs.
	app.Get("/api/jobs", handlers.ListJobs)

	api := app.Group("/api/jobs", authMiddleware.Authenticate())

	api.Get("/mine",
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.ListMyJobs,
	)

	api.Get("/:id",
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.GetJobByID,
	)

	// Write routes (company accounts only)
	api.Post("/",
		authMiddleware.RequireRole(auth.RoleCompany),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Post("/:id/embedding",
		authMiddleware.RequireRole(auth.RoleCompany),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.RegenerateEmbedding,
	)
}
