package job

import (
	"context"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// ListAll retrieves every job with its embedding, oldest first
	ListAll(ctx context.Context) ([]Job, error)

	// List retrieves jobs newest first with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListByCompany retrieves jobs posted by a company account
	ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// UpdateEmbedding stores a (re)generated job vector
	UpdateEmbedding(ctx context.Context, id kernel.JobID, embedding kernel.Embedding) error
}

// Extractor turns a free-text job description into structured fields
type Extractor interface {
	ExtractJob(ctx context.Context, description string) (*ExtractedJob, error)
}
