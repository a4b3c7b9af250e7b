package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID           string           `db:"id"`
	CompanyID    string           `db:"company_id"`
	Title        string           `db:"title"`
	Description  string           `db:"description"`
	Summary      string           `db:"summary"`
	SkillsNeeded pq.StringArray   `db:"skills_needed"`
	Seniority    string           `db:"seniority"`
	Location     string           `db:"location"`
	WorkSetup    string           `db:"work_setup"`
	Embedding    *pgvector.Vector `db:"embedding"`
	CreatedAt    time.Time        `db:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at"`
}

const jobColumns = `
	id, company_id, title, description, summary, skills_needed,
	seniority, location, work_setup, embedding, created_at, updated_at
`

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	var embedding kernel.Embedding
	if m.Embedding != nil {
		embedding = kernel.Embedding(m.Embedding.Slice())
	}

	return &job.Job{
		ID:           kernel.JobID(m.ID),
		CompanyID:    kernel.UserID(m.CompanyID),
		Title:        kernel.JobTitle(m.Title),
		Description:  kernel.JobDescription(m.Description),
		Summary:      m.Summary,
		SkillsNeeded: kernel.SkillsFromStrings(m.SkillsNeeded),
		Seniority:    job.Seniority(m.Seniority),
		Location:     m.Location,
		WorkSetup:    job.WorkSetup(m.WorkSetup),
		Embedding:    embedding,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:           j.ID.String(),
		CompanyID:    j.CompanyID.String(),
		Title:        string(j.Title),
		Description:  string(j.Description),
		Summary:      j.Summary,
		SkillsNeeded: pq.StringArray(kernel.SkillsToStrings(j.SkillsNeeded)),
		Seniority:    string(j.Seniority),
		Location:     j.Location,
		WorkSetup:    string(j.WorkSetup),
		Embedding:    toVector(j.Embedding),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// toVector maps an empty embedding to NULL, pgvector rejects zero dimensions
func toVector(e kernel.Embedding) *pgvector.Vector {
	if e.IsEmpty() {
		return nil
	}
	v := pgvector.NewVector(e)
	return &v
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `) VALUES (
			:id, :company_id, :title, :description, :summary, :skills_needed,
			:seniority, :location, :work_setup, :embedding, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" { // unique_violation
				return job.ErrJobAlreadyExists()
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid company_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity(), nil
}

// ListAll retrieves every job with its embedding, oldest first
func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at ASC, id ASC`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return toEntities(models), nil
}

// List retrieves jobs newest first with pagination
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return paginate(toEntities(models), pagination, total), nil
}

// ListByCompany retrieves jobs posted by a company account
func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM jobs WHERE company_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, companyID.String()); err != nil {
		return nil, fmt.Errorf("failed to count company jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []jobModel
	err := r.db.SelectContext(ctx, &models, query, companyID.String(), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}

	return paginate(toEntities(models), pagination, total), nil
}

// UpdateEmbedding stores a (re)generated job vector
func (r *PostgresJobRepository) UpdateEmbedding(ctx context.Context, id kernel.JobID, embedding kernel.Embedding) error {
	query := `UPDATE jobs SET embedding = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, toVector(embedding), time.Now(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update job embedding: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}

func toEntities(models []jobModel) []job.Job {
	entities := make([]job.Job, 0, len(models))
	for i := range models {
		entities = append(entities, *models[i].toEntity())
	}
	return entities
}

func paginate(items []job.Job, pagination kernel.PaginationOptions, total int) *kernel.Paginated[job.Job] {
	return &kernel.Paginated[job.Job]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  kernel.TotalPages(total, pagination.PageSize),
		},
		Empty: len(items) == 0,
	}
}
