package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/google/uuid"
)

// JobService provides business operations for jobs
type JobService struct {
	jobRepo   job.Repository
	extractor job.Extractor
	generator embedding.Generator
}

// NewJobService creates a new instance of the job service. A nil extractor
// always takes the fallback path.
func NewJobService(
	jobRepo job.Repository,
	extractor job.Extractor,
	generator embedding.Generator,
) *JobService {
	return &JobService{
		jobRepo:   jobRepo,
		extractor: extractor,
		generator: generator,
	}
}

// CreateJob creates a new job posting. Structured fields come from the
// extractor, falling back to defaults when it fails. The job vector is
// generated inline; a failed embedding is logged and the job is stored
// without one.
func (s *JobService) CreateJob(ctx context.Context, companyID kernel.UserID, req job.CreateJobRequest) (*job.CreateJobResponse, error) {
	title := strings.TrimSpace(string(req.Title))
	if title == "" {
		return nil, job.ErrTitleRequired()
	}
	description := strings.TrimSpace(string(req.Description))

	extracted := s.extract(ctx, description)

	now := time.Now()
	newJob := &job.Job{
		ID:           kernel.NewJobID(uuid.NewString()),
		CompanyID:    companyID,
		Title:        kernel.JobTitle(title),
		Description:  kernel.JobDescription(description),
		Summary:      extracted.Description,
		SkillsNeeded: kernel.SkillsFromStrings(extracted.SkillsNeeded),
		Seniority:    job.Seniority(extracted.Seniority),
		Location:     extracted.Location,
		WorkSetup:    job.WorkSetup(extracted.WorkSetup),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	newJob.Embedding = s.embed(ctx, newJob)

	// Save job
	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	logx.Infof("Job created: JobID=%s CompanyID=%s skills=%d embedded=%t",
		newJob.ID, companyID, len(newJob.SkillsNeeded), newJob.HasEmbedding())

	return &job.CreateJobResponse{
		Job:       newJob.ToResponse(),
		Extracted: extracted,
	}, nil
}

// extract runs the extractor and normalizes its output; any failure yields
// the defaults: mid seniority, onsite, a description prefix and no location
func (s *JobService) extract(ctx context.Context, description string) job.ExtractedJob {
	out := job.ExtractedJob{
		SkillsNeeded: []string{},
		Seniority:    string(job.SeniorityMid),
		Description:  truncate(description, job.SummaryFallbackLength),
		WorkSetup:    string(job.WorkSetupOnsite),
	}

	if s.extractor != nil && description != "" {
		extracted, err := s.extractor.ExtractJob(ctx, description)
		if err != nil || extracted == nil {
			logx.Warnf("Job extraction failed, using defaults: %v", err)
		} else {
			out.SkillsNeeded = trimmed(extracted.SkillsNeeded)
			out.Seniority = string(job.NormalizeSeniority(extracted.Seniority))
			out.Description = strings.TrimSpace(extracted.Description)
			out.Location = strings.TrimSpace(extracted.Location)
			out.WorkSetup = string(job.NormalizeWorkSetup(extracted.WorkSetup))
		}
	}

	if len(out.SkillsNeeded) == 0 {
		out.SkillsNeeded = kernel.SkillsToStrings(job.ExtractSkillsFallback(description))
	}

	return out
}

func (s *JobService) embed(ctx context.Context, j *job.Job) kernel.Embedding {
	if s.generator == nil {
		return nil
	}

	vector, err := s.generator.GenerateEmbedding(ctx, j.EmbeddingText())
	if err != nil {
		logx.Warnf("Job embedding failed for %s, storing without vector: %v", j.ID, err)
		return nil
	}
	if !vector.IsFinite() {
		logx.Warnf("Job embedding for %s is not finite, storing without vector", j.ID)
		return nil
	}
	return vector
}

// RegenerateEmbedding retries the job vector, typically after a provider outage
func (s *JobService) RegenerateEmbedding(ctx context.Context, companyID kernel.UserID, jobID kernel.JobID) (*job.JobResponse, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !jobEntity.IsOwnedBy(companyID) {
		return nil, job.ErrNotJobOwner().WithDetail("job_id", jobID.String())
	}

	vector, err := s.generator.GenerateEmbedding(ctx, jobEntity.EmbeddingText())
	if err != nil {
		return nil, errx.Wrap(err, "failed to generate job embedding", errx.TypeExternal)
	}

	if err := s.jobRepo.UpdateEmbedding(ctx, jobID, vector); err != nil {
		return nil, errx.Wrap(err, "failed to store job embedding", errx.TypeInternal)
	}

	jobEntity.Embedding = vector
	resp := jobEntity.ToResponse()
	return &resp, nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := jobEntity.ToResponse()
	return &resp, nil
}

// ListCompanyJobs retrieves the jobs posted by a company, newest first
func (s *JobService) ListCompanyJobs(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	pagination = pagination.Normalize(kernel.DefaultPageSize, kernel.MaxPageSize)

	jobs, err := s.jobRepo.ListByCompany(ctx, companyID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get jobs by company", errx.TypeInternal)
	}

	return toResponses(jobs), nil
}

// ListJobs retrieves all jobs with pagination
func (s *JobService) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	pagination = pagination.Normalize(kernel.DefaultPageSize, kernel.MaxPageSize)

	jobs, err := s.jobRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	return toResponses(jobs), nil
}

func toResponses(jobs *kernel.Paginated[job.Job]) *job.PaginatedJobsResponse {
	responses := make([]job.JobResponse, 0, len(jobs.Items))
	for i := range jobs.Items {
		responses = append(responses, jobs.Items[i].ToResponse())
	}

	return &kernel.Paginated[job.JobResponse]{
		Items: responses,
		Page:  jobs.Page,
		Empty: jobs.Empty,
	}
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
