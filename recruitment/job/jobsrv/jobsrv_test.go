package jobsrv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/Abraxas-365/relaymatch/recruitment/job/jobinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	out *job.ExtractedJob
	err error
}

func (s *stubExtractor) ExtractJob(ctx context.Context, description string) (*job.ExtractedJob, error) {
	return s.out, s.err
}

type stubGenerator struct {
	vector kernel.Embedding
	err    error
	texts  []string
}

func (g *stubGenerator) GenerateEmbedding(ctx context.Context, text string) (kernel.Embedding, error) {
	g.texts = append(g.texts, text)
	return g.vector, g.err
}

func TestCreateJobWithExtraction(t *testing.T) {
	ctx := context.Background()
	repo := jobinfra.NewMemoryJobRepository()
	gen := &stubGenerator{vector: kernel.Embedding{0.1, 0.2}}
	svc := NewJobService(repo, &stubExtractor{out: &job.ExtractedJob{
		SkillsNeeded: []string{" Go ", "", "PostgreSQL"},
		Seniority:    "Sr.",
		Description:  "Own the matching API.",
		Location:     "Lima",
		WorkSetup:    "Hybrid (3 days)",
	}}, gen)

	resp, err := svc.CreateJob(ctx, "company-1", job.CreateJobRequest{
		Title:       "  Backend Engineer ",
		Description: "We need a Go engineer.",
	})
	require.NoError(t, err)

	assert.Equal(t, kernel.JobTitle("Backend Engineer"), resp.Job.Title)
	assert.Equal(t, []kernel.Skill{"Go", "PostgreSQL"}, resp.Job.SkillsNeeded)
	assert.Equal(t, job.SenioritySenior, resp.Job.Seniority)
	assert.Equal(t, job.WorkSetupHybrid, resp.Job.WorkSetup)
	assert.True(t, resp.Job.HasEmbedding)
	require.Len(t, gen.texts, 1)
	assert.Contains(t, gen.texts[0], "Summary: Own the matching API.")

	stored, err := repo.GetByID(ctx, resp.Job.ID)
	require.NoError(t, err)
	assert.Equal(t, kernel.Embedding{0.1, 0.2}, stored.Embedding)
	assert.Equal(t, kernel.UserID("company-1"), stored.CompanyID)
}

func TestCreateJobFallsBackWhenExtractionFails(t *testing.T) {
	ctx := context.Background()
	description := "Skills: Go, Docker and Kubernetes. " + strings.Repeat("x", 400)
	svc := NewJobService(jobinfra.NewMemoryJobRepository(), &stubExtractor{err: errors.New("bad json")}, &stubGenerator{vector: kernel.Embedding{1}})

	resp, err := svc.CreateJob(ctx, "company-1", job.CreateJobRequest{Title: "Platform", Description: kernel.JobDescription(description)})
	require.NoError(t, err)

	assert.Equal(t, string(job.SeniorityMid), resp.Extracted.Seniority)
	assert.Equal(t, string(job.WorkSetupOnsite), resp.Extracted.WorkSetup)
	assert.Len(t, []rune(resp.Extracted.Description), job.SummaryFallbackLength)
	assert.Contains(t, resp.Extracted.SkillsNeeded, "Docker")
	assert.Contains(t, resp.Extracted.SkillsNeeded, "Kubernetes")
}

func TestCreateJobKeepsJobWhenEmbeddingFails(t *testing.T) {
	ctx := context.Background()
	repo := jobinfra.NewMemoryJobRepository()
	svc := NewJobService(repo, nil, &stubGenerator{err: errors.New("quota")})

	resp, err := svc.CreateJob(ctx, "company-1", job.CreateJobRequest{Title: "Data Engineer", Description: "Spark, Airflow"})
	require.NoError(t, err)
	assert.False(t, resp.Job.HasEmbedding)

	_, err = repo.GetByID(ctx, resp.Job.ID)
	require.NoError(t, err)
}

func TestCreateJobRequiresTitle(t *testing.T) {
	svc := NewJobService(jobinfra.NewMemoryJobRepository(), nil, nil)

	_, err := svc.CreateJob(context.Background(), "company-1", job.CreateJobRequest{Title: "   "})
	assert.True(t, errx.Is(err, job.CodeTitleRequired))
}

func TestRegenerateEmbedding(t *testing.T) {
	ctx := context.Background()
	repo := jobinfra.NewMemoryJobRepository()
	gen := &stubGenerator{err: errors.New("down")}
	svc := NewJobService(repo, nil, gen)

	created, err := svc.CreateJob(ctx, "company-1", job.CreateJobRequest{Title: "SRE", Description: "Linux, Terraform"})
	require.NoError(t, err)
	require.False(t, created.Job.HasEmbedding)

	_, err = svc.RegenerateEmbedding(ctx, "company-2", created.Job.ID)
	assert.True(t, errx.Is(err, job.CodeNotJobOwner))

	gen.err = nil
	gen.vector = kernel.Embedding{0.5, 0.5}
	resp, err := svc.RegenerateEmbedding(ctx, "company-1", created.Job.ID)
	require.NoError(t, err)
	assert.True(t, resp.HasEmbedding)
}

func TestListCompanyJobs(t *testing.T) {
	ctx := context.Background()
	svc := NewJobService(jobinfra.NewMemoryJobRepository(), nil, nil)

	for _, title := range []string{"A", "B", "C"} {
		_, err := svc.CreateJob(ctx, "company-1", job.CreateJobRequest{Title: kernel.JobTitle(title)})
		require.NoError(t, err)
	}
	_, err := svc.CreateJob(ctx, "company-2", job.CreateJobRequest{Title: "Other"})
	require.NoError(t, err)

	page, err := svc.ListCompanyJobs(ctx, "company-1", kernel.PaginationOptions{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, 1, page.Page.Number)
	assert.Equal(t, kernel.DefaultPageSize, page.Page.Size)

	all, err := svc.ListJobs(ctx, kernel.PaginationOptions{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Page.Total)
	assert.Equal(t, 2, all.Page.Pages)
	assert.Len(t, all.Items, 2)
}

func TestGetJobNotFound(t *testing.T) {
	svc := NewJobService(jobinfra.NewMemoryJobRepository(), nil, nil)

	_, err := svc.GetJob(context.Background(), "missing")
	assert.True(t, errx.Is(err, job.CodeJobNotFound))
}
