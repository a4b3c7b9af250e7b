package jobinfra

import (
	"context"
	"slices"
	"sync"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
)

// MemoryJobRepository keeps jobs in process memory, copying on every access
type MemoryJobRepository struct {
	mu    sync.RWMutex
	byID  map[kernel.JobID]*job.Job
	order []kernel.JobID
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{
		byID: make(map[kernel.JobID]*job.Job),
	}
}

func (r *MemoryJobRepository) Create(ctx context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[j.ID]; exists {
		return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID.String())
	}
	r.byID[j.ID] = cloneJob(j)
	r.order = append(r.order, j.ID)
	return nil
}

func (r *MemoryJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.byID[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return cloneJob(j), nil
}

func (r *MemoryJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *cloneJob(r.byID[id]))
	}
	return out, nil
}

func (r *MemoryJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.page(func(*job.Job) bool { return true }, pagination), nil
}

func (r *MemoryJobRepository) ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.page(func(j *job.Job) bool { return j.CompanyID == companyID }, pagination), nil
}

func (r *MemoryJobRepository) UpdateEmbedding(ctx context.Context, id kernel.JobID, embedding kernel.Embedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.byID[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	j.Embedding = embedding.Clone()
	return nil
}

// page returns matching jobs newest first
func (r *MemoryJobRepository) page(keep func(*job.Job) bool, pagination kernel.PaginationOptions) *kernel.Paginated[job.Job] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]job.Job, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		j := r.byID[r.order[i]]
		if keep(j) {
			matched = append(matched, *cloneJob(j))
		}
	}

	total := len(matched)
	start := min(pagination.Offset(), total)
	end := min(start+pagination.PageSize, total)

	return paginate(matched[start:end], pagination, total)
}

func cloneJob(j *job.Job) *job.Job {
	out := *j
	out.SkillsNeeded = slices.Clone(j.SkillsNeeded)
	out.Embedding = j.Embedding.Clone()
	return &out
}
