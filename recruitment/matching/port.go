package matching

import (
	"context"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
)

// CandidateLoader is the read side of the candidate store used for ranking
type CandidateLoader interface {
	GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error)
	GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error)
	ListAll(ctx context.Context) ([]candidate.Candidate, error)
}

// JobLoader is the read side of the job store used for ranking
type JobLoader interface {
	GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error)
	ListAll(ctx context.Context) ([]job.Job, error)
}
