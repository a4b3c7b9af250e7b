package matchingsrv

import (
	"context"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/Abraxas-365/relaymatch/pkg/observability"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/Abraxas-365/relaymatch/recruitment/matching"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MatchingService ranks jobs for a candidate and candidates for a job.
// Every call loads the full opposing collection and scores it from scratch.
type MatchingService struct {
	candidates matching.CandidateLoader
	jobs       matching.JobLoader
	scorer     matching.Scorer

	defaultPageSize int
	maxPageSize     int
}

// Option customizes a MatchingService
type Option func(*MatchingService)

// WithScorer replaces the default-weight scorer
func WithScorer(s matching.Scorer) Option {
	return func(m *MatchingService) { m.scorer = s }
}

// WithPageSizes sets the default and maximum page size
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(m *MatchingService) {
		m.defaultPageSize = defaultSize
		m.maxPageSize = maxSize
	}
}

// NewMatchingService creates a new instance of the matching service
func NewMatchingService(
	candidates matching.CandidateLoader,
	jobs matching.JobLoader,
	opts ...Option,
) *MatchingService {
	s := &MatchingService{
		candidates:      candidates,
		jobs:            jobs,
		scorer:          matching.NewScorer(matching.DefaultWeights),
		defaultPageSize: kernel.DefaultPageSize,
		maxPageSize:     kernel.MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// JobsForCandidate ranks every job against the candidate's fused embedding
func (s *MatchingService) JobsForCandidate(
	ctx context.Context,
	candidateID kernel.CandidateID,
	pagination kernel.PaginationOptions,
) (result *matching.PaginatedJobMatches, err error) {
	ctx, span := observability.StartMatchSpan(ctx, "jobs_for_candidate", candidateID.String())
	defer func() { observability.EndSpan(span, err) }()

	anchor, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, anchorError(err, "candidate_id", candidateID.String())
	}
	if anchor == nil {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", candidateID.String())
	}

	return s.rankJobs(ctx, span, anchor, pagination)
}

// JobsForUser resolves the candidate owned by userID and ranks jobs for it
func (s *MatchingService) JobsForUser(
	ctx context.Context,
	userID kernel.UserID,
	pagination kernel.PaginationOptions,
) (result *matching.PaginatedJobMatches, err error) {
	ctx, span := observability.StartMatchSpan(ctx, "jobs_for_user", userID.String())
	defer func() { observability.EndSpan(span, err) }()

	anchor, err := s.candidates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, anchorError(err, "user_id", userID.String())
	}
	if anchor == nil {
		return nil, candidate.ErrCandidateNotFound().WithDetail("user_id", userID.String())
	}

	return s.rankJobs(ctx, span, anchor, pagination)
}

func (s *MatchingService) rankJobs(
	ctx context.Context,
	span trace.Span,
	anchor *candidate.Candidate,
	pagination kernel.PaginationOptions,
) (*matching.PaginatedJobMatches, error) {
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, matching.ErrLoadFailed(err).WithDetail("collection", "jobs")
	}

	fusion := matching.FuseWithReport(anchor.EmbeddingSources())
	if len(fusion.Discarded) > 0 {
		logx.With("candidate_id", anchor.ID, "discarded", fusion.Discarded, "dim", fusion.Dim).
			Warn("discarded malformed candidate embeddings")
	}

	view := matching.CandidateView{
		Skills:     anchor.Skills,
		Embedding:  fusion.Vector,
		Preference: anchor.MissionScore(),
	}

	scored := make([]matching.Scored[job.Job], 0, len(jobs))
	for i := range jobs {
		scored = append(scored, matching.Scored[job.Job]{
			Item:  jobs[i],
			Score: s.scorer.Score(view, matching.ViewOfJob(&jobs[i])),
		})
	}

	p := pagination.Normalize(s.defaultPageSize, s.maxPageSize)
	ranked := matching.Rank(scored, p.Page, p.PageSize)

	items := make([]matching.JobMatch, 0, len(ranked.Items))
	for _, r := range ranked.Items {
		items = append(items, matching.NewJobMatch(r.Item, r.Score))
	}

	span.SetAttributes(
		attribute.Int("match.opposing_count", len(jobs)),
		attribute.Int("match.fused_dim", fusion.Dim),
		attribute.Int("match.page", p.Page),
		attribute.Int("match.page_size", p.PageSize),
	)
	logx.Debugf("ranked %d jobs for candidate %s (page %d/%d)", len(jobs), anchor.ID, p.Page, ranked.Page.Pages)

	return &matching.PaginatedJobMatches{
		Items: items,
		Page:  ranked.Page,
		Empty: ranked.Empty,
	}, nil
}

// CandidatesForJob ranks every candidate against the job. Each candidate's
// embeddings are fused on the fly and never written back.
func (s *MatchingService) CandidatesForJob(
	ctx context.Context,
	jobID kernel.JobID,
	pagination kernel.PaginationOptions,
) (result *matching.PaginatedCandidateMatches, err error) {
	ctx, span := observability.StartMatchSpan(ctx, "candidates_for_job", jobID.String())
	defer func() { observability.EndSpan(span, err) }()

	anchor, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, anchorError(err, "job_id", jobID.String())
	}
	if anchor == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	return s.rankCandidates(ctx, span, anchor, pagination)
}

// CandidatesForCompanyJob is CandidatesForJob restricted to the company that posted the job
func (s *MatchingService) CandidatesForCompanyJob(
	ctx context.Context,
	companyID kernel.UserID,
	jobID kernel.JobID,
	pagination kernel.PaginationOptions,
) (result *matching.PaginatedCandidateMatches, err error) {
	ctx, span := observability.StartMatchSpan(ctx, "candidates_for_company_job", jobID.String())
	defer func() { observability.EndSpan(span, err) }()

	anchor, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, anchorError(err, "job_id", jobID.String())
	}
	if anchor == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}
	if !anchor.IsOwnedBy(companyID) {
		return nil, matching.ErrNotJobOwner().WithDetail("job_id", jobID.String())
	}

	return s.rankCandidates(ctx, span, anchor, pagination)
}

func (s *MatchingService) rankCandidates(
	ctx context.Context,
	span trace.Span,
	anchor *job.Job,
	pagination kernel.PaginationOptions,
) (*matching.PaginatedCandidateMatches, error) {
	candidates, err := s.candidates.ListAll(ctx)
	if err != nil {
		return nil, matching.ErrLoadFailed(err).WithDetail("collection", "candidates")
	}

	jobView := matching.ViewOfJob(anchor)

	scored := make([]matching.Scored[candidate.Candidate], 0, len(candidates))
	for i := range candidates {
		scored = append(scored, matching.Scored[candidate.Candidate]{
			Item:  candidates[i],
			Score: s.scorer.Score(matching.ViewOfCandidate(&candidates[i]), jobView),
		})
	}

	p := pagination.Normalize(s.defaultPageSize, s.maxPageSize)
	ranked := matching.Rank(scored, p.Page, p.PageSize)

	items := make([]matching.CandidateMatch, 0, len(ranked.Items))
	for _, r := range ranked.Items {
		items = append(items, matching.NewCandidateMatch(r.Item, r.Score))
	}

	span.SetAttributes(
		attribute.Int("match.opposing_count", len(candidates)),
		attribute.Int("match.page", p.Page),
		attribute.Int("match.page_size", p.PageSize),
	)
	logx.Debugf("ranked %d candidates for job %s (page %d/%d)", len(candidates), anchor.ID, p.Page, ranked.Page.Pages)

	return &matching.PaginatedCandidateMatches{
		Items: items,
		Page:  ranked.Page,
		Empty: ranked.Empty,
	}, nil
}

// anchorError keeps NotFound errors from the store as they are and wraps
// anything else as a load failure
func anchorError(err error, key, id string) error {
	if errx.IsType(err, errx.TypeNotFound) {
		return err
	}
	return matching.ErrLoadFailed(err).WithDetail(key, id)
}
