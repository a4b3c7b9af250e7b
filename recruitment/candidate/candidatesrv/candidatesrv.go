package candidatesrv

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/google/uuid"
)

// CandidateService owns the candidate profile flows. Every flow that
// changes embedding text saves the profile first and then queues the
// embedding task; the worker writes the vector back through ApplyEmbedding.
type CandidateService struct {
	repo        candidate.Repository
	extractor   candidate.ProfileExtractor
	coach       candidate.Coach
	queue       embedding.Queue
	maxAttempts int
}

type Option func(*CandidateService)

// WithMaxAttempts bounds retries of the embedding tasks this service queues
func WithMaxAttempts(n int) Option {
	return func(s *CandidateService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewCandidateService(
	repo candidate.Repository,
	extractor candidate.ProfileExtractor,
	coach candidate.Coach,
	queue embedding.Queue,
	opts ...Option,
) *CandidateService {
	s := &CandidateService{
		repo:        repo,
		extractor:   extractor,
		coach:       coach,
		queue:       queue,
		maxAttempts: embedding.DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateForUser creates the empty candidate that belongs to a user account
func (s *CandidateService) CreateForUser(ctx context.Context, userID kernel.UserID, name, linkedInURL string) (*candidate.Candidate, error) {
	if userID.IsEmpty() {
		return nil, candidate.ErrInvalidRequest().WithDetail("user_id", "required")
	}

	now := time.Now()
	c := &candidate.Candidate{
		ID:          kernel.NewCandidateID(uuid.NewString()),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		LinkedInURL: strings.TrimSpace(linkedInURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}

	logx.Infof("Candidate created: CandidateID=%s UserID=%s", c.ID, userID)
	return c, nil
}

// ProvisionProfile is CreateForUser for account registration; a profile
// that already exists is left alone
func (s *CandidateService) ProvisionProfile(ctx context.Context, userID kernel.UserID, name, linkedInURL string) error {
	_, err := s.CreateForUser(ctx, userID, name, linkedInURL)
	if errx.Is(err, candidate.CodeCandidateAlreadyExists) {
		return nil
	}
	return err
}

// GetCandidate retrieves a candidate by ID
func (s *CandidateService) GetCandidate(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := c.ToResponse()
	return &resp, nil
}

// GetByUser retrieves the candidate of the calling account
func (s *CandidateService) GetByUser(ctx context.Context, userID kernel.UserID) (*candidate.CandidateResponse, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := c.ToResponse()
	return &resp, nil
}

// ImportProfile extracts a structured profile from pasted LinkedIn or
// résumé text, replaces the profile fields and queues the profile embedding
func (s *CandidateService) ImportProfile(ctx context.Context, userID kernel.UserID, req candidate.ImportProfileRequest) (*candidate.CandidateResponse, error) {
	text := strings.TrimSpace(req.Text)
	if len([]rune(text)) < candidate.MinImportTextLength {
		return nil, candidate.ErrProfileTextTooShort()
	}

	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.extractor.ExtractProfile(ctx, text)
	if err != nil {
		return nil, candidate.ErrExtractionFailed(err)
	}
	if profile == nil {
		return nil, candidate.ErrExtractionFailed(nil)
	}

	c.ApplyProfile(*profile)
	if url := strings.TrimSpace(req.LinkedInURL); url != "" {
		c.LinkedInURL = url
	}

	if err := s.repo.Update(ctx, c.ID, c); err != nil {
		return nil, errx.Wrap(err, "failed to save profile", errx.TypeInternal)
	}

	if err := s.enqueue(ctx, c.ID, candidate.SourceProfile, candidate.ProfileText(c)); err != nil {
		return nil, err
	}

	logx.Infof("Profile imported: CandidateID=%s skills=%d jobs=%d", c.ID, len(c.Skills), len(c.WorkHistory))
	resp := c.ToResponse()
	return &resp, nil
}

// AnswerChat asks the coach, records the exchange and queues a chat embedding
func (s *CandidateService) AnswerChat(ctx context.Context, userID kernel.UserID, req candidate.ChatRequest) (*candidate.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, candidate.ErrInvalidRequest().WithDetail("question", "required")
	}

	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	answer, err := s.coach.Answer(ctx, c, question)
	if err != nil {
		return nil, candidate.ErrCoachUnavailable(err)
	}

	turn := c.AddChatTurn(question, answer)
	if err := s.repo.Update(ctx, c.ID, c); err != nil {
		return nil, errx.Wrap(err, "failed to save conversation", errx.TypeInternal)
	}

	if err := s.enqueue(ctx, c.ID, candidate.SourceChat, candidate.ChatText(question, answer)); err != nil {
		return nil, err
	}

	return &candidate.ChatResponse{
		Question:  turn.Question,
		Answer:    turn.Answer,
		Timestamp: turn.Timestamp,
		Candidate: c.ToResponse(),
	}, nil
}

// SubmitIkigai aggregates the self-assessment and queues the ikigai embedding
func (s *CandidateService) SubmitIkigai(ctx context.Context, userID kernel.UserID, req candidate.SubmitIkigaiRequest) (*candidate.IkigaiResponse, error) {
	if len(req.Answers) == 0 {
		return nil, candidate.ErrInvalidRequest().WithDetail("answers", "required")
	}
	for i, a := range req.Answers {
		if math.IsNaN(a.Value) || a.Value < 0 || a.Value > candidate.IkigaiMaxValue {
			return nil, candidate.ErrInvalidIkigaiAnswer().WithDetail("index", i).WithDetail("value", a.Value)
		}
	}

	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	scores := candidate.AggregateIkigai(req.Answers)
	c.SetIkigai(scores)

	if err := s.repo.Update(ctx, c.ID, c); err != nil {
		return nil, errx.Wrap(err, "failed to save ikigai", errx.TypeInternal)
	}

	if err := s.enqueue(ctx, c.ID, candidate.SourceIkigai, scores.Text()); err != nil {
		return nil, err
	}

	return &candidate.IkigaiResponse{
		Scores:    scores,
		Candidate: c.ToResponse(),
	}, nil
}

// IkigaiQuestions returns the assessment form
func (s *CandidateService) IkigaiQuestions() []candidate.IkigaiQuestion {
	out := make([]candidate.IkigaiQuestion, len(candidate.DefaultIkigaiQuestions))
	copy(out, candidate.DefaultIkigaiQuestions)
	return out
}

// ApplyEmbedding implements embedding.Applier. Chat vectors accumulate;
// profile and ikigai vectors replace the previous one.
func (s *CandidateService) ApplyEmbedding(ctx context.Context, task embedding.Task, vector kernel.Embedding) error {
	if !task.Source.IsValid() {
		return candidate.ErrInvalidSource().WithDetail("source", string(task.Source))
	}
	if vector.IsEmpty() || !vector.IsFinite() {
		return candidate.ErrInvalidEmbedding().WithDetail("candidate_id", task.CandidateID.String())
	}

	if task.Source.Appends() {
		return s.repo.AppendEmbedding(ctx, task.CandidateID, task.Source, vector)
	}
	return s.repo.ReplaceEmbeddings(ctx, task.CandidateID, task.Source, []kernel.Embedding{vector})
}

func (s *CandidateService) enqueue(ctx context.Context, id kernel.CandidateID, source candidate.EmbeddingSource, text string) error {
	task := embedding.NewTask(id, source, text, s.maxAttempts)
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return candidate.ErrEnqueueFailed(err).
			WithDetail("candidate_id", id.String()).
			WithDetail("source", string(source))
	}
	logx.Debugf("Embedding task queued: TaskID=%s CandidateID=%s source=%s", task.ID, id, source)
	return nil
}
