package candidateinfra

import (
	"context"
	"slices"
	"sync"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
)

// MemoryCandidateRepository keeps candidates in process memory. Values are
// deep-copied on the way in and out so callers never share state with it.
type MemoryCandidateRepository struct {
	mu    sync.RWMutex
	byID  map[kernel.CandidateID]*candidate.Candidate
	order []kernel.CandidateID
}

func NewMemoryCandidateRepository() *MemoryCandidateRepository {
	return &MemoryCandidateRepository{
		byID: make(map[kernel.CandidateID]*candidate.Candidate),
	}
}

func (r *MemoryCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return candidate.ErrCandidateAlreadyExists().WithDetail("candidate_id", c.ID.String())
	}
	for _, existing := range r.byID {
		if !c.UserID.IsEmpty() && existing.UserID == c.UserID {
			return candidate.ErrCandidateAlreadyExists().WithDetail("user_id", c.UserID.String())
		}
	}

	r.byID[c.ID] = cloneCandidate(c)
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	updated := cloneCandidate(c)
	updated.ID = id
	updated.Embeddings = existing.Embeddings
	r.byID[id] = updated
	return nil
}

func (r *MemoryCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}
	return cloneCandidate(c), nil
}

func (r *MemoryCandidateRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.UserID == userID {
			return cloneCandidate(c), nil
		}
	}
	return nil, candidate.ErrCandidateNotFound().WithDetail("user_id", userID.String())
}

func (r *MemoryCandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]candidate.Candidate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *cloneCandidate(r.byID[id]))
	}
	return out, nil
}

func (r *MemoryCandidateRepository) AppendEmbedding(ctx context.Context, id kernel.CandidateID, source candidate.EmbeddingSource, vector kernel.Embedding) error {
	if !source.IsValid() {
		return candidate.ErrInvalidSource().WithDetail("source", string(source))
	}
	if vector.IsEmpty() {
		return candidate.ErrInvalidEmbedding()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	v := vector.Clone()
	switch source {
	case candidate.SourceProfile:
		c.Embeddings.Profile = append(c.Embeddings.Profile, v)
	case candidate.SourceChat:
		c.Embeddings.Chat = append(c.Embeddings.Chat, v)
	case candidate.SourceIkigai:
		c.Embeddings.Ikigai = append(c.Embeddings.Ikigai, v)
	}
	return nil
}

func (r *MemoryCandidateRepository) ReplaceEmbeddings(ctx context.Context, id kernel.CandidateID, source candidate.EmbeddingSource, vectors []kernel.Embedding) error {
	if !source.IsValid() {
		return candidate.ErrInvalidSource().WithDetail("source", string(source))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	copied := cloneVectors(vectors)
	switch source {
	case candidate.SourceProfile:
		c.Embeddings.Profile = copied
	case candidate.SourceChat:
		c.Embeddings.Chat = copied
	case candidate.SourceIkigai:
		c.Embeddings.Ikigai = copied
	}
	return nil
}

func cloneCandidate(c *candidate.Candidate) *candidate.Candidate {
	out := *c
	out.Skills = slices.Clone(c.Skills)
	out.WorkHistory = slices.Clone(c.WorkHistory)
	out.Education = slices.Clone(c.Education)
	out.Conversation = slices.Clone(c.Conversation)
	out.Embeddings = candidate.Embeddings{
		Profile: cloneVectors(c.Embeddings.Profile),
		Chat:    cloneVectors(c.Embeddings.Chat),
		Ikigai:  cloneVectors(c.Embeddings.Ikigai),
	}
	return &out
}

func cloneVectors(vs []kernel.Embedding) []kernel.Embedding {
	if vs == nil {
		return nil
	}
	out := make([]kernel.Embedding, len(vs))
	for i, v := range vs {
		out[i] = v.Clone()
	}
	return out
}
