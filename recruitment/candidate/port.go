package candidate

import (
	"context"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

type Repository interface {
	// Create creates a new candidate
	Create(ctx context.Context, candidate *Candidate) error

	// Update updates the profile fields of an existing candidate. Embeddings are
	// written only through AppendEmbedding and ReplaceEmbeddings.
	Update(ctx context.Context, id kernel.CandidateID, candidate *Candidate) error

	// GetByID retrieves a candidate with all of its embeddings
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// GetByUserID retrieves the candidate owned by a user account
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Candidate, error)

	// ListAll retrieves every candidate with embeddings, oldest first
	ListAll(ctx context.Context) ([]Candidate, error)

	// AppendEmbedding adds one vector to the source collection
	AppendEmbedding(ctx context.Context, id kernel.CandidateID, source EmbeddingSource, vector kernel.Embedding) error

	// ReplaceEmbeddings swaps the whole source collection
	ReplaceEmbeddings(ctx context.Context, id kernel.CandidateID, source EmbeddingSource, vectors []kernel.Embedding) error
}

// ProfileExtractor turns pasted LinkedIn or résumé text into structured fields
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (*ProfileData, error)
}

// Coach answers a candidate's career question with their profile as context
type Coach interface {
	Answer(ctx context.Context, c *Candidate, question string) (string, error)
}
