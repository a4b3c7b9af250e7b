package candidateinfra

import (
	"context"
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCandidateRepository()

	c := &candidate.Candidate{ID: "c-1", UserID: "u-1", Name: "Ada", Skills: []kernel.Skill{"Go"}}
	require.NoError(t, repo.Create(ctx, c))

	err := repo.Create(ctx, &candidate.Candidate{ID: "c-2", UserID: "u-1"})
	assert.True(t, errx.Is(err, candidate.CodeCandidateAlreadyExists))

	got, err := repo.GetByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	got.Skills[0] = "Mutated"
	again, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, []kernel.Skill{"Go"}, again.Skills)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestMemoryRepositoryEmbeddings(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCandidateRepository()
	require.NoError(t, repo.Create(ctx, &candidate.Candidate{ID: "c-1"}))

	require.NoError(t, repo.AppendEmbedding(ctx, "c-1", candidate.SourceChat, kernel.Embedding{1}))
	require.NoError(t, repo.AppendEmbedding(ctx, "c-1", candidate.SourceChat, kernel.Embedding{2}))
	require.NoError(t, repo.ReplaceEmbeddings(ctx, "c-1", candidate.SourceProfile, []kernel.Embedding{{3}}))
	require.NoError(t, repo.ReplaceEmbeddings(ctx, "c-1", candidate.SourceProfile, []kernel.Embedding{{4}}))

	got, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, []kernel.Embedding{{1}, {2}}, got.Embeddings.Chat)
	assert.Equal(t, []kernel.Embedding{{4}}, got.Embeddings.Profile)

	err = repo.AppendEmbedding(ctx, "c-1", candidate.EmbeddingSource("bogus"), kernel.Embedding{1})
	assert.True(t, errx.Is(err, candidate.CodeInvalidSource))

	err = repo.AppendEmbedding(ctx, "c-1", candidate.SourceChat, kernel.Embedding{})
	assert.True(t, errx.Is(err, candidate.CodeInvalidEmbedding))

	err = repo.AppendEmbedding(ctx, "nope", candidate.SourceChat, kernel.Embedding{1})
	assert.True(t, errx.Is(err, candidate.CodeCandidateNotFound))
}

func TestMemoryRepositoryUpdateKeepsEmbeddings(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCandidateRepository()
	require.NoError(t, repo.Create(ctx, &candidate.Candidate{ID: "c-1"}))
	require.NoError(t, repo.AppendEmbedding(ctx, "c-1", candidate.SourceChat, kernel.Embedding{1}))

	require.NoError(t, repo.Update(ctx, "c-1", &candidate.Candidate{ID: "c-1", Name: "Renamed"}))

	got, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Len(t, got.Embeddings.Chat, 1)

	assert.Error(t, repo.Update(ctx, "missing", &candidate.Candidate{}))
}

func TestMemoryRepositoryListAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCandidateRepository()
	for _, id := range []kernel.CandidateID{"b", "a", "c"} {
		require.NoError(t, repo.Create(ctx, &candidate.Candidate{ID: id}))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, kernel.CandidateID("b"), all[0].ID)
	assert.Equal(t, kernel.CandidateID("c"), all[2].ID)
}
