package jobinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *MemoryJobRepository, n int, company kernel.UserID) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(context.Background(), &job.Job{
			ID:        kernel.JobID(fmt.Sprintf("%s-%d", company, i)),
			CompanyID: company,
			CreatedAt: time.Now(),
		}))
	}
}

func TestMemoryJobRepositoryPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo, 5, "acme")
	seed(t, repo, 2, "globex")

	page, err := repo.ListByCompany(ctx, "acme", kernel.PaginationOptions{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, kernel.JobID("acme-2"), page.Items[0].ID)

	all, err := repo.List(ctx, kernel.PaginationOptions{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 7, all.Page.Total)
	assert.Equal(t, kernel.JobID("globex-1"), all.Items[0].ID)

	past, err := repo.List(ctx, kernel.PaginationOptions{Page: 9, PageSize: 20})
	require.NoError(t, err)
	assert.True(t, past.Empty)
}

func TestMemoryJobRepositoryEmbedding(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo, 1, "acme")

	v := kernel.Embedding{1, 2}
	require.NoError(t, repo.UpdateEmbedding(ctx, "acme-0", v))
	v[0] = 9

	got, err := repo.GetByID(ctx, "acme-0")
	require.NoError(t, err)
	assert.Equal(t, kernel.Embedding{1, 2}, got.Embedding)

	err = repo.UpdateEmbedding(ctx, "missing", v)
	assert.True(t, errx.Is(err, job.CodeJobNotFound))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
