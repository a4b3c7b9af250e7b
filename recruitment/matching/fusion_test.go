package matching

import (
	"math"
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuseEmpty(t *testing.T) {
	got := Fuse(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Fuse([]kernel.Embedding{}))
	assert.Empty(t, Fuse([]kernel.Embedding{{}, nil}))
}

func TestFuseSingleIsIdentity(t *testing.T) {
	v := kernel.Embedding{0.25, -1, 3}
	assert.Equal(t, v, Fuse([]kernel.Embedding{v}))
}

func TestFuseMean(t *testing.T) {
	got := Fuse([]kernel.Embedding{{2, 4}, {4, 6}})
	assert.Equal(t, kernel.Embedding{3, 5}, got)
}

func TestFuseDiscardsRaggedVectors(t *testing.T) {
	res := FuseWithReport([]kernel.Embedding{
		{},
		{2, 4},
		{1, 1, 1},
		{4, 6},
		{9},
	})

	assert.Equal(t, kernel.Embedding{3, 5}, res.Vector)
	assert.Equal(t, 2, res.Dim)
	assert.Equal(t, []int{1, 3}, res.Accepted)
	assert.Equal(t, []int{2, 4}, res.Discarded)
}

func TestFuseFirstNonEmptyFixesDimension(t *testing.T) {
	got := Fuse([]kernel.Embedding{{1, 1, 1}, {5, 5}, {3, 3, 3}})
	assert.Equal(t, kernel.Embedding{2, 2, 2}, got)
}

func TestFuseDiscardsNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	res := FuseWithReport([]kernel.Embedding{{nan, 1}, {2, 2}, {4, 4}})

	assert.Equal(t, kernel.Embedding{3, 3}, res.Vector)
	assert.Equal(t, []int{0}, res.Discarded)
}

func TestFuseAllRejected(t *testing.T) {
	inf := float32(math.Inf(1))
	res := FuseWithReport([]kernel.Embedding{{inf}})
	assert.Empty(t, res.Vector)
	assert.Zero(t, res.Dim)
}

func TestFuseDoesNotMutateInput(t *testing.T) {
	a := kernel.Embedding{2, 4}
	b := kernel.Embedding{4, 6}
	in := []kernel.Embedding{a, b}

	out := Fuse(in)
	out[0] = 100

	assert.Equal(t, kernel.Embedding{2, 4}, a)
	assert.Equal(t, kernel.Embedding{4, 6}, b)
	assert.Len(t, in, 2)
}
