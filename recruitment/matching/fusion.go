package matching

import "github.com/Abraxas-365/relaymatch/pkg/kernel"

// FusionResult is the outcome of mean-pooling a set of vectors. Accepted
// and Discarded are indexes into the input so callers can log which
// vectors were dropped.
type FusionResult struct {
	Vector    kernel.Embedding
	Dim       int
	Accepted  []int
	Discarded []int
}

// Fuse mean-pools vectors into one newly allocated vector.
func Fuse(vectors []kernel.Embedding) kernel.Embedding {
	return FuseWithReport(vectors).Vector
}

// FuseWithReport mean-pools vectors and reports which inputs took part.
//
// The first non-empty finite vector fixes the dimension. Every other vector
// with a different length, or with a NaN/Inf component, is discarded rather
// than padded or truncated. Empty vectors are skipped silently. When nothing
// is accepted the result vector is empty. Inputs are never written to.
func FuseWithReport(vectors []kernel.Embedding) FusionResult {
	res := FusionResult{Vector: kernel.Embedding{}}

	for i, v := range vectors {
		if len(v) == 0 {
			continue
		}
		if !v.IsFinite() {
			res.Discarded = append(res.Discarded, i)
			continue
		}
		if res.Dim == 0 {
			res.Dim = len(v)
		}
		if len(v) != res.Dim {
			res.Discarded = append(res.Discarded, i)
			continue
		}
		res.Accepted = append(res.Accepted, i)
	}

	if len(res.Accepted) == 0 {
		res.Dim = 0
		return res
	}

	sum := make([]float64, res.Dim)
	for _, idx := range res.Accepted {
		for d, x := range vectors[idx] {
			sum[d] += float64(x)
		}
	}

	n := float64(len(res.Accepted))
	out := make(kernel.Embedding, res.Dim)
	for d, s := range sum {
		out[d] = float32(s / n)
	}
	res.Vector = out
	return res
}
