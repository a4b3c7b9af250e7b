package matching

import (
	"math"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// Dot sums element-wise products over the common prefix of a and b.
func Dot(a, b kernel.Embedding) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm is the Euclidean length of a; zero for an empty vector.
func Norm(a kernel.Embedding) float64 {
	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b.
// Empty input yields 0. A zero norm clamps the denominator to 1, and a
// non-finite result (NaN or Inf components) is treated as no similarity.
func Cosine(a, b kernel.Embedding) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	denom := Norm(a) * Norm(b)
	if denom == 0 {
		denom = 1
	}

	sim := Dot(a, b) / denom
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return sim
}
