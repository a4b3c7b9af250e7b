package matching

import (
	"math"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// PreferenceScale is the upper bound of the self-assessed preference score.
const PreferenceScale = 10.0

const (
	MinScore MatchScore = 0
	MaxScore MatchScore = 100
)

// MatchScore is the blended relevance of one candidate/job pair, 0..100.
type MatchScore int

// Weights are the coefficients of the three score components.
type Weights struct {
	Semantic   float64 `json:"semantic"`
	Skills     float64 `json:"skills"`
	Preference float64 `json:"preference"`
}

// DefaultWeights blend embedding similarity, skill overlap and the ikigai
// mission answer. Only mission feeds the score; the other ikigai axes do not.
var DefaultWeights = Weights{
	Semantic:   0.6,
	Skills:     0.3,
	Preference: 0.1,
}

// CandidateView is the read-only slice of a candidate the scorer needs.
// Embedding must already be fused.
type CandidateView struct {
	Skills     []kernel.Skill
	Embedding  kernel.Embedding
	Preference float64
}

// JobView is the read-only slice of a job the scorer needs.
type JobView struct {
	Skills    []kernel.Skill
	Embedding kernel.Embedding
}

// Breakdown exposes the component values behind a score.
type Breakdown struct {
	Similarity float64 `json:"similarity"`
	Overlap    float64 `json:"overlap"`
	Preference float64 `json:"preference"`
	Raw        float64 `json:"raw"`
}

// Scorer computes MatchScores with a fixed set of weights.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) Scorer {
	return Scorer{weights: w}
}

// Weights returns the weights in use.
func (s Scorer) Weights() Weights { return s.weights }

// Score returns round(100 * raw) clamped to [0, 100].
func (s Scorer) Score(c CandidateView, j JobView) MatchScore {
	score, _ := s.Explain(c, j)
	return score
}

// Explain returns the score together with its components.
func (s Scorer) Explain(c CandidateView, j JobView) (MatchScore, Breakdown) {
	b := Breakdown{
		Similarity: Cosine(c.Embedding, j.Embedding),
		Overlap:    SkillOverlap(c.Skills, j.Skills),
		Preference: clampFloat(c.Preference, 0, PreferenceScale) / PreferenceScale,
	}
	b.Raw = s.weights.Semantic*b.Similarity +
		s.weights.Skills*b.Overlap +
		s.weights.Preference*b.Preference

	if math.IsNaN(b.Raw) {
		return MinScore, b
	}

	score := MatchScore(math.Round(clampFloat(b.Raw*100, float64(MinScore), float64(MaxScore))))
	return score, b
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
