package matching

import (
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// SkillOverlap is the fraction of distinct required job skills the candidate
// declares, compared case-insensitively. A job with no requirements scores 0.
func SkillOverlap(candidateSkills, jobSkills []kernel.Skill) float64 {
	required := skillSet(jobSkills)
	if len(required) == 0 {
		return 0
	}

	have := skillSet(candidateSkills)
	matched := 0
	for s := range required {
		if _, ok := have[s]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

func skillSet(skills []kernel.Skill) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(string(s)))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}
