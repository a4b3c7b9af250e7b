package matching

import (
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func skills(s ...string) []kernel.Skill {
	return kernel.SkillsFromStrings(s)
}

func TestSkillOverlap(t *testing.T) {
	tests := []struct {
		name      string
		candidate []kernel.Skill
		job       []kernel.Skill
		want      float64
	}{
		{"no candidate skills", skills(), skills("Go"), 0},
		{"case-insensitive", skills("go", "Rust"), skills("Go"), 1},
		{"no job requirements", skills("Go"), skills(), 0},
		{"partial", skills("Go"), skills("Go", "SQL"), 0.5},
		{"extra candidate skills do not help", skills("Go", "SQL", "Rust", "Java"), skills("Go", "Kafka"), 0.5},
		{"duplicate job skills count once", skills("Go"), skills("Go", "GO", "SQL"), 0.5},
		{"duplicate candidate skills count once", skills("sql", "SQL"), skills("SQL", "Go"), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkillOverlap(tt.candidate, tt.job), 1e-9)
		})
	}
}
