package job

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeniority(t *testing.T) {
	tests := map[string]Seniority{
		"":               SeniorityMid,
		"Junior":         SeniorityJunior,
		"jr. developer":  SeniorityJunior,
		"SENIOR":         SenioritySenior,
		"Sr Engineer":    SenioritySenior,
		"Tech Lead":      SenioritySenior,
		"staff engineer": SenioritySenior,
		"intermediate":   SeniorityMid,
		"mid":            SeniorityMid,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeSeniority(in), in)
	}
}

func TestNormalizeWorkSetup(t *testing.T) {
	assert.Equal(t, WorkSetupRemote, NormalizeWorkSetup("Remote"))
	assert.Equal(t, WorkSetupHybrid, NormalizeWorkSetup(" hybrid "))
	assert.Equal(t, WorkSetupOnsite, NormalizeWorkSetup("onsite"))
	assert.Equal(t, WorkSetupOnsite, NormalizeWorkSetup(""))
	assert.Equal(t, WorkSetupOnsite, NormalizeWorkSetup("office"))
}

func TestEmbeddingText(t *testing.T) {
	j := &Job{
		Title:        "Backend Engineer",
		Description:  "Build APIs",
		SkillsNeeded: []kernel.Skill{"Go", "SQL"},
		Location:     "Lima",
		WorkSetup:    WorkSetupHybrid,
	}

	want := "Title: Backend Engineer\nSummary: Build APIs\nSkills: Go, SQL\nLocation: Lima\nWorkSetup: hybrid"
	assert.Equal(t, want, j.EmbeddingText())

	j.Summary = "Own the API layer"
	assert.Contains(t, j.EmbeddingText(), "Summary: Own the API layer\n")
}

func TestSummaryFallbackIsTruncated(t *testing.T) {
	j := &Job{Description: kernel.JobDescription(strings.Repeat("é", 400))}
	assert.Equal(t, SummaryFallbackLength, len([]rune(j.SummaryOrDescription())))
}

func TestOwnership(t *testing.T) {
	j := &Job{CompanyID: "co-1"}
	assert.True(t, j.IsOwnedBy("co-1"))
	assert.False(t, j.IsOwnedBy("co-2"))
	assert.False(t, j.HasEmbedding())
}
