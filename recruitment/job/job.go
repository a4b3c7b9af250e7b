package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// Seniority is the normalized experience level of a posting
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// WorkSetup is where the work happens
type WorkSetup string

const (
	WorkSetupRemote WorkSetup = "remote"
	WorkSetupHybrid WorkSetup = "hybrid"
	WorkSetupOnsite WorkSetup = "onsite"
)

// SummaryFallbackLength bounds the description prefix used when no summary was extracted
const SummaryFallbackLength = 300

type Job struct {
	ID           kernel.JobID          `db:"id" json:"id"`
	CompanyID    kernel.UserID         `db:"company_id" json:"company_id"`
	Title        kernel.JobTitle       `db:"title" json:"title"`
	Description  kernel.JobDescription `db:"description" json:"description"`
	Summary      string                `db:"summary" json:"summary"`
	SkillsNeeded []kernel.Skill        `db:"skills_needed" json:"skills_needed"`
	Seniority    Seniority             `db:"seniority" json:"seniority"`
	Location     string                `db:"location" json:"location"`
	WorkSetup    WorkSetup             `db:"work_setup" json:"work_setup"`
	Embedding    kernel.Embedding      `db:"-" json:"-"`
	CreatedAt    time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks if the job was posted by the given company account
func (j *Job) IsOwnedBy(companyID kernel.UserID) bool {
	return j.CompanyID == companyID
}

// HasEmbedding reports whether the job can take part in semantic matching
func (j *Job) HasEmbedding() bool {
	return !j.Embedding.IsEmpty()
}

// SummaryOrDescription returns the extracted summary, or a prefix of the raw description
func (j *Job) SummaryOrDescription() string {
	if j.Summary != "" {
		return j.Summary
	}
	return truncateRunes(string(j.Description), SummaryFallbackLength)
}

// EmbeddingText builds the text embedded as the job vector
func (j *Job) EmbeddingText() string {
	return strings.Join([]string{
		"Title: " + string(j.Title),
		"Summary: " + j.SummaryOrDescription(),
		"Skills: " + strings.Join(kernel.SkillsToStrings(j.SkillsNeeded), ", "),
		"Location: " + j.Location,
		"WorkSetup: " + string(j.WorkSetup),
	}, "\n")
}

// NormalizeSeniority maps free-form levels onto junior, mid or senior
func NormalizeSeniority(raw string) Seniority {
	level := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case level == "":
		return SeniorityMid
	case strings.Contains(level, "junior"), strings.Contains(level, "jr"):
		return SeniorityJunior
	case strings.Contains(level, "senior"), strings.Contains(level, "sr"),
		strings.Contains(level, "lead"), strings.Contains(level, "staff"):
		return SenioritySenior
	default:
		return SeniorityMid
	}
}

// NormalizeWorkSetup maps free-form values onto remote, hybrid or onsite
func NormalizeWorkSetup(raw string) WorkSetup {
	setup := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(setup, "remote"):
		return WorkSetupRemote
	case strings.Contains(setup, "hybrid"):
		return WorkSetupHybrid
	default:
		return WorkSetupOnsite
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
