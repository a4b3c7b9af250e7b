package job

import (
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job posting
type CreateJobRequest struct {
	Title       kernel.JobTitle       `json:"title"`
	Description kernel.JobDescription `json:"description"`
}

// ExtractedJob - structured fields pulled out of a job description
type ExtractedJob struct {
	SkillsNeeded []string `json:"skillsNeeded"`
	Seniority    string   `json:"seniority"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	WorkSetup    string   `json:"workSetup"`
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID           kernel.JobID          `json:"id"`
	CompanyID    kernel.UserID         `json:"company_id"`
	Title        kernel.JobTitle       `json:"title"`
	Description  kernel.JobDescription `json:"description"`
	Summary      string                `json:"summary"`
	SkillsNeeded []kernel.Skill        `json:"skills_needed"`
	Seniority    Seniority             `json:"seniority"`
	Location     string                `json:"location"`
	WorkSetup    WorkSetup             `json:"work_setup"`
	HasEmbedding bool                  `json:"has_embedding"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// CreateJobResponse - the stored job plus what the extractor produced
type CreateJobResponse struct {
	Job       JobResponse  `json:"job"`
	Extracted ExtractedJob `json:"extracted"`
}

// ToResponse converts the entity into its API shape
func (j *Job) ToResponse() JobResponse {
	skills := j.SkillsNeeded
	if skills == nil {
		skills = []kernel.Skill{}
	}
	return JobResponse{
		ID:           j.ID,
		CompanyID:    j.CompanyID,
		Title:        j.Title,
		Description:  j.Description,
		Summary:      j.Summary,
		SkillsNeeded: skills,
		Seniority:    j.Seniority,
		Location:     j.Location,
		WorkSetup:    j.WorkSetup,
		HasEmbedding: j.HasEmbedding(),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
