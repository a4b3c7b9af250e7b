package matching

import (
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
)

// JobMatch - one recommended job for a candidate
type JobMatch struct {
	JobID        kernel.JobID          `json:"job_id"`
	Title        kernel.JobTitle       `json:"title"`
	Description  kernel.JobDescription `json:"description"`
	SkillsNeeded []kernel.Skill        `json:"skills_needed"`
	Seniority    job.Seniority         `json:"seniority"`
	Location     string                `json:"location"`
	WorkSetup    job.WorkSetup         `json:"work_setup"`
	Score        MatchScore            `json:"score"`
	CreatedAt    time.Time             `json:"created_at"`
}

// CandidateMatch - one ranked candidate for a job
type CandidateMatch struct {
	CandidateID kernel.CandidateID     `json:"candidate_id"`
	Name        string                 `json:"name"`
	Skills      []kernel.Skill         `json:"skills"`
	Ikigai      candidate.IkigaiScores `json:"ikigai"`
	Score       MatchScore             `json:"score"`
}

type PaginatedJobMatches = kernel.Paginated[JobMatch]

type PaginatedCandidateMatches = kernel.Paginated[CandidateMatch]

// NewJobMatch annotates a scored job with its public fields
func NewJobMatch(j job.Job, score MatchScore) JobMatch {
	skills := j.SkillsNeeded
	if skills == nil {
		skills = []kernel.Skill{}
	}
	setup := j.WorkSetup
	if setup == "" {
		setup = job.WorkSetupOnsite
	}
	return JobMatch{
		JobID:        j.ID,
		Title:        j.Title,
		Description:  j.Description,
		SkillsNeeded: skills,
		Seniority:    j.Seniority,
		Location:     j.Location,
		WorkSetup:    setup,
		Score:        score,
		CreatedAt:    j.CreatedAt,
	}
}

// NewCandidateMatch annotates a scored candidate with its public fields
func NewCandidateMatch(c candidate.Candidate, score MatchScore) CandidateMatch {
	skills := c.Skills
	if skills == nil {
		skills = []kernel.Skill{}
	}
	return CandidateMatch{
		CandidateID: c.ID,
		Name:        c.Name,
		Skills:      skills,
		Ikigai:      c.Ikigai,
		Score:       score,
	}
}

// ViewOfCandidate fuses the candidate's embeddings into a scoring view.
// The candidate itself is left untouched.
func ViewOfCandidate(c *candidate.Candidate) CandidateView {
	return CandidateView{
		Skills:     c.Skills,
		Embedding:  Fuse(c.EmbeddingSources()),
		Preference: c.MissionScore(),
	}
}

// ViewOfJob adapts a job for scoring
func ViewOfJob(j *job.Job) JobView {
	return JobView{
		Skills:    j.SkillsNeeded,
		Embedding: j.Embedding,
	}
}
