package candidate

import (
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// ImportProfileRequest - pasted LinkedIn or résumé text
type ImportProfileRequest struct {
	Text        string `json:"text"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

// ChatRequest - one question for the career coach
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse - the coach answer
type ChatResponse struct {
	Question  string            `json:"question"`
	Answer    string            `json:"answer"`
	Timestamp time.Time         `json:"timestamp"`
	Candidate CandidateResponse `json:"candidate"`
}

// SubmitIkigaiRequest - self-assessment answers
type SubmitIkigaiRequest struct {
	Answers []IkigaiAnswer `json:"answers"`
}

// IkigaiResponse - aggregated scores
type IkigaiResponse struct {
	Scores    IkigaiScores      `json:"scores"`
	Candidate CandidateResponse `json:"candidate"`
}

// EmbeddingStatus - how many vectors each source holds
type EmbeddingStatus struct {
	Profile int `json:"profile"`
	Chat    int `json:"chat"`
	Ikigai  int `json:"ikigai"`
}

// CandidateResponse - DTO for returning candidate data
type CandidateResponse struct {
	ID           kernel.CandidateID `json:"id"`
	UserID       kernel.UserID      `json:"user_id"`
	Name         string             `json:"name"`
	LinkedInURL  string             `json:"linkedin_url,omitempty"`
	Skills       []kernel.Skill     `json:"skills"`
	WorkHistory  []WorkEntry        `json:"work_history"`
	Education    []EducationEntry   `json:"education"`
	Conversation []ChatTurn         `json:"conversation"`
	Ikigai       IkigaiScores       `json:"ikigai"`
	Embeddings   EmbeddingStatus    `json:"embeddings"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToResponse converts the entity into its API shape
func (c *Candidate) ToResponse() CandidateResponse {
	return CandidateResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		LinkedInURL:  c.LinkedInURL,
		Skills:       nonNil(c.Skills),
		WorkHistory:  nonNil(c.WorkHistory),
		Education:    nonNil(c.Education),
		Conversation: nonNil(c.Conversation),
		Ikigai:       c.Ikigai,
		Embeddings: EmbeddingStatus{
			Profile: len(c.Embeddings.Profile),
			Chat:    len(c.Embeddings.Chat),
			Ikigai:  len(c.Embeddings.Ikigai),
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
