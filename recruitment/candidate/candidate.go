package candidate

import (
	"slices"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// EmbeddingSource tags which text a candidate embedding was generated from
type EmbeddingSource string

const (
	SourceProfile EmbeddingSource = "profile" // Imported LinkedIn / résumé text
	SourceChat    EmbeddingSource = "chat"    // One coach question/answer pair
	SourceIkigai  EmbeddingSource = "ikigai"  // Aggregated self-assessment
)

// IsValid checks the source is one we store
func (s EmbeddingSource) IsValid() bool {
	switch s {
	case SourceProfile, SourceChat, SourceIkigai:
		return true
	}
	return false
}

// Appends reports whether new vectors of this source accumulate instead of
// replacing the previous ones
func (s EmbeddingSource) Appends() bool {
	return s == SourceChat
}

type WorkEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	School  string `json:"school"`
	Degree  string `json:"degree"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Current bool   `json:"current"`
}

type ChatTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Embeddings keeps every vector per source. The stored collections are never
// replaced by a fused vector.
type Embeddings struct {
	Profile []kernel.Embedding `json:"profile"`
	Chat    []kernel.Embedding `json:"chat"`
	Ikigai  []kernel.Embedding `json:"ikigai"`
}

// Count returns the total number of stored vectors
func (e Embeddings) Count() int {
	return len(e.Profile) + len(e.Chat) + len(e.Ikigai)
}

// BySource returns the collection stored for source
func (e Embeddings) BySource(source EmbeddingSource) []kernel.Embedding {
	switch source {
	case SourceProfile:
		return e.Profile
	case SourceChat:
		return e.Chat
	case SourceIkigai:
		return e.Ikigai
	}
	return nil
}

type Candidate struct {
	ID           kernel.CandidateID `db:"id" json:"id"`
	UserID       kernel.UserID      `db:"user_id" json:"user_id"`
	Name         string             `db:"name" json:"name"`
	LinkedInURL  string             `db:"linkedin_url" json:"linkedin_url,omitempty"`
	Skills       []kernel.Skill     `db:"skills" json:"skills"`
	WorkHistory  []WorkEntry        `db:"work_history" json:"work_history"`
	Education    []EducationEntry   `db:"education" json:"education"`
	Conversation []ChatTurn         `db:"conversation" json:"conversation"`
	Ikigai       IkigaiScores       `db:"ikigai" json:"ikigai"`
	Embeddings   Embeddings         `db:"-" json:"-"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// EmbeddingSources returns profile, chat and ikigai vectors in that order,
// in a fresh slice so callers can pool them without touching the candidate
func (c *Candidate) EmbeddingSources() []kernel.Embedding {
	out := make([]kernel.Embedding, 0, c.Embeddings.Count())
	out = append(out, c.Embeddings.Profile...)
	out = append(out, c.Embeddings.Chat...)
	out = append(out, c.Embeddings.Ikigai...)
	return out
}

// MissionScore is the preference signal used for ranking
func (c *Candidate) MissionScore() float64 {
	return float64(c.Ikigai.Mission)
}

// HasProfile reports whether a profile has been imported
func (c *Candidate) HasProfile() bool {
	return len(c.Skills) > 0 || len(c.WorkHistory) > 0 || len(c.Education) > 0
}

// ApplyProfile overwrites the extracted profile fields. An empty name keeps
// the current one.
func (c *Candidate) ApplyProfile(p ProfileData) {
	if p.Name != "" {
		c.Name = p.Name
	}
	c.Skills = kernel.SkillsFromStrings(p.Skills)
	c.WorkHistory = slices.Clone(p.WorkHistory)
	c.Education = slices.Clone(p.Education)
	c.UpdatedAt = time.Now()
}

// AddChatTurn records one coach exchange
func (c *Candidate) AddChatTurn(question, answer string) ChatTurn {
	turn := ChatTurn{Question: question, Answer: answer, Timestamp: time.Now()}
	c.Conversation = append(c.Conversation, turn)
	c.UpdatedAt = turn.Timestamp
	return turn
}

// SetIkigai stores the aggregated self-assessment
func (c *Candidate) SetIkigai(scores IkigaiScores) {
	c.Ikigai = scores
	c.UpdatedAt = time.Now()
}

// StoreEmbedding places vector into the collection for source: chat appends,
// profile and ikigai replace
func (c *Candidate) StoreEmbedding(source EmbeddingSource, vector kernel.Embedding) {
	v := vector.Clone()
	switch source {
	case SourceProfile:
		c.Embeddings.Profile = []kernel.Embedding{v}
	case SourceChat:
		c.Embeddings.Chat = append(c.Embeddings.Chat, v)
	case SourceIkigai:
		c.Embeddings.Ikigai = []kernel.Embedding{v}
	}
	c.UpdatedAt = time.Now()
}
