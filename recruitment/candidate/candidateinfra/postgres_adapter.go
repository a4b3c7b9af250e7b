package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type candidateModel struct {
	ID           string          `db:"id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	LinkedInURL  string          `db:"linkedin_url"`
	Skills       pq.StringArray  `db:"skills"`
	WorkHistory  json.RawMessage `db:"work_history"`
	Education    json.RawMessage `db:"education"`
	Conversation json.RawMessage `db:"conversation"`
	Ikigai       json.RawMessage `db:"ikigai"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type embeddingModel struct {
	CandidateID string          `db:"candidate_id"`
	Source      string          `db:"source"`
	Embedding   pgvector.Vector `db:"embedding"`
}

const candidateColumns = `
	id, user_id, name, linkedin_url, skills,
	work_history, education, conversation, ikigai,
	created_at, updated_at
`

func (m *candidateModel) toEntity() (*candidate.Candidate, error) {
	c := &candidate.Candidate{
		ID:          kernel.CandidateID(m.ID),
		UserID:      kernel.UserID(m.UserID),
		Name:        m.Name,
		LinkedInURL: m.LinkedInURL,
		Skills:      kernel.SkillsFromStrings(m.Skills),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	fields := []struct {
		raw  json.RawMessage
		dst  any
		name string
	}{
		{m.WorkHistory, &c.WorkHistory, "work_history"},
		{m.Education, &c.Education, "education"},
		{m.Conversation, &c.Conversation, "conversation"},
		{m.Ikigai, &c.Ikigai, "ikigai"},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", f.name, err)
		}
	}

	return c, nil
}

func fromEntity(c *candidate.Candidate) (*candidateModel, error) {
	marshal := func(v any, name string) (json.RawMessage, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		return b, nil
	}

	work, err := marshal(orEmpty(c.WorkHistory), "work_history")
	if err != nil {
		return nil, err
	}
	edu, err := marshal(orEmpty(c.Education), "education")
	if err != nil {
		return nil, err
	}
	conv, err := marshal(orEmpty(c.Conversation), "conversation")
	if err != nil {
		return nil, err
	}
	ikigai, err := marshal(c.Ikigai, "ikigai")
	if err != nil {
		return nil, err
	}

	return &candidateModel{
		ID:           c.ID.String(),
		UserID:       c.UserID.String(),
		Name:         c.Name,
		LinkedInURL:  c.LinkedInURL,
		Skills:       pq.StringArray(kernel.SkillsToStrings(c.Skills)),
		WorkHistory:  work,
		Education:    edu,
		Conversation: conv,
		Ikigai:       ikigai,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidates (` + candidateColumns + `) VALUES (
			:id, :user_id, :name, :linkedin_url, :skills,
			:work_history, :education, :conversation, :ikigai,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return candidate.ErrCandidateAlreadyExists()
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// Update updates the profile fields of an existing candidate
func (r *PostgresCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}
	model.ID = id.String()

	query := `
		UPDATE candidates SET
			name = :name,
			linkedin_url = :linkedin_url,
			skills = :skills,
			work_history = :work_history,
			education = :education,
			conversation = :conversation,
			ikigai = :ikigai,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	return nil
}

// GetByID retrieves a candidate with all of its embeddings
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	var model candidateModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, fmt.Errorf("failed to get candidate by id: %w", err)
	}

	return r.withEmbeddings(ctx, &model)
}

// GetByUserID retrieves the candidate owned by a user account
func (r *PostgresCandidateRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE user_id = $1`

	var model candidateModel
	if err := r.db.GetContext(ctx, &model, query, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("user_id", userID.String())
		}
		return nil, fmt.Errorf("failed to get candidate by user id: %w", err)
	}

	return r.withEmbeddings(ctx, &model)
}

// ListAll retrieves every candidate with embeddings, oldest first
func (r *PostgresCandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at ASC, id ASC`

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	var rows []embeddingModel
	embQuery := `
		SELECT candidate_id, source, embedding
		FROM candidate_embeddings
		ORDER BY candidate_id, id
	`
	if err := r.db.SelectContext(ctx, &rows, embQuery); err != nil {
		return nil, fmt.Errorf("failed to list candidate embeddings: %w", err)
	}

	grouped := make(map[string][]embeddingModel, len(models))
	for _, row := range rows {
		grouped[row.CandidateID] = append(grouped[row.CandidateID], row)
	}

	entities := make([]candidate.Candidate, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		entity.Embeddings = assemble(grouped[models[i].ID])
		entities = append(entities, *entity)
	}

	return entities, nil
}

// AppendEmbedding adds one vector to the source collection
func (r *PostgresCandidateRepository) AppendEmbedding(ctx context.Context, id kernel.CandidateID, source candidate.EmbeddingSource, vector kernel.Embedding) error {
	if !source.IsValid() {
		return candidate.ErrInvalidSource().WithDetail("source", string(source))
	}
	if vector.IsEmpty() {
		return candidate.ErrInvalidEmbedding()
	}

	query := `
		INSERT INTO candidate_embeddings (candidate_id, source, embedding, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, id.String(), string(source), pgvector.NewVector(vector), time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return fmt.Errorf("failed to append %s embedding: %w", source, err)
	}

	return nil
}

// ReplaceEmbeddings swaps the whole source collection in one transaction
func (r *PostgresCandidateRepository) ReplaceEmbeddings(ctx context.Context, id kernel.CandidateID, source candidate.EmbeddingSource, vectors []kernel.Embedding) error {
	if !source.IsValid() {
		return candidate.ErrInvalidSource().WithDetail("source", string(source))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`, id.String()); err != nil {
		return fmt.Errorf("failed to check candidate existence: %w", err)
	}
	if !exists {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM candidate_embeddings WHERE candidate_id = $1 AND source = $2`,
		id.String(), string(source),
	); err != nil {
		return fmt.Errorf("failed to clear %s embeddings: %w", source, err)
	}

	now := time.Now()
	for _, v := range vectors {
		if v.IsEmpty() {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO candidate_embeddings (candidate_id, source, embedding, created_at) VALUES ($1, $2, $3, $4)`,
			id.String(), string(source), pgvector.NewVector(v), now,
		); err != nil {
			return fmt.Errorf("failed to insert %s embedding: %w", source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit embeddings: %w", err)
	}
	return nil
}

func (r *PostgresCandidateRepository) withEmbeddings(ctx context.Context, model *candidateModel) (*candidate.Candidate, error) {
	entity, err := model.toEntity()
	if err != nil {
		return nil, err
	}

	var rows []embeddingModel
	query := `
		SELECT candidate_id, source, embedding
		FROM candidate_embeddings
		WHERE candidate_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &rows, query, model.ID); err != nil {
		return nil, fmt.Errorf("failed to load candidate embeddings: %w", err)
	}

	entity.Embeddings = assemble(rows)
	return entity, nil
}

func assemble(rows []embeddingModel) candidate.Embeddings {
	var e candidate.Embeddings
	for _, row := range rows {
		v := kernel.Embedding(row.Embedding.Slice())
		switch candidate.EmbeddingSource(row.Source) {
		case candidate.SourceProfile:
			e.Profile = append(e.Profile, v)
		case candidate.SourceChat:
			e.Chat = append(e.Chat, v)
		case candidate.SourceIkigai:
			e.Ikigai = append(e.Ikigai, v)
		}
	}
	return e
}
