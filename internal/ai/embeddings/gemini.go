package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/observability"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-embedding-001"

// GeminiGenerator creates embeddings with the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator configured for the Gemini API backend
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateEmbedding(ctx context.Context, text string) (_ kernel.Embedding, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, embedding.ErrEmptyText()
	}

	ctx, span := observability.StartEmbeddingSpan(ctx, ProviderGemini, g.model)
	defer func() { observability.EndSpan(span, err) }()

	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, embedding.ErrGenerationFailed(err).WithDetail("provider", ProviderGemini)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, embedding.ErrEmptyResponse().WithDetail("provider", ProviderGemini)
	}

	return kernel.Embedding(resp.Embeddings[0].Values), nil
}
