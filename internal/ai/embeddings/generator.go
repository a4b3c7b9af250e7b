package embeddings

import (
	"context"
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/observability"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultOpenAIModel = openai.EmbeddingModelTextEmbedding3Small

// OpenAIGenerator creates embeddings with the OpenAI embeddings endpoint
type OpenAIGenerator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIGenerator creates a new embeddings generator; an empty model uses text-embedding-3-small
func NewOpenAIGenerator(apiKey, model string, opts ...option.RequestOption) *OpenAIGenerator {
	client := openai.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	m := openai.EmbeddingModel(strings.TrimSpace(model))
	if m == "" {
		m = DefaultOpenAIModel
	}

	return &OpenAIGenerator{
		client: &client,
		model:  m,
	}
}

// GenerateEmbedding creates an embedding vector for text
func (g *OpenAIGenerator) GenerateEmbedding(ctx context.Context, text string) (_ kernel.Embedding, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, embedding.ErrEmptyText()
	}

	ctx, span := observability.StartEmbeddingSpan(ctx, ProviderOpenAI, string(g.model))
	defer func() { observability.EndSpan(span, err) }()

	// Send as array with single element (works consistently)
	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: g.model,
	})
	if err != nil {
		return nil, embedding.ErrGenerationFailed(err).WithDetail("provider", ProviderOpenAI)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, embedding.ErrEmptyResponse().WithDetail("provider", ProviderOpenAI)
	}

	return toFloat32(resp.Data[0].Embedding), nil
}

func toFloat32(values []float64) kernel.Embedding {
	out := make(kernel.Embedding, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
