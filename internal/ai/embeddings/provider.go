package embeddings

import (
	"context"
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/config"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewGenerator picks the embedding backend named by cfg.Provider
func NewGenerator(ctx context.Context, cfg config.AIConfig) (embedding.Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.EmbeddingModel), nil
	case ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	default:
		return nil, embedding.ErrUnknownProvider(cfg.Provider)
	}
}
