package embeddings

import (
	"context"
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/config"
	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	g, err := NewGenerator(ctx, config.AIConfig{Provider: "OpenAI", OpenAIAPIKey: "sk-test"})
	require.NoError(t, err)
	openaiGen, ok := g.(*OpenAIGenerator)
	require.True(t, ok)
	assert.Equal(t, DefaultOpenAIModel, openaiGen.model)

	g, err = NewGenerator(ctx, config.AIConfig{Provider: "gemini", GeminiAPIKey: "key", EmbeddingModel: "text-embedding-004"})
	require.NoError(t, err)
	geminiGen, ok := g.(*GeminiGenerator)
	require.True(t, ok)
	assert.Equal(t, "text-embedding-004", geminiGen.model)

	_, err = NewGenerator(ctx, config.AIConfig{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewGenerator(ctx, config.AIConfig{Provider: "groq"})
	assert.True(t, errx.Is(err, embedding.CodeUnknownProvider))
}

func TestGenerateEmbeddingRejectsEmptyText(t *testing.T) {
	g := NewOpenAIGenerator("sk-test", "")

	_, err := g.GenerateEmbedding(context.Background(), "   ")
	assert.True(t, errx.Is(err, embedding.CodeEmptyText))
}

func TestToFloat32(t *testing.T) {
	assert.Equal(t, []float32{0.5, -1}, []float32(toFloat32([]float64{0.5, -1})))
}
