package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Matching.Weights.Semantic)
	assert.Equal(t, 0.3, cfg.Matching.Weights.Skills)
	assert.Equal(t, 0.1, cfg.Matching.Weights.Preference)
	assert.Equal(t, 20, cfg.Matching.DefaultPageSize)
	assert.Equal(t, 100, cfg.Matching.MaxPageSize)
	assert.Equal(t, 3, cfg.Worker.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Worker.PollTimeout)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relay.yaml")
	content := `
server:
  port: "9000"
ai:
  provider: gemini
  gemini_api_key: from-file
matching:
  default_page_size: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("RELAY_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("RELAY_MATCHING_MAX_PAGE_SIZE", "50")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "from-file", cfg.AI.GeminiAPIKey)
	assert.Equal(t, 10, cfg.Matching.DefaultPageSize)
	assert.Equal(t, 50, cfg.Matching.MaxPageSize)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "relay", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=relay sslmode=disable", d.DSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Auth.JWTSecret = "x"
		cfg.AI.OpenAIAPIKey = "k"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"clean", func(*Config) {}, ""},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"gemini without key", func(c *Config) { c.AI.Provider = "gemini" }, "gemini_api_key"},
		{"unknown provider", func(c *Config) { c.AI.Provider = "cohere" }, "unknown ai provider"},
		{"weights off", func(c *Config) { c.Matching.Weights.Skills = 0.5 }, "sum to"},
		{"negative weight", func(c *Config) { c.Matching.Weights.Preference = -0.1 }, "negative"},
		{"page bounds", func(c *Config) { c.Matching.MaxPageSize = 5 }, "max_page_size"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			warnings := cfg.Validate()
			if tt.want == "" {
				assert.Empty(t, warnings)
				return
			}
			require.NotEmpty(t, warnings)
			assert.True(t, slices.ContainsFunc(warnings, func(w string) bool {
				return strings.Contains(w, tt.want)
			}), "warnings %v should mention %q", warnings, tt.want)
		})
	}
}
