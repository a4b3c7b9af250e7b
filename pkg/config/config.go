package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AI       AIConfig       `mapstructure:"ai"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Matching MatchingConfig `mapstructure:"matching"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN renders the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Queue    string `mapstructure:"queue"`
}

type AIConfig struct {
	// Provider selects the embedding backend: "openai" or "gemini"
	Provider       string `mapstructure:"provider"`
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	ChatModel      string `mapstructure:"chat_model"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	Issuer          string        `mapstructure:"issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type WeightsConfig struct {
	Semantic   float64 `mapstructure:"semantic"`
	Skills     float64 `mapstructure:"skills"`
	Preference float64 `mapstructure:"preference"`
}

type MatchingConfig struct {
	Weights         WeightsConfig `mapstructure:"weights"`
	DefaultPageSize int           `mapstructure:"default_page_size"`
	MaxPageSize     int           `mapstructure:"max_page_size"`
}

type WorkerConfig struct {
	PoolSize       int           `mapstructure:"pool_size"`
	PollTimeout    time.Duration `mapstructure:"poll_timeout"`
	DelayedTick    time.Duration `mapstructure:"delayed_tick"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	BaseBackoff    time.Duration `mapstructure:"base_backoff"`
	UseMemoryQueue bool          `mapstructure:"use_memory_queue"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	ServiceName  string  `mapstructure:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// SetDefaults registers a default for every key so env-only setups unmarshal fully
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "relay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.queue", "relay:embeddings")

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.openai_api_key", "")
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.embedding_model", "")
	v.SetDefault("ai.chat_model", "gpt-4o-mini")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "relay")
	v.SetDefault("auth.access_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.refresh_token_ttl", 30*24*time.Hour)

	v.SetDefault("matching.weights.semantic", 0.6)
	v.SetDefault("matching.weights.skills", 0.3)
	v.SetDefault("matching.weights.preference", 0.1)
	v.SetDefault("matching.default_page_size", 20)
	v.SetDefault("matching.max_page_size", 100)

	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.poll_timeout", 5*time.Second)
	v.SetDefault("worker.delayed_tick", 30*time.Second)
	v.SetDefault("worker.max_attempts", 3)
	v.SetDefault("worker.base_backoff", 10*time.Second)
	v.SetDefault("worker.use_memory_queue", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("tracing.service_name", "relay")
	v.SetDefault("tracing.otlp_endpoint", "")
	v.SetDefault("tracing.sample_rate", 1.0)
}

// New returns a viper instance with defaults and RELAY_* env binding
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from an optional file and the environment.
// An empty path means environment and defaults only.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper unmarshals an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Auth.JWTSecret == "" {
		warnings = append(warnings, "auth.jwt_secret is empty, tokens will be signed with an insecure development key")
	}

	switch c.AI.Provider {
	case "openai":
		if c.AI.OpenAIAPIKey == "" {
			warnings = append(warnings, "ai provider 'openai' is configured but openai_api_key is empty")
		}
	case "gemini":
		if c.AI.GeminiAPIKey == "" {
			warnings = append(warnings, "ai provider 'gemini' is configured but gemini_api_key is empty")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("unknown ai provider '%s'", c.AI.Provider))
	}

	w := c.Matching.Weights
	if w.Semantic < 0 || w.Skills < 0 || w.Preference < 0 {
		warnings = append(warnings, "matching weights must not be negative")
	}
	if sum := w.Semantic + w.Skills + w.Preference; math.Abs(sum-1) > 1e-6 {
		warnings = append(warnings, fmt.Sprintf("matching weights sum to %.3f, scores will not span 0..100", sum))
	}

	if c.Matching.DefaultPageSize < 1 {
		warnings = append(warnings, fmt.Sprintf("matching.default_page_size %d is below 1", c.Matching.DefaultPageSize))
	}
	if c.Matching.MaxPageSize < c.Matching.DefaultPageSize {
		warnings = append(warnings, fmt.Sprintf("matching.max_page_size %d is smaller than default_page_size %d",
			c.Matching.MaxPageSize, c.Matching.DefaultPageSize))
	}

	if c.Worker.PoolSize < 1 {
		warnings = append(warnings, fmt.Sprintf("worker.pool_size %d is below 1", c.Worker.PoolSize))
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		warnings = append(warnings, fmt.Sprintf("tracing.sample_rate %.2f is outside [0, 1]", c.Tracing.SampleRate))
	}

	return warnings
}
