package main

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/relaymatch/internal/ai/embeddings"
	"github.com/Abraxas-365/relaymatch/internal/ai/extractor"
	"github.com/Abraxas-365/relaymatch/pkg/config"
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/userapi"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/Abraxas-365/relaymatch/pkg/observability"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate/candidatesrv"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding/embeddinginfra"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding/worker"
	"github.com/Abraxas-365/relaymatch/recruitment/job/jobapi"
	"github.com/Abraxas-365/relaymatch/recruitment/job/jobinfra"
	"github.com/Abraxas-365/relaymatch/recruitment/job/jobsrv"
	"github.com/Abraxas-365/relaymatch/recruitment/matching"
	"github.com/Abraxas-365/relaymatch/recruitment/matching/matchingapi"
	"github.com/Abraxas-365/relaymatch/recruitment/matching/matchingsrv"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const devJWTSecret = "relay-dev-secret-change-me"

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB      *sqlx.DB
	Redis   *redis.Client
	Queue   embedding.Queue
	Tracing *observability.TracerProvider

	// AI
	Generator embedding.Generator
	Extractor *extractor.Extractor

	// Services
	TokenService     auth.TokenService
	UserService      *usersrv.UserService
	CandidateService *candidatesrv.CandidateService
	JobService       *jobsrv.JobService
	MatchingService  *matchingsrv.MatchingService

	// API Handlers
	UserHandlers      *userapi.Handlers
	CandidateHandlers *candidateapi.Handlers
	JobHandlers       *jobapi.Handlers
	MatchingHandlers  *matchingapi.Handlers

	// Middleware
	UnifiedAuthMiddleware *auth.UnifiedAuthMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initAI(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	// 1. Tracing
	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:  c.Config.Tracing.ServiceName,
		OTLPEndpoint: c.Config.Tracing.OTLPEndpoint,
		SampleRate:   c.Config.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	c.Tracing = tp

	// 2. Database Connection
	dbCfg := c.Config.Database
	db, err := sqlx.Connect("postgres", dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	c.DB = db

	// 3. Embedding queue
	if c.Config.Worker.UseMemoryQueue {
		logx.Warn("Using in-process memory queue, pending embeddings are lost on restart")
		c.Queue = embeddinginfra.NewMemoryQueue()
		return nil
	}

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}
	c.Queue = embeddinginfra.NewRedisQueue(c.Redis, c.Config.Redis.Queue)
	return nil
}

func (c *Container) initAI(ctx context.Context) error {
	generator, err := embeddings.NewGenerator(ctx, c.Config.AI)
	if err != nil {
		return fmt.Errorf("init embedding generator: %w", err)
	}
	c.Generator = generator
	c.Extractor = extractor.New(c.Config.AI.OpenAIAPIKey, c.Config.AI.ChatModel)
	return nil
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)

	// --- Auth ---
	secret := c.Config.Auth.JWTSecret
	if secret == "" {
		secret = devJWTSecret
	}
	c.TokenService = auth.NewJWTService(secret, c.Config.Auth.Issuer, c.Config.Auth.AccessTokenTTL,
		auth.WithRefreshTokenTTL(c.Config.Auth.RefreshTokenTTL))
	passwordSvc := auth.NewBcryptPasswordService(0)

	// --- Domain Services ---
	c.CandidateService = candidatesrv.NewCandidateService(
		candidateRepo,
		c.Extractor,
		c.Extractor,
		c.Queue,
		candidatesrv.WithMaxAttempts(c.Config.Worker.MaxAttempts),
	)
	c.UserService = usersrv.NewUserService(userRepo, passwordSvc, c.TokenService, c.CandidateService)
	c.JobService = jobsrv.NewJobService(jobRepo, c.Extractor, c.Generator)

	w := c.Config.Matching.Weights
	c.MatchingService = matchingsrv.NewMatchingService(
		candidateRepo,
		jobRepo,
		matchingsrv.WithScorer(matching.NewScorer(matching.Weights{
			Semantic:   w.Semantic,
			Skills:     w.Skills,
			Preference: w.Preference,
		})),
		matchingsrv.WithPageSizes(c.Config.Matching.DefaultPageSize, c.Config.Matching.MaxPageSize),
	)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.MatchingHandlers = matchingapi.NewHandlers(
		c.MatchingService,
		c.Config.Matching.DefaultPageSize,
		c.Config.Matching.MaxPageSize,
	)

	// --- Middleware ---
	c.UnifiedAuthMiddleware = auth.NewUnifiedAuthMiddleware(c.TokenService)
}

// NewWorker builds the embedding worker that writes vectors back through the candidate service
func (c *Container) NewWorker() (*worker.Worker, error) {
	wc := c.Config.Worker
	return worker.New(
		c.Queue,
		c.Generator,
		c.CandidateService,
		wc.PoolSize,
		worker.WithPollTimeout(wc.PollTimeout),
		worker.WithDelayedTick(wc.DelayedTick),
		worker.WithBackoff(wc.BaseBackoff, 0),
	)
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
	if c.Tracing != nil {
		if err := c.Tracing.Shutdown(context.Background()); err != nil {
			logx.Warnf("Failed to flush traces: %v", err)
		}
	}
}
