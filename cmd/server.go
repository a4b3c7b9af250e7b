package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Abraxas-365/relaymatch/pkg/fiberx"
	"github.com/Abraxas-365/relaymatch/pkg/iam/user/userapi"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/relaymatch/recruitment/job/jobapi"
	"github.com/Abraxas-365/relaymatch/recruitment/matching/matchingapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	logx.Info("Starting Relay API Server...")

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Initialize Dependency Container
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	// 2. In-process worker when the queue lives in memory
	workerDone := make(chan error, 1)
	if cfg.Worker.UseMemoryQueue {
		w, err := container.NewWorker()
		if err != nil {
			return err
		}
		go func() { workerDone <- w.Run(ctx) }()
	} else {
		close(workerDone)
	}

	app := newApp(container)

	// 3. Start Server with Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		serverErr <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case <-ctx.Done():
		logx.Info("Shutting down server...")
	case err := <-serverErr:
		stop()
		if err != nil {
			logx.Errorf("Server error: %v", err)
		}
	}

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	stop()
	if err := <-workerDone; err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorf("Embedding worker stopped: %v", err)
	}

	logx.Info("Server exited")
	return nil
}

func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Relay Match API",
		DisableStartupMessage: true,
		ErrorHandler:          fiberx.ErrorHandler,
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(container.Config.Server.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		if size, err := container.Queue.Size(c.Context()); err == nil {
			status["queue_size"] = size
		}
		return c.JSON(status)
	})

	// Accounts: /auth/register, /auth/login, /auth/me
	userapi.RegisterRoutes(app, container.UserHandlers, container.UnifiedAuthMiddleware)

	// Matches are registered before the entity groups so the static
	// segments win over /:id
	matchingapi.RegisterRoutes(app, container.MatchingHandlers, container.UnifiedAuthMiddleware)

	// Jobs: /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.UnifiedAuthMiddleware)

	// Candidates: /api/candidates
	candidateapi.RegisterRoutes(app, container.CandidateHandlers, container.UnifiedAuthMiddleware)

	return app
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
