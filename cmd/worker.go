package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the embedding worker that turns queued candidate text into vectors",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWorker(cmd.Context())
	},
}

func runWorker(ctx context.Context) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	if cfg.Worker.UseMemoryQueue {
		return errors.New("worker.use_memory_queue is set; the queue lives inside `relay serve`, run the worker there")
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	w, err := container.NewWorker()
	if err != nil {
		return err
	}

	logx.Infof("Embedding worker started (pool=%d, queue=%s)", cfg.Worker.PoolSize, cfg.Redis.Queue)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stats := w.Stats()
	logx.Infof("Embedding worker exited: processed=%d failed=%d dropped=%d", stats.Processed, stats.Failed, stats.Dropped)
	return nil
}
