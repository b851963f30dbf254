package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"exterior_chat_backend/internal/leadsink"
	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.AsynqQueue)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := leadsink.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize lead forward worker", "error", err)
		panic("failed to initialize lead forward worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("worker error", "error", err)
		panic("worker error: " + err.Error())
	}

	log.Info("worker stopped")
}
