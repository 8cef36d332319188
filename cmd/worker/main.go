package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/config"
	"bookrealm-backend/internal/domains/book/job"
	"bookrealm-backend/internal/infrastructure/queue"
	"bookrealm-backend/internal/shared"
	"bookrealm-backend/pkg/container"
	"bookrealm-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.New(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build container")
	}
	defer c.Close()

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueBook: 6,
				"default":        4,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypePurgeExpiredBooks, job.NewPurgeExpiredHandler(c.BookService))
	mux.Handle(shared.TypeDeleteBookImage, job.NewDeleteImageHandler(c.Storage))

	scheduler := queue.NewScheduler(cfg.Redis, cfg.Job)
	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled jobs")
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Scheduler stopped")
		}
	}()

	go func() {
		log.Info().Msg("Worker started")
		if err := server.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("Worker stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker")
	scheduler.Shutdown()
	server.Shutdown()
}
