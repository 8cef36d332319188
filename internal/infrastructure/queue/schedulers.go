package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookrealm-backend/internal/config"
	"bookrealm-backend/internal/shared"
	"bookrealm-backend/pkg/logger"
)

// Scheduler registers the platform's cron jobs with asynq.
type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisCfg config.RedisConfig, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Host,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerPurgeExpiredBooksJob()
}

// The trash sweep recomputes days-left for every soft-deleted book and
// hard-deletes the ones whose retention window has elapsed. Daily is
// enough: expiry is measured in days, not hours.
func (s *Scheduler) registerPurgeExpiredBooksJob() error {
	payload, err := json.Marshal(shared.PurgeExpiredPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeExpiredBooks, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.PurgeCronSpec,
		task,
		asynq.Queue(shared.QueueBook),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PurgeExpiredBooks job", err)
		return err
	}

	logger.Info("✓ Registered PurgeExpiredBooks", map[string]interface{}{
		"cron": s.jobConfig.PurgeCronSpec,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
