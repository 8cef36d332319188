package queue

import (
	"github.com/hibiken/asynq"
)

// NewClient builds the asynq client used by services to enqueue
// background work (image cleanup after hard deletes).
func NewClient(redisAddr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
}
