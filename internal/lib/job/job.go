// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued through
// asynq.Client and executed by workers run by asynq.Server. The HTTP
// request path only ever enqueues; anything slow or retryable (email,
// currently) happens here.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/config"
	"github.com/forkpoint/forkpoint-service/internal/lib/email"
)

// JobService holds the Asynq client (enqueue) and server (worker
// execution) plus the dependencies handlers use.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	email  *email.Client
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the configured Redis.
// Queue weights give critical tasks most of the worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server. Start
// does not block; workers run on their own goroutines.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskOrderReceipt, j.handleOrderReceiptTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
