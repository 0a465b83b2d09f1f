package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"gameday-api/core/config"
	"gameday-api/core/constants"
	"gameday-api/core/logger"

	"github.com/hibiken/asynq"
)

// EventConfirmedPayload is the task payload for the one-time confirmation
// email fan-out.
type EventConfirmedPayload struct {
	EventID int `json:"event_id"`
}

// Client enqueues background tasks.
type Client struct {
	inner *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// EnqueueEventConfirmed schedules the confirmation email fan-out for an
// event. Enqueue failure is logged, not returned to the join request path.
func (c *Client) EnqueueEventConfirmed(eventID int) error {
	payload, err := json.Marshal(EventConfirmedPayload{EventID: eventID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(constants.TaskEventConfirmed, payload, asynq.MaxRetry(3))
	info, err := c.inner.Enqueue(task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", constants.TaskEventConfirmed, err)
	}
	logger.Info("Queue:EnqueueEventConfirmed", "event_id", eventID, "task_id", info.ID)
	return nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}

// Server consumes tasks in-process alongside the HTTP server.
type Server struct {
	inner *asynq.Server
	mux   *asynq.ServeMux
}

func NewServer(cfg config.RedisConfig) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)
	return &Server{inner: srv, mux: asynq.NewServeMux()}
}

// HandleEventConfirmed registers the worker for confirmation fan-out.
func (s *Server) HandleEventConfirmed(fn func(ctx context.Context, p EventConfirmedPayload) error) {
	s.mux.HandleFunc(constants.TaskEventConfirmed, func(ctx context.Context, t *asynq.Task) error {
		var payload EventConfirmedPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", constants.TaskEventConfirmed, err)
		}
		return fn(ctx, payload)
	})
}

// Start runs the worker loop in a goroutine.
func (s *Server) Start() error {
	return s.inner.Start(s.mux)
}

func (s *Server) Shutdown() {
	s.inner.Shutdown()
}
