package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/provider"
	"github.com/moojpayam/api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register attaches the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAuditCleanup, c.handleAuditCleanup)
}

func (c *Consumer) handleAuditCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AuditCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_audit_cleanup_unmarshal_failed", "error", err)
		return err
	}
	removed, err := c.AuditService.Cleanup(time.Now())
	if err != nil {
		logger.Warnw("worker_audit_cleanup_failed", "error", err)
		return err
	}
	logger.Infow("worker_audit_cleanup_done", "removed", removed)
	return nil
}
