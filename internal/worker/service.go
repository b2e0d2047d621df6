package worker

import (
	"context"
	"errors"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/queue"

	"github.com/hibiken/asynq"
)

const auditCleanupInterval = 24 * time.Hour

// Service runs the asynq consumer plus the retention ticker.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer and the daily retention sweep.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.AuditService != nil {
		go s.runAuditCleanupLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runAuditCleanupLoop enqueues a retention sweep at startup and then once a
// day. The sweep itself runs through the queue so a multi-node deployment
// does not run it concurrently everywhere.
func (s *Service) runAuditCleanupLoop(ctx context.Context) {
	runOnce := func() {
		if s.consumer.QueueClient.Enabled() {
			if err := s.consumer.QueueClient.EnqueueAuditCleanup(); err != nil {
				logger.Warnw("worker_audit_cleanup_enqueue_failed", "error", err)
			}
			return
		}
		// No broker: sweep inline.
		if _, err := s.consumer.AuditService.Cleanup(time.Now()); err != nil {
			logger.Warnw("worker_audit_cleanup_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(auditCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
