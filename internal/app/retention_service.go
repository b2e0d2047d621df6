package app

import (
	"context"
	"errors"
	"time"

	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/provider"
)

const retentionInterval = 24 * time.Hour

// RetentionService runs the audit retention sweep in-process. It covers
// deployments without a queue broker; with one, the worker owns the sweep.
type RetentionService struct {
	name      string
	container *provider.Container
}

// NewRetentionService creates the in-process sweep service.
func NewRetentionService(container *provider.Container) *RetentionService {
	return &RetentionService{name: "retention", container: container}
}

// Name returns the service name.
func (s *RetentionService) Name() string {
	if s == nil || s.name == "" {
		return "retention"
	}
	return s.name
}

// Start sweeps once at startup and then daily.
func (s *RetentionService) Start(ctx context.Context) error {
	if s == nil || s.container == nil {
		return errors.New("retention service not initialized")
	}
	runOnce := func() {
		if _, err := s.container.AuditService.Cleanup(time.Now()); err != nil {
			logger.Warnw("audit_retention_sweep_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(retentionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}

// Stop is a no-op; Start exits with the context.
func (s *RetentionService) Stop(ctx context.Context) error {
	return nil
}
