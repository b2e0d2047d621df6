package app

import (
	"context"
	"errors"
	"time"

	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/provider"
)

const statusInterval = 60 * time.Second

// StatusService logs a heartbeat with session and OTP counts once a minute,
// giving the operator a cheap view of live state without an admin call.
type StatusService struct {
	name      string
	container *provider.Container
	stop      chan struct{}
}

// NewStatusService creates the heartbeat service.
func NewStatusService(container *provider.Container) *StatusService {
	return &StatusService{
		name:      "status",
		container: container,
		stop:      make(chan struct{}),
	}
}

// Name returns the service name.
func (s *StatusService) Name() string {
	if s == nil || s.name == "" {
		return "status"
	}
	return s.name
}

// Start runs the heartbeat loop until stopped.
func (s *StatusService) Start(ctx context.Context) error {
	if s == nil || s.container == nil {
		return errors.New("status service not initialized")
	}
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-ticker.C:
			logger.Infow("status_heartbeat",
				"active_sessions", s.container.AuthService.ActiveSessions(),
				"pending_otps", s.container.OtpService.PendingCount(),
			)
		}
	}
}

// Stop ends the heartbeat loop.
func (s *StatusService) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	return nil
}
