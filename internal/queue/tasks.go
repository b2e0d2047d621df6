package queue

import (
	"encoding/json"

	"github.com/moojpayam/api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAuditCleanup purges audit log rows past retention.
	TaskAuditCleanup = constants.TaskAuditLogCleanup
)

// AuditCleanupPayload is the audit sweep task payload. The sweep reads its
// cutoffs from configuration, so the payload stays empty for now.
type AuditCleanupPayload struct{}

// NewAuditCleanupTask creates an audit sweep task.
func NewAuditCleanupTask(payload AuditCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditCleanup, body), nil
}
