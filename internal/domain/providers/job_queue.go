package providers

import (
	"context"

	"github.com/bookwell/backend/internal/domain/entities"
)

// JobQueue is the durable dispatcher for background work. Enqueued jobs
// survive process restarts and are delivered at least once to a separate
// worker; the worker itself is outside this core.
type JobQueue interface {
	// Enqueue durably records a job and returns its id. A nil error means the
	// job is persisted at least as durably as the primary store.
	Enqueue(ctx context.Context, kind entities.JobKind, payload any) (string, error)

	// Close releases the queue's resources
	Close() error
}
