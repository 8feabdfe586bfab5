package repositories

import (
	"context"

	"github.com/bookwell/backend/internal/domain/entities"
)

// UserRepository defines the read interface over user records. User lifecycle
// (signup, profile updates, avatar upload) is owned elsewhere; this core only
// reads.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// ListProviders retrieves all users with the provider capability, with
	// avatars resolved
	ListProviders(ctx context.Context) ([]*entities.User, error)
}

// NotificationRepository is the append-only sink for in-app notifications.
type NotificationRepository interface {
	// Create appends a notification and returns its id
	Create(ctx context.Context, notification *entities.Notification) error
}
