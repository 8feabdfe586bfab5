package repositories

import (
	"context"
	"time"

	"github.com/bookwell/backend/internal/domain/entities"
)

// ClientPageSize is the page size for a client's appointment listing.
const ClientPageSize = 20

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create inserts a new appointment. The store enforces uniqueness of the
	// (provider_id, date) pair among non-canceled rows; a conflicting insert
	// fails with the slot-unavailable kind.
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment with its client and provider resolved
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// FindActiveSlot retrieves the non-canceled appointment occupying the
	// (providerID, date) slot, or nil when the slot is free
	FindActiveSlot(ctx context.Context, providerID string, date time.Time) (*entities.Appointment, error)

	// Cancel sets canceled_at on an active appointment. It fails with the
	// already-canceled kind when canceled_at is set, so the transition stays
	// one-way.
	Cancel(ctx context.Context, id string, canceledAt time.Time) error

	// ListActiveByClient retrieves a page of the client's upcoming
	// non-canceled appointments ordered by date. Pages are 1-based.
	ListActiveByClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error)
}
