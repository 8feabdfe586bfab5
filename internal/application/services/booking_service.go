package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/backend/internal/domain/entities"
	"github.com/bookwell/backend/internal/domain/repositories"
	"github.com/bookwell/backend/internal/domain/schedule"
	"github.com/bookwell/backend/internal/infrastructure/observability"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

// BookingService handles appointment booking logic
type BookingService struct {
	appointments  repositories.AppointmentRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	now           schedule.Clock
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointments repositories.AppointmentRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	now schedule.Clock,
) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		appointments:  appointments,
		users:         users,
		notifications: notifications,
		now:           now,
	}
}

// Book books an appointment for clientID with providerID at the hour of
// requestedDate. Checks run in a fixed order, each with its own error kind;
// the store's unique slot index backs the availability pre-check, so a racing
// booking surfaces as the same slot-unavailable kind at insert time.
func (s *BookingService) Book(ctx context.Context, clientID, providerID string, requestedDate time.Time) (*entities.Appointment, error) {
	if providerID == clientID {
		return nil, apperrors.NewSelfBookingError("you can not create an appointment for yourself")
	}

	provider, err := s.users.GetByID(ctx, providerID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewInvalidProviderError("you can only create appointments with providers")
		}
		return nil, err
	}
	if !provider.Provider {
		return nil, apperrors.NewInvalidProviderError("you can only create appointments with providers")
	}

	hourStart := schedule.HourStart(requestedDate)
	now := s.now()

	if schedule.IsPast(hourStart, now) {
		return nil, apperrors.NewPastDateError("past dates are not permitted")
	}

	existing, err := s.appointments.FindActiveSlot(ctx, providerID, hourStart)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewSlotUnavailableError("appointment date is not available")
	}

	appointment := &entities.Appointment{
		ID:         uuid.New().String(),
		UserID:     clientID,
		ProviderID: providerID,
		Date:       hourStart,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifyProvider(ctx, appointment)

	return appointment, nil
}

// ListForClient retrieves a page of the client's upcoming appointments
func (s *BookingService) ListForClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error) {
	return s.appointments.ListActiveByClient(ctx, clientID, page)
}

// notifyProvider appends the in-app notification for a fresh booking. The
// booking is already committed at this point, so a notification failure is
// logged rather than turned into a booking error.
func (s *BookingService) notifyProvider(ctx context.Context, appointment *entities.Appointment) {
	client, err := s.users.GetByID(ctx, appointment.UserID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("appointment_id", appointment.ID).
			Msg("failed to resolve client for booking notification")
		return
	}

	notification := &entities.Notification{
		ID:        uuid.New().String(),
		Content:   fmt.Sprintf("New appointment from %s on %s", client.Name, FormatAppointmentDate(appointment.Date)),
		UserID:    appointment.ProviderID,
		CreatedAt: s.now(),
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("appointment_id", appointment.ID).
			Str("provider_id", appointment.ProviderID).
			Msg("failed to create booking notification")
	}
}

// FormatAppointmentDate renders an appointment time for human-readable
// messages. Locale lives here only, so swapping it is a one-line change.
func FormatAppointmentDate(t time.Time) string {
	return t.Format("Monday, January 2 at 3:04 PM")
}
