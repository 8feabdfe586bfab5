package services

import (
	"context"
	"time"

	"github.com/bookwell/backend/internal/domain/entities"
	"github.com/bookwell/backend/internal/domain/providers"
	"github.com/bookwell/backend/internal/domain/repositories"
	"github.com/bookwell/backend/internal/domain/schedule"
	"github.com/bookwell/backend/internal/infrastructure/observability"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

// CancellationService handles appointment cancellation logic
type CancellationService struct {
	appointments repositories.AppointmentRepository
	queue        providers.JobQueue
	now          schedule.Clock
}

// NewCancellationService creates a new cancellation service
func NewCancellationService(
	appointments repositories.AppointmentRepository,
	queue providers.JobQueue,
	now schedule.Clock,
) *CancellationService {
	if now == nil {
		now = time.Now
	}
	return &CancellationService{
		appointments: appointments,
		queue:        queue,
		now:          now,
	}
}

// Cancel cancels an appointment on behalf of requesterID. Only the client who
// booked may cancel, and only while the two-hour window is open. On success a
// cancellation-email job is enqueued with names and emails already resolved.
//
// When the enqueue fails after the cancellation committed, the canceled
// appointment is returned together with a queue-unavailable error: the state
// change is not rolled back and the caller can see the two sides are out of
// sync.
func (s *CancellationService) Cancel(ctx context.Context, appointmentID, requesterID string) (*entities.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.UserID != requesterID {
		return nil, apperrors.NewPermissionDeniedError("you do not have permission to cancel this appointment")
	}

	if appointment.Canceled() {
		return nil, apperrors.NewAlreadyCanceledError("this appointment has already been canceled")
	}

	now := s.now()
	if !appointment.Cancelable(now) {
		return nil, apperrors.NewCancelWindowError("appointments can only be canceled two hours in advance")
	}

	if err := s.appointments.Cancel(ctx, appointmentID, now); err != nil {
		return nil, err
	}
	appointment.CanceledAt = &now
	appointment.UpdatedAt = now

	payload := entities.CancellationEmail{
		AppointmentID: appointment.ID,
		Date:          appointment.Date,
		CanceledAt:    now,
		ProviderName:  appointment.Provider.Name,
		ProviderEmail: appointment.Provider.Email,
		ClientName:    appointment.Client.Name,
	}

	jobID, err := s.queue.Enqueue(ctx, entities.JobKindCancellationEmail, payload)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("appointment_id", appointment.ID).
			Msg("appointment canceled but cancellation email was not enqueued")
		return appointment, apperrors.NewQueueUnavailableError("cancellation email could not be enqueued", err)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("job_id", jobID).
		Msg("appointment canceled")

	return appointment, nil
}
