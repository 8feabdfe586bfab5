package entities

import "time"

// JobKind identifies the handler for a queued background job.
type JobKind string

// JobKindCancellationEmail is processed by the mail worker, which emails the
// provider about a canceled appointment.
const JobKindCancellationEmail JobKind = "cancellation-email"

// CancellationEmail is the payload enqueued when an appointment is canceled.
// Names and emails are resolved up front so the worker needs no store access.
type CancellationEmail struct {
	AppointmentID string    `json:"appointment_id"`
	Date          time.Time `json:"date"`
	CanceledAt    time.Time `json:"canceled_at"`
	ProviderName  string    `json:"provider_name"`
	ProviderEmail string    `json:"provider_email"`
	ClientName    string    `json:"client_name"`
}
