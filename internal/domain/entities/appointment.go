package entities

import (
	"time"

	"github.com/bookwell/backend/internal/domain/schedule"
)

// Appointment represents a booked appointment between a client and a provider.
// Date is always aligned to the start of an hour; CanceledAt is nil while the
// appointment is active and set exactly once on cancellation.
type Appointment struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	ProviderID string     `json:"provider_id" db:"provider_id"`
	Date       time.Time  `json:"date" db:"date"`
	CanceledAt *time.Time `json:"canceled_at,omitempty" db:"canceled_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`

	// Resolved associations, populated when loaded with includes.
	Client   *User `json:"client,omitempty" db:"-"`
	Provider *User `json:"provider,omitempty" db:"-"`
}

// Canceled reports whether the appointment has been canceled.
func (a *Appointment) Canceled() bool {
	return a.CanceledAt != nil
}

// Past reports whether the appointment time has already passed. Derived on
// demand, never stored.
func (a *Appointment) Past(now time.Time) bool {
	return schedule.IsPast(a.Date, now)
}

// Cancelable reports whether the appointment can still be canceled at now.
func (a *Appointment) Cancelable(now time.Time) bool {
	return schedule.IsCancelable(a.Date, now)
}
