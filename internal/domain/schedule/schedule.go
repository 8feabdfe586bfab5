// Package schedule holds the pure time-window rules of the booking domain.
// Everything here is a total function over well-formed timestamps; malformed
// input is rejected at the HTTP boundary before reaching this package.
package schedule

import "time"

// CancellationNotice is the minimum lead time required to cancel an
// appointment.
const CancellationNotice = 2 * time.Hour

// Clock supplies the current time. Services receive one explicitly so tests
// can pin it; production wiring passes time.Now.
type Clock func() time.Time

// HourStart truncates t to the start of its wall-clock hour. All bookings are
// normalized to this hourly grid, so (provider, HourStart(date)) identifies a
// slot.
func HourStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// IsPast reports whether t is strictly before now.
func IsPast(t, now time.Time) bool {
	return t.Before(now)
}

// IsCancelable reports whether an appointment at date may still be canceled
// at now. The window closes exactly CancellationNotice before the
// appointment: at the boundary cancellation is already denied.
func IsCancelable(date, now time.Time) bool {
	return now.Before(date.Add(-CancellationNotice))
}
