package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookwell/backend/internal/application/services"
	"github.com/bookwell/backend/internal/domain/entities"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBookingService_Book(t *testing.T) {
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	requested := time.Date(2024, 6, 10, 14, 23, 0, 0, time.UTC)
	slot := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	t.Run("successfully books and notifies the provider", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		users.On("GetByID", mock.Anything, "provider-1").
			Return(&entities.User{ID: "provider-1", Name: "Paula", Provider: true}, nil)
		appointments.On("FindActiveSlot", mock.Anything, "provider-1", slot).Return(nil, nil)
		appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.UserID == "client-1" &&
				a.ProviderID == "provider-1" &&
				a.Date.Equal(slot) &&
				a.CanceledAt == nil &&
				a.ID != ""
		})).Return(nil)
		users.On("GetByID", mock.Anything, "client-1").
			Return(&entities.User{ID: "client-1", Name: "Carol"}, nil)
		notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Notification) bool {
			return n.UserID == "provider-1" &&
				n.Content == "New appointment from Carol on "+services.FormatAppointmentDate(slot)
		})).Return(nil)

		appointment, err := service.Book(context.Background(), "client-1", "provider-1", requested)

		require.NoError(t, err)
		assert.Equal(t, slot, appointment.Date)
		assert.Nil(t, appointment.CanceledAt)
		appointments.AssertExpectations(t)
		users.AssertExpectations(t)
		notifications.AssertExpectations(t)
	})

	t.Run("fails when booking with yourself", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		appointment, err := service.Book(context.Background(), "user-1", "user-1", requested)

		assert.Nil(t, appointment)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSelfBooking))
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("fails when target user is not a provider", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		users.On("GetByID", mock.Anything, "client-2").
			Return(&entities.User{ID: "client-2", Name: "Quinn", Provider: false}, nil)

		appointment, err := service.Book(context.Background(), "client-1", "client-2", requested)

		assert.Nil(t, appointment)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidProvider))
		appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("fails when target user does not exist", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		users.On("GetByID", mock.Anything, "ghost").
			Return(nil, apperrors.NewNotFoundError("user with id ghost not found"))

		_, err := service.Book(context.Background(), "client-1", "ghost", requested)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidProvider))
	})

	t.Run("fails for past dates after hour truncation", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		lateNow := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(lateNow))

		users.On("GetByID", mock.Anything, "provider-1").
			Return(&entities.User{ID: "provider-1", Provider: true}, nil)

		// 14:45 truncates to 14:00, which is before 14:30.
		_, err := service.Book(context.Background(), "client-1", "provider-1",
			time.Date(2024, 6, 10, 14, 45, 0, 0, time.UTC))

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePastDate))
		appointments.AssertNotCalled(t, "FindActiveSlot", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails when the slot is already taken", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		users.On("GetByID", mock.Anything, "provider-1").
			Return(&entities.User{ID: "provider-1", Provider: true}, nil)
		appointments.On("FindActiveSlot", mock.Anything, "provider-1", slot).
			Return(&entities.Appointment{ID: "existing"}, nil)

		_, err := service.Book(context.Background(), "client-1", "provider-1", requested)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSlotUnavailable))
		appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("translates a racing insert conflict into slot unavailable", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		users.On("GetByID", mock.Anything, "provider-1").
			Return(&entities.User{ID: "provider-1", Provider: true}, nil)
		appointments.On("FindActiveSlot", mock.Anything, "provider-1", slot).Return(nil, nil)
		// The pre-check passed but another booking committed first; the store
		// adapter reports the unique violation as slot unavailable.
		appointments.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewSlotUnavailableError("appointment date is not available"))

		_, err := service.Book(context.Background(), "client-1", "provider-1", requested)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSlotUnavailable))
		notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("booking survives a notification write failure", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		service := services.NewBookingService(appointments, users, notifications, fixedClock(now))

		users.On("GetByID", mock.Anything, "provider-1").
			Return(&entities.User{ID: "provider-1", Provider: true}, nil)
		appointments.On("FindActiveSlot", mock.Anything, "provider-1", slot).Return(nil, nil)
		appointments.On("Create", mock.Anything, mock.Anything).Return(nil)
		users.On("GetByID", mock.Anything, "client-1").
			Return(&entities.User{ID: "client-1", Name: "Carol"}, nil)
		notifications.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewStoreUnavailableError("failed to create notification", nil))

		appointment, err := service.Book(context.Background(), "client-1", "provider-1", requested)

		require.NoError(t, err)
		assert.NotNil(t, appointment)
	})
}

func TestBookingService_ListForClient(t *testing.T) {
	appointments := new(MockAppointmentRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	service := services.NewBookingService(appointments, users, notifications, nil)

	expected := []*entities.Appointment{{ID: "a1"}, {ID: "a2"}}
	appointments.On("ListActiveByClient", mock.Anything, "client-1", 2).Return(expected, nil)

	got, err := service.ListForClient(context.Background(), "client-1", 2)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
