package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookwell/backend/internal/api/handlers"
	"github.com/bookwell/backend/internal/api/routes"
	"github.com/bookwell/backend/internal/domain/entities"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Book(ctx context.Context, clientID, providerID string, requestedDate time.Time) (*entities.Appointment, error) {
	args := m.Called(ctx, clientID, providerID, requestedDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *mockBookingService) ListForClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error) {
	args := m.Called(ctx, clientID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

type mockCancellationService struct {
	mock.Mock
}

func (m *mockCancellationService) Cancel(ctx context.Context, appointmentID, requesterID string) (*entities.Appointment, error) {
	args := m.Called(ctx, appointmentID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

type mockProviderDirectory struct {
	mock.Mock
}

func (m *mockProviderDirectory) List(ctx context.Context) ([]entities.ProviderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProviderSummary), args.Error(1)
}

func newTestServer(booking *mockBookingService, cancellation *mockCancellationService, directory *mockProviderDirectory) http.Handler {
	appointmentHandler := handlers.NewAppointmentHandler(booking, cancellation)
	providerHandler := handlers.NewProviderHandler(directory)
	return routes.NewRouter(appointmentHandler, providerHandler).SetupRoutes()
}

func TestAppointmentHandler_Book(t *testing.T) {
	t.Run("books and returns 201", func(t *testing.T) {
		booking := new(mockBookingService)
		server := newTestServer(booking, new(mockCancellationService), new(mockProviderDirectory))

		date := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
		booking.On("Book", mock.Anything, "client-1", "provider-1", mock.MatchedBy(func(d time.Time) bool {
			return d.Equal(time.Date(2024, 6, 10, 14, 23, 0, 0, time.UTC))
		})).Return(&entities.Appointment{ID: "appt-1", UserID: "client-1", ProviderID: "provider-1", Date: date}, nil)

		body := `{"provider_id":"provider-1","date":"2024-06-10T14:23:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
		req.Header.Set("X-User-ID", "client-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got entities.Appointment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "appt-1", got.ID)
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		server := newTestServer(new(mockBookingService), new(mockCancellationService), new(mockProviderDirectory))

		req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed dates before reaching the core", func(t *testing.T) {
		booking := new(mockBookingService)
		server := newTestServer(booking, new(mockCancellationService), new(mockProviderDirectory))

		body := `{"provider_id":"provider-1","date":"next tuesday"}`
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
		req.Header.Set("X-User-ID", "client-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		booking.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps slot unavailable to 400", func(t *testing.T) {
		booking := new(mockBookingService)
		server := newTestServer(booking, new(mockCancellationService), new(mockProviderDirectory))

		booking.On("Book", mock.Anything, "client-1", "provider-1", mock.Anything).
			Return(nil, apperrors.NewSlotUnavailableError("appointment date is not available"))

		body := `{"provider_id":"provider-1","date":"2024-06-10T14:23:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
		req.Header.Set("X-User-ID", "client-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "appointment date is not available")
	})
}

func TestAppointmentHandler_Cancel(t *testing.T) {
	t.Run("maps cancellation window to 401", func(t *testing.T) {
		cancellation := new(mockCancellationService)
		server := newTestServer(new(mockBookingService), cancellation, new(mockProviderDirectory))

		cancellation.On("Cancel", mock.Anything, "appt-1", "client-1").
			Return(nil, apperrors.NewCancelWindowError("appointments can only be canceled two hours in advance"))

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments/appt-1", nil)
		req.Header.Set("X-User-ID", "client-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("maps queue failure to 502", func(t *testing.T) {
		cancellation := new(mockCancellationService)
		server := newTestServer(new(mockBookingService), cancellation, new(mockProviderDirectory))

		canceled := time.Now()
		cancellation.On("Cancel", mock.Anything, "appt-1", "client-1").
			Return(&entities.Appointment{ID: "appt-1", CanceledAt: &canceled},
				apperrors.NewQueueUnavailableError("cancellation email could not be enqueued", nil))

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments/appt-1", nil)
		req.Header.Set("X-User-ID", "client-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestAppointmentHandler_List(t *testing.T) {
	booking := new(mockBookingService)
	server := newTestServer(booking, new(mockCancellationService), new(mockProviderDirectory))

	booking.On("ListForClient", mock.Anything, "client-1", 1).
		Return([]*entities.Appointment{{ID: "appt-1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	req.Header.Set("X-User-ID", "client-1")
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "appt-1")
}

func TestProviderHandler_List(t *testing.T) {
	directory := new(mockProviderDirectory)
	server := newTestServer(new(mockBookingService), new(mockCancellationService), directory)

	directory.On("List", mock.Anything).Return([]entities.ProviderSummary{
		{ID: "provider-1", Name: "Paula", AvatarURL: "http://localhost:3333/files/abc-paula.png"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paula")
}
