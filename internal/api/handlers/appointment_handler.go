package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bookwell/backend/internal/api/middleware"
	"github.com/bookwell/backend/internal/domain/entities"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

// BookingService defines the interface for booking operations
type BookingService interface {
	Book(ctx context.Context, clientID, providerID string, requestedDate time.Time) (*entities.Appointment, error)
	ListForClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error)
}

// CancellationService defines the interface for cancellation operations
type CancellationService interface {
	Cancel(ctx context.Context, appointmentID, requesterID string) (*entities.Appointment, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	booking      BookingService
	cancellation CancellationService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(booking BookingService, cancellation CancellationService) *AppointmentHandler {
	return &AppointmentHandler{
		booking:      booking,
		cancellation: cancellation,
	}
}

type bookRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
}

// Book handles POST /api/appointments
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.ProviderID == "" || req.Date == "" {
		respondWithError(w, http.StatusBadRequest, "provider_id and date are required")
		return
	}

	// Malformed timestamps fail here, before the core is reached.
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date format (use RFC3339)")
		return
	}

	appointment, err := h.booking.Book(r.Context(), callerID, req.ProviderID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = parsed
	}

	appointments, err := h.booking.ListForClient(r.Context(), callerID, page)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if appointments == nil {
		appointments = []*entities.Appointment{}
	}

	respondWithJSON(w, http.StatusOK, appointments)
}

// Cancel handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	appointmentID := r.PathValue("id")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	appointment, err := h.cancellation.Cancel(r.Context(), appointmentID, callerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// respondWithAppError maps error kinds onto HTTP statuses.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	message := "internal server error"
	status := http.StatusInternalServerError

	if !errors.As(err, &appErr) {
		respondWithError(w, status, message)
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation,
		apperrors.ErrorTypePastDate,
		apperrors.ErrorTypeSlotUnavailable,
		apperrors.ErrorTypeAlreadyCanceled:
		status = http.StatusBadRequest
		message = appErr.Message
	case apperrors.ErrorTypeSelfBooking,
		apperrors.ErrorTypeInvalidProvider,
		apperrors.ErrorTypePermissionDenied,
		apperrors.ErrorTypeCancelWindow:
		status = http.StatusUnauthorized
		message = appErr.Message
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
		message = appErr.Message
	case apperrors.ErrorTypeStoreUnavailable:
		status = http.StatusServiceUnavailable
		message = "service temporarily unavailable"
	case apperrors.ErrorTypeQueueUnavailable:
		status = http.StatusBadGateway
		message = appErr.Message
	}

	respondWithError(w, status, message)
}
