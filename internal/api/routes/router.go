package routes

import (
	"net/http"

	"github.com/bookwell/backend/internal/api/handlers"
	"github.com/bookwell/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler *handlers.AppointmentHandler
	providerHandler    *handlers.ProviderHandler
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	providerHandler *handlers.ProviderHandler,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		appointmentHandler: appointmentHandler,
		providerHandler:    providerHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.List)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.Book)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.Cancel)

	r.mux.HandleFunc("GET /api/providers", r.providerHandler.List)

	var handler http.Handler = r.mux
	handler = middleware.CallerIdentity(handler)
	handler = middleware.LoggingMiddleware(handler)

	return handler
}
