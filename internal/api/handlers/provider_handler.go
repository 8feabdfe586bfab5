package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bookwell/backend/internal/domain/entities"
)

// ProviderDirectory defines the interface for the provider listing
type ProviderDirectory interface {
	List(ctx context.Context) ([]entities.ProviderSummary, error)
}

// ProviderHandler handles provider directory requests
type ProviderHandler struct {
	directory ProviderDirectory
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(directory ProviderDirectory) *ProviderHandler {
	return &ProviderHandler{
		directory: directory,
	}
}

// List handles GET /api/providers
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.directory.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, providers)
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}
