package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/services"
)

// Fixed wire messages. Upstream failure detail deliberately stays out
// of the client-facing message.
const (
	msgMissingFields  = "Missing required fields in request body."
	msgNotConfigured  = "Server error: Gemini API Key not configured."
	msgEmptyResponse  = "AI returned an empty response."
	msgUpstreamFailed = "Failed to generate AI response. Check server logs."
)

type GenerateHandler struct {
	service  *services.GenerateService
	validate *validator.Validate
}

func NewGenerateHandler(service *services.GenerateService) *GenerateHandler {
	return &GenerateHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgMissingFields})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgMissingFields})
		return
	}

	text, err := h.service.Generate(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateResponse{Text: text})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.NotConfiguredError:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgNotConfigured})
	case *services.EmptyResponseError:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgEmptyResponse})
	case *services.UpstreamError:
		log.Printf("[%s] Gemini call failed: %v", r.Header.Get("X-Request-ID"), e.Err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgUpstreamFailed})
	default:
		log.Printf("[%s] unexpected error: %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgUpstreamFailed})
	}
}
