package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	Iservices "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/services"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

// BusinessHandlers serves the tenant configuration API. Reads and updates of
// the assistant config require the bearer token; the by-number lookup is
// unauthenticated because Twilio resolution at call time uses it.
type BusinessHandlers struct {
	Logger          *logger.Logger
	Token           string
	BusinessService Iservices.IBusinessService
}

func NewBusinessHandlers(logger *logger.Logger, token string, businessService Iservices.IBusinessService) *BusinessHandlers {
	return &BusinessHandlers{Logger: logger, Token: token, BusinessService: businessService}
}

// ByNumber resolves a phone number to its tenant record.
func (bh *BusinessHandlers) ByNumber(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		http.Error(w, "Missing number parameter", http.StatusBadRequest)
		return
	}

	business, err := bh.BusinessService.FindByNumber(r.Context(), number)
	if err != nil {
		http.Error(w, "Business not found", http.StatusNotFound)
		return
	}

	bh.writeJSON(w, business)
}

// GetConfig returns the assistant configuration for a tenant.
func (bh *BusinessHandlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	if !bh.authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	business, err := bh.BusinessService.FindByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Business not found", http.StatusNotFound)
		return
	}

	bh.writeJSON(w, business.AIConfig)
}

// UpdateConfig replaces the assistant configuration for a tenant.
func (bh *BusinessHandlers) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	if !bh.authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var cfg entities.AIConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	id := mux.Vars(r)["id"]
	business, err := bh.BusinessService.UpdateAIConfig(r.Context(), id, cfg)
	if err != nil {
		bh.Logger.Error(fmt.Sprintf("Failed to update config for business %s: %v", id, err))
		http.Error(w, "Failed to update configuration", http.StatusInternalServerError)
		return
	}

	bh.writeJSON(w, business.AIConfig)
}

func (bh *BusinessHandlers) authorized(r *http.Request) bool {
	if bh.Token == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ") == bh.Token && header != ""
}

func (bh *BusinessHandlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		bh.Logger.Error(fmt.Sprintf("Failed to encode JSON response: %v", err))
	}
}
