package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/handlers"
)

type Routes struct {
	Mux               *mux.Router
	TwilioHandlers    *handlers.TwilioHandlers
	DashboardHandlers *handlers.DashboardHandlers
	BusinessHandlers  *handlers.BusinessHandlers
}

func NewRoutes(mux *mux.Router, twilioHandlers *handlers.TwilioHandlers, dashboardHandlers *handlers.DashboardHandlers, businessHandlers *handlers.BusinessHandlers) *Routes {
	return &Routes{mux, twilioHandlers, dashboardHandlers, businessHandlers}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/voice/incoming", r.TwilioHandlers.Incoming).Methods(http.MethodPost)
	r.Mux.HandleFunc("/voice/respond", r.TwilioHandlers.Respond).Methods(http.MethodPost)

	r.Mux.HandleFunc("/dashboard", r.DashboardHandlers.Dashboard).Methods(http.MethodGet)

	r.Mux.HandleFunc("/api/business/by-number", r.BusinessHandlers.ByNumber).Methods(http.MethodGet)
	r.Mux.HandleFunc("/api/business/{id}/config", r.BusinessHandlers.GetConfig).Methods(http.MethodGet)
	r.Mux.HandleFunc("/api/business/{id}/config", r.BusinessHandlers.UpdateConfig).Methods(http.MethodPut)

	r.Mux.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
