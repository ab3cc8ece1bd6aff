package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	Iservices "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/services"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

const (
	dashboardLeadLimit    = 25
	dashboardMessageLimit = 50
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Voice Agent Leads</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1a1a2e; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
.stats { display: flex; gap: 2rem; margin-bottom: 2rem; }
.stat { background: #f4f4f8; border-radius: 8px; padding: 1rem 1.5rem; }
.stat b { display: block; font-size: 1.6rem; }
.emergency { color: #c0392b; font-weight: bold; }
</style>
</head>
<body>
<h1>Recent Leads</h1>
<div class="stats">
  <div class="stat"><b>{{.Stats.TotalLeads}}</b>leads</div>
  <div class="stat"><b>{{.Stats.TotalConversations}}</b>conversations</div>
  <div class="stat"><b>{{.Stats.EmergencyCount}}</b>emergencies</div>
  <div class="stat"><b>{{.Stats.HighScoreCount}}</b>high score</div>
  <div class="stat"><b>{{printf "%.1f" .Stats.AverageScore}}</b>avg score</div>
</div>
<table>
<tr><th>Phone</th><th>Name</th><th>Service</th><th>Urgency</th><th>Score</th><th>Last contact</th></tr>
{{range .Leads}}
<tr>
  <td>{{.PhoneNumber}}</td>
  <td>{{.Lead.ContactName}}</td>
  <td>{{.Lead.ServiceType}}</td>
  <td{{if .Lead.HasEmergency}} class="emergency"{{end}}>{{.Lead.Urgency}}</td>
  <td>{{.Lead.QualificationScore}}</td>
  <td>{{.LastContact.Format "2006-01-02 15:04"}}</td>
</tr>
{{end}}
</table>
<h2>Recent Conversation Turns</h2>
<table>
<tr><th>Call</th><th>Role</th><th>Text</th><th>At</th></tr>
{{range .Messages}}
<tr><td>{{.CallSID}}</td><td>{{.Role}}</td><td>{{.Text}}</td><td>{{.CreatedAt.Format "15:04:05"}}</td></tr>
{{end}}
</table>
</body>
</html>`))

type dashboardData struct {
	Stats    dto.DashboardStats
	Leads    []entities.LeadRecord
	Messages []entities.TurnMessage
}

// DashboardHandlers renders the read-only lead report. Pure read side: a
// full re-query of the document store on every request.
type DashboardHandlers struct {
	Logger              *logger.Logger
	ConversationService Iservices.IConversationService
}

func NewDashboardHandlers(logger *logger.Logger, conversationService Iservices.IConversationService) *DashboardHandlers {
	return &DashboardHandlers{Logger: logger, ConversationService: conversationService}
}

func (dh *DashboardHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	leads, err := dh.ConversationService.RecentLeads(r.Context(), dashboardLeadLimit)
	if err != nil {
		dh.Logger.Error(fmt.Sprintf("Failed to load leads for dashboard: %v", err))
		http.Error(w, "Dashboard unavailable", http.StatusServiceUnavailable)
		return
	}

	messages, err := dh.ConversationService.RecentMessages(r.Context(), dashboardMessageLimit)
	if err != nil {
		dh.Logger.Error(fmt.Sprintf("Failed to load messages for dashboard: %v", err))
		http.Error(w, "Dashboard unavailable", http.StatusServiceUnavailable)
		return
	}

	data := dashboardData{
		Stats:    dh.ConversationService.Stats(leads, messages),
		Leads:    leads,
		Messages: messages,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		dh.Logger.Error(fmt.Sprintf("Failed to render dashboard: %v", err))
	}
}
