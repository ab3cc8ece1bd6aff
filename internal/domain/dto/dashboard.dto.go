package dto

// DashboardStats are the aggregate counts rendered at the top of the lead
// dashboard, recomputed by full re-query on every request.
type DashboardStats struct {
	TotalLeads         int
	TotalConversations int
	EmergencyCount     int
	HighScoreCount     int
	AverageScore       float64
	ServiceCounts      map[string]int
}
