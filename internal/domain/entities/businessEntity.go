package entities

import "time"

// Industry keys a business to its prompt template and keyword sets.
type Industry string

const (
	IndustryHVAC        Industry = "hvac"
	IndustryPlumbing    Industry = "plumbing"
	IndustryElectrical  Industry = "electrical"
	IndustryRoofing     Industry = "roofing"
	IndustryLandscaping Industry = "landscaping"
	IndustryGeneric     Industry = "generic"
)

type Schedule struct {
	WeekdayOpen  string `json:"weekday_open" bson:"weekday_open"`
	WeekdayClose string `json:"weekday_close" bson:"weekday_close"`
	WeekendOpen  string `json:"weekend_open" bson:"weekend_open"`
	WeekendClose string `json:"weekend_close" bson:"weekend_close"`
}

// AIConfig is the per-tenant assistant configuration editable from the
// business dashboard.
type AIConfig struct {
	Greeting          string `json:"greeting" bson:"greeting"`
	VoiceStyle        string `json:"voice_style" bson:"voice_style"`
	ForwardingNumber  string `json:"forwarding_number" bson:"forwarding_number"`
	ForwardAfterHours bool   `json:"forward_after_hours" bson:"forward_after_hours"`
}

// Business is one tenant of the voice agent. Records are created and updated
// outside the call path; the call path only ever reads them.
type Business struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	CompanyName  string    `json:"company_name" bson:"company_name"`
	Industry     Industry  `json:"industry" bson:"industry"`
	PhoneNumbers []string  `json:"phone_numbers" bson:"phone_numbers"`
	Services     []string  `json:"services" bson:"services"`
	Schedule     Schedule  `json:"schedule" bson:"schedule"`
	AIConfig     AIConfig  `json:"ai_config" bson:"ai_config"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// IndustryTemplate carries the static per-industry prompt fragments. The
// company-name placeholder in PromptFragment and GreetingTemplate is "%s".
type IndustryTemplate struct {
	Key               Industry
	PromptFragment    string
	EmergencyKeywords []string
	GreetingTemplate  string
}
