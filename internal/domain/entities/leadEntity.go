package entities

import "time"

// Urgency is the single ordered urgency scale shared by the analyzer, the
// session lead aggregate and the prosody selection.
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
	UrgencyCritical  Urgency = "critical"
)

var urgencyRank = map[Urgency]int{
	UrgencyNormal:    0,
	UrgencyHigh:      1,
	UrgencyEmergency: 2,
	UrgencyCritical:  3,
}

// Rank returns the position of u on the ordered scale. Unknown values rank
// as normal.
func (u Urgency) Rank() int {
	return urgencyRank[u]
}

// MaxUrgency returns the higher of a and b on the ordered scale.
func MaxUrgency(a, b Urgency) Urgency {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// LeadInfo is the mutable lead aggregate carried on a conversation session.
// QualificationScore is always recomputed from the other fields, never set
// independently of them.
type LeadInfo struct {
	HasEmergency       bool    `json:"has_emergency" bson:"has_emergency"`
	ServiceType        string  `json:"service_type,omitempty" bson:"service_type,omitempty"`
	Urgency            Urgency `json:"urgency" bson:"urgency"`
	ContactName        string  `json:"contact_name,omitempty" bson:"contact_name,omitempty"`
	QualificationScore int     `json:"qualification_score" bson:"qualification_score"`
}

// LeadSignal is the per-utterance analysis result before it is merged into a
// session's LeadInfo.
type LeadSignal struct {
	HasEmergency bool
	ServiceType  string
	Urgency      Urgency
	ContactName  string
}

// LeadRecord is the cross-call lead snapshot, one per caller phone number per
// tenant.
type LeadRecord struct {
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	BusinessID  string    `json:"business_id" bson:"business_id"`
	Lead        LeadInfo  `json:"lead" bson:"lead"`
	LastCallSID string    `json:"last_call_sid" bson:"last_call_sid"`
	LastContact time.Time `json:"last_contact" bson:"last_contact"`
}
