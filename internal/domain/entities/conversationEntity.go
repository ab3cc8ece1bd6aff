package entities

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role      `json:"role" bson:"role"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// TurnMessage is the durable per-turn document. CreatedAt carries the
// collection's TTL index (about one year).
type TurnMessage struct {
	CallSID     string    `json:"call_sid" bson:"call_sid"`
	BusinessID  string    `json:"business_id" bson:"business_id"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Role        Role      `json:"role" bson:"role"`
	Text        string    `json:"text" bson:"text"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ConversationSession is the per-call working state assembled on every turn.
// The durable and in-memory fallback paths both produce this shape, so the
// rest of the pipeline does not care which one served the request.
type ConversationSession struct {
	BusinessID   string    `json:"business_id" bson:"business_id"`
	CallSID      string    `json:"call_sid" bson:"call_sid"`
	CallerNumber string    `json:"caller_number" bson:"caller_number"`
	Messages     []Message `json:"messages" bson:"messages"`
	Lead         LeadInfo  `json:"lead" bson:"lead"`
	Degraded     bool      `json:"-" bson:"-"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Key identifies a session. Untenanted legacy calls fall back to the call SID
// alone.
func (s *ConversationSession) Key() string {
	if s.BusinessID == "" {
		return s.CallSID
	}
	return s.BusinessID + ":" + s.CallSID
}

// Append adds one message to the in-memory view of the session.
func (s *ConversationSession) Append(role Role, text string) {
	s.Messages = append(s.Messages, Message{Role: role, Text: text, Timestamp: time.Now()})
}

// MergeSignal folds a per-utterance signal into the session lead aggregate.
// The emergency flag and service type only ever move from unset to set within
// a call; urgency only ever moves up the ordered scale.
func (s *ConversationSession) MergeSignal(sig LeadSignal) {
	if sig.HasEmergency {
		s.Lead.HasEmergency = true
	}
	if s.Lead.ServiceType == "" && sig.ServiceType != "" {
		s.Lead.ServiceType = sig.ServiceType
	}
	if s.Lead.ContactName == "" && sig.ContactName != "" {
		s.Lead.ContactName = sig.ContactName
	}
	s.Lead.Urgency = MaxUrgency(s.Lead.Urgency, sig.Urgency)
}
