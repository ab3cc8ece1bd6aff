package repository

// Collection names in the voice-agent database.
const (
	MessagesCollection   = "conversation_messages"
	LeadsCollection      = "leads"
	BusinessesCollection = "businesses"
)
