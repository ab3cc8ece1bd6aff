package Iservices

import (
	"context"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

// IConversationService is the per-call message history and lead store, with a
// transparent in-memory fallback when the durable store is unreachable.
type IConversationService interface {
	// LoadOrCreate returns the session for this call, seeded with the tenant
	// system prompt and up to three recent prior calls from the same number.
	// The degraded path returns a structurally identical session with a
	// generic prompt and empty history.
	LoadOrCreate(ctx context.Context, business entities.Business, callSID, callerNumber string) *entities.ConversationSession

	// Save appends the session's latest turn messages to the durable store
	// and refreshes the fallback cache. Persistence is fire-and-forget.
	Save(session *entities.ConversationSession, newMessages []entities.Message)

	// UpsertLead replaces or inserts the cross-call lead record for a phone
	// number. Failures are logged and swallowed.
	UpsertLead(phoneNumber, businessID, callSID string, lead entities.LeadInfo)

	// Dashboard reads.
	RecentLeads(ctx context.Context, limit int64) ([]entities.LeadRecord, error)
	RecentMessages(ctx context.Context, limit int64) ([]entities.TurnMessage, error)
	Stats(leads []entities.LeadRecord, messages []entities.TurnMessage) dto.DashboardStats
}
