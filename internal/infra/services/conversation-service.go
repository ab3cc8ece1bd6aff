package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	repo "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/repository"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/metrics"
	memory "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/repository"
)

const (
	// Prior calls folded into the returning-customer framing.
	priorCallLimit = 3

	// Fire-and-forget persistence gets its own deadline since the request
	// context is gone by the time it runs.
	persistTimeout = 10 * time.Second

	genericSystemPrompt = "You are a helpful AI phone receptionist. Be polite and concise, " +
		"find out what the caller needs and collect their name and a callback number."
)

// ConversationService persists per-call message history and cross-call lead
// records, holding session state in a bounded in-process cache so a storage
// outage never fails a live call.
type ConversationService struct {
	MessageRepository repo.Repository[entities.TurnMessage]
	LeadRepository    repo.Repository[entities.LeadRecord]
	Sessions          *memory.SessionCache
	Logger            *logger.Logger
}

func NewConversationService(
	messageRepository repo.Repository[entities.TurnMessage],
	leadRepository repo.Repository[entities.LeadRecord],
	sessions *memory.SessionCache,
	logger *logger.Logger,
) *ConversationService {
	return &ConversationService{
		MessageRepository: messageRepository,
		LeadRepository:    leadRepository,
		Sessions:          sessions,
		Logger:            logger,
	}
}

// LoadOrCreate returns the working session for a call. The session cache is
// consulted first so lead state carries across turns; on a cache miss the
// durable store rebuilds the history. When the store is unreachable the call
// proceeds on a generic, non-personalized session.
func (cs *ConversationService) LoadOrCreate(ctx context.Context, business entities.Business, callSID, callerNumber string) *entities.ConversationSession {
	session := &entities.ConversationSession{
		BusinessID:   business.ID,
		CallSID:      callSID,
		CallerNumber: callerNumber,
	}

	if cached := cs.Sessions.Get(session.Key()); cached != nil {
		return cached
	}

	if cs.MessageRepository == nil {
		return cs.degradedSession(session)
	}

	history, err := cs.MessageRepository.FindRecent(ctx, repo.MessagesCollection,
		repo.Filter{"phone_number": callerNumber, "business_id": business.ID}, "created_at", 60)
	if err != nil {
		cs.Logger.Warn(fmt.Sprintf("Durable store unavailable for call %s, serving from memory: %v", callSID, err))
		return cs.degradedSession(session)
	}

	currentTurns, priorCalls := partitionHistory(history, callSID)

	session.Append(entities.RoleSystem, buildSystemPrompt(business, priorCalls))
	session.Messages = append(session.Messages, currentTurns...)
	session.UpdatedAt = time.Now()

	cs.Sessions.Put(session.Key(), session)
	return session
}

func (cs *ConversationService) degradedSession(session *entities.ConversationSession) *entities.ConversationSession {
	metrics.FallbackSessionsTotal.Inc()
	session.Degraded = true
	session.Append(entities.RoleSystem, genericSystemPrompt)
	session.UpdatedAt = time.Now()
	cs.Sessions.Put(session.Key(), session)
	return session
}

// Save refreshes the cached session and appends the new turn messages to the
// durable store. Persistence never blocks the response path: failures are
// logged and the turn proceeds without durability.
func (cs *ConversationService) Save(session *entities.ConversationSession, newMessages []entities.Message) {
	session.UpdatedAt = time.Now()
	cs.Sessions.Put(session.Key(), session)

	if cs.MessageRepository == nil || session.Degraded {
		return
	}

	docs := make([]entities.TurnMessage, 0, len(newMessages))
	for _, m := range newMessages {
		docs = append(docs, entities.TurnMessage{
			CallSID:     session.CallSID,
			BusinessID:  session.BusinessID,
			PhoneNumber: session.CallerNumber,
			Role:        m.Role,
			Text:        m.Text,
			CreatedAt:   m.Timestamp,
		})
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				cs.Logger.Error(fmt.Sprintf("Recovered from panic: %v", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		for _, doc := range docs {
			if _, err := cs.MessageRepository.Create(ctx, repo.MessagesCollection, doc); err != nil {
				cs.Logger.Error(fmt.Sprintf("Failed to persist message for call %s: %v", doc.CallSID, err))
			}
		}
	}()
}

// UpsertLead replaces or inserts the cross-call lead record for a phone
// number. Idempotent: repeating the same lead leaves the stored score
// unchanged. Failures are logged and swallowed.
func (cs *ConversationService) UpsertLead(phoneNumber, businessID, callSID string, lead entities.LeadInfo) {
	if cs.LeadRepository == nil {
		return
	}

	record := entities.LeadRecord{
		PhoneNumber: phoneNumber,
		BusinessID:  businessID,
		Lead:        lead,
		LastCallSID: callSID,
		LastContact: time.Now(),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				cs.Logger.Error(fmt.Sprintf("Recovered from panic: %v", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		filter := repo.Filter{"phone_number": phoneNumber, "business_id": businessID}
		if _, err := cs.LeadRepository.Upsert(ctx, repo.LeadsCollection, filter, record); err != nil {
			cs.Logger.Error(fmt.Sprintf("Failed to upsert lead for %s: %v", phoneNumber, err))
		}
	}()
}

// RecentLeads returns the newest lead records for the dashboard.
func (cs *ConversationService) RecentLeads(ctx context.Context, limit int64) ([]entities.LeadRecord, error) {
	if cs.LeadRepository == nil {
		return nil, fmt.Errorf("lead store unavailable")
	}
	return cs.LeadRepository.FindRecent(ctx, repo.LeadsCollection, repo.Filter{}, "last_contact", limit)
}

// RecentMessages returns the newest conversation turns for the dashboard.
func (cs *ConversationService) RecentMessages(ctx context.Context, limit int64) ([]entities.TurnMessage, error) {
	if cs.MessageRepository == nil {
		return nil, fmt.Errorf("message store unavailable")
	}
	return cs.MessageRepository.FindRecent(ctx, repo.MessagesCollection, repo.Filter{}, "created_at", limit)
}

// Stats aggregates the dashboard counts from the queried records.
func (cs *ConversationService) Stats(leads []entities.LeadRecord, messages []entities.TurnMessage) dto.DashboardStats {
	stats := dto.DashboardStats{
		TotalLeads:         len(leads),
		TotalConversations: countCalls(messages),
		ServiceCounts:      make(map[string]int),
	}

	scoreSum := 0
	for _, lead := range leads {
		scoreSum += lead.Lead.QualificationScore
		if lead.Lead.HasEmergency {
			stats.EmergencyCount++
		}
		if lead.Lead.QualificationScore >= 75 {
			stats.HighScoreCount++
		}
		if lead.Lead.ServiceType != "" {
			stats.ServiceCounts[lead.Lead.ServiceType]++
		}
	}
	if len(leads) > 0 {
		stats.AverageScore = float64(scoreSum) / float64(len(leads))
	}

	return stats
}

// partitionHistory splits a newest-first history query into this call's turns
// (restored to chronological order) and a summary of prior calls.
func partitionHistory(history []entities.TurnMessage, callSID string) ([]entities.Message, []entities.TurnMessage) {
	var current []entities.Message
	var prior []entities.TurnMessage

	priorCallSIDs := map[string]bool{}
	for _, doc := range history {
		if doc.CallSID == callSID {
			current = append(current, entities.Message{Role: doc.Role, Text: doc.Text, Timestamp: doc.CreatedAt})
			continue
		}
		if len(priorCallSIDs) < priorCallLimit || priorCallSIDs[doc.CallSID] {
			priorCallSIDs[doc.CallSID] = true
			prior = append(prior, doc)
		}
	}

	// FindRecent is newest first; the prompt wants chronological order.
	for i, j := 0, len(current)-1; i < j; i, j = i+1, j-1 {
		current[i], current[j] = current[j], current[i]
	}

	return current, prior
}

func buildSystemPrompt(business entities.Business, priorCalls []entities.TurnMessage) string {
	template := TemplateFor(business.Industry)

	var b strings.Builder
	fmt.Fprintf(&b, template.PromptFragment, business.CompanyName)

	if len(business.Services) > 0 {
		fmt.Fprintf(&b, " Services offered: %s.", strings.Join(business.Services, ", "))
	}
	if business.Schedule.WeekdayOpen != "" {
		fmt.Fprintf(&b, " Hours: weekdays %s-%s, weekends %s-%s.",
			business.Schedule.WeekdayOpen, business.Schedule.WeekdayClose,
			business.Schedule.WeekendOpen, business.Schedule.WeekendClose)
	}
	if len(priorCalls) > 0 {
		b.WriteString(" This caller has reached us before; greet them as a returning customer. Recent history:")
		for _, doc := range priorCalls {
			fmt.Fprintf(&b, " [%s] %s", doc.Role, doc.Text)
		}
	}
	b.WriteString(" Keep answers under two sentences; this is a phone call.")

	return b.String()
}

func countCalls(messages []entities.TurnMessage) int {
	seen := map[string]bool{}
	for _, m := range messages {
		seen[m.CallSID] = true
	}
	return len(seen)
}
