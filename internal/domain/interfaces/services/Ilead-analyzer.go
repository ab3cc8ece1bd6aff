package Iservices

import (
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

// ILeadAnalyzer scores a single utterance against a tenant's industry
// keyword sets. Pure function of (text, business).
type ILeadAnalyzer interface {
	Analyze(text string, business entities.Business) entities.LeadSignal
	Score(lead entities.LeadInfo) int
}
