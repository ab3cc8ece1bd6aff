package services

import (
	"regexp"
	"strings"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

// serviceMatchers is the ordered (service type, keywords) table. First match
// wins, ties broken by declaration order. A multi-topic utterance therefore
// classifies as whichever service appears first here; known limitation,
// carried on purpose.
var serviceMatchers = []struct {
	service  string
	keywords []string
}{
	{"installation", []string{"new ", "install", "replacement", "replace", "upgrade", "quote"}},
	{"heating", []string{"furnace", "boiler", "no heat", "heating"}},
	{"cooling", []string{"air condition", "a/c", "cooling", "freon"}},
	{"repair", []string{"repair", "fix", "broken", "not working", "noise", "leak", "strange"}},
	{"maintenance", []string{"maintenance", "tune up", "tune-up", "inspection", "checkup"}},
}

// criticalKeywords force the critical urgency tier for specific industries.
var criticalKeywords = map[entities.Industry][]string{
	entities.IndustryElectrical: {"sparks", "burning", "shock", "fire"},
	entities.IndustryHVAC:       {"carbon monoxide"},
	entities.IndustryPlumbing:   {"sewage"},
}

var highUrgencyKeywords = []string{"today", "asap", "as soon as possible", "right away", "right now"}

// namePattern captures one or two words after a self-introduction. There is
// no dictionary validation, so "I'm calling about" extracts "calling"; false
// positives are accepted.
var namePattern = regexp.MustCompile(`(?i)\b(?:my name is|i am|i'm)\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`)

// Qualification score weights. The score is always a pure function of the
// other LeadInfo fields.
const (
	scoreBase        = 30
	scoreServiceType = 25
	scoreEmergency   = 30
	scoreContactName = 20
	scoreMax         = 100
)

var urgencyScore = map[entities.Urgency]int{
	entities.UrgencyNormal:    0,
	entities.UrgencyHigh:      10,
	entities.UrgencyEmergency: 15,
	entities.UrgencyCritical:  20,
}

type LeadAnalyzer struct {
	Logger *logger.Logger
}

func NewLeadAnalyzer(logger *logger.Logger) *LeadAnalyzer {
	return &LeadAnalyzer{Logger: logger}
}

// Analyze inspects one utterance against the tenant's industry keyword sets.
// Pure function of (text, business); no side effects.
func (la *LeadAnalyzer) Analyze(text string, business entities.Business) entities.LeadSignal {
	lowered := strings.ToLower(text)
	template := TemplateFor(business.Industry)

	signal := entities.LeadSignal{Urgency: entities.UrgencyNormal}

	for _, keyword := range template.EmergencyKeywords {
		if strings.Contains(lowered, keyword) {
			signal.HasEmergency = true
			break
		}
	}

	for _, matcher := range serviceMatchers {
		for _, keyword := range matcher.keywords {
			if strings.Contains(lowered, keyword) {
				signal.ServiceType = matcher.service
				break
			}
		}
		if signal.ServiceType != "" {
			break
		}
	}

	if containsAny(lowered, highUrgencyKeywords) {
		signal.Urgency = entities.UrgencyHigh
	}
	if signal.HasEmergency {
		signal.Urgency = entities.UrgencyEmergency
	}
	if containsAny(lowered, criticalKeywords[business.Industry]) {
		signal.Urgency = entities.UrgencyCritical
	}

	// Match against the original casing so extracted names keep theirs.
	if m := namePattern.FindStringSubmatch(text); m != nil {
		signal.ContactName = m[1]
	}

	return signal
}

// Score derives the 0-100 qualification score from the lead fields.
// Deterministic: recomputing from the same LeadInfo always yields the same
// value.
func (la *LeadAnalyzer) Score(lead entities.LeadInfo) int {
	score := scoreBase
	if lead.ServiceType != "" {
		score += scoreServiceType
	}
	if lead.HasEmergency {
		score += scoreEmergency
	}
	if lead.ContactName != "" {
		score += scoreContactName
	}
	score += urgencyScore[lead.Urgency]

	if score > scoreMax {
		score = scoreMax
	}
	return score
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
