package services

import (
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

// industryTemplates is the static per-industry prompt table, compiled in at
// startup and immutable for the process lifetime. The "%s" placeholder is the
// company name.
var industryTemplates = map[entities.Industry]entities.IndustryTemplate{
	entities.IndustryHVAC: {
		Key: entities.IndustryHVAC,
		PromptFragment: "You are the phone receptionist for %s, a heating and cooling company. " +
			"Be warm and efficient. Ask what the caller needs, whether heating or cooling, " +
			"and offer to schedule a technician visit.",
		EmergencyKeywords: []string{"emergency", "no heat", "gas leak", "smell gas", "carbon monoxide", "smoke"},
		GreetingTemplate:  "Thanks for calling %s, your heating and cooling experts. How can I help you today?",
	},
	entities.IndustryPlumbing: {
		Key: entities.IndustryPlumbing,
		PromptFragment: "You are the phone receptionist for %s, a plumbing company. " +
			"Be calm and practical. Find out if water is actively leaking and where, " +
			"then offer to schedule a plumber.",
		EmergencyKeywords: []string{"emergency", "flood", "flooding", "burst", "sewage", "water everywhere"},
		GreetingTemplate:  "Thanks for calling %s plumbing. What can we fix for you today?",
	},
	entities.IndustryElectrical: {
		Key: entities.IndustryElectrical,
		PromptFragment: "You are the phone receptionist for %s, an electrical contractor. " +
			"Safety comes first: if the caller describes sparks, burning smells or shocks, " +
			"tell them to shut off the breaker and treat it as urgent.",
		EmergencyKeywords: []string{"emergency", "sparks", "burning", "shock", "fire", "power out"},
		GreetingTemplate:  "Thanks for calling %s electrical. How can I help you today?",
	},
	entities.IndustryRoofing: {
		Key: entities.IndustryRoofing,
		PromptFragment: "You are the phone receptionist for %s, a roofing company. " +
			"Ask about the kind of damage and whether water is coming inside, " +
			"then offer to schedule an inspection.",
		EmergencyKeywords: []string{"emergency", "leak", "collapse", "storm damage", "tree fell"},
		GreetingTemplate:  "Thanks for calling %s roofing. What's going on with your roof?",
	},
	entities.IndustryLandscaping: {
		Key: entities.IndustryLandscaping,
		PromptFragment: "You are the phone receptionist for %s, a landscaping company. " +
			"Be friendly and ask about the property and the work the caller has in mind.",
		EmergencyKeywords: []string{"emergency", "tree down", "fallen tree"},
		GreetingTemplate:  "Thanks for calling %s. How can we help with your property today?",
	},
	entities.IndustryGeneric: {
		Key: entities.IndustryGeneric,
		PromptFragment: "You are the phone receptionist for %s. Be polite and concise, " +
			"find out what the caller needs and collect their name and a callback number.",
		EmergencyKeywords: []string{"emergency", "urgent"},
		GreetingTemplate:  "Thanks for calling %s. How can I help you today?",
	},
}

// TemplateFor returns the template for an industry. Unknown or missing keys
// get the generic template.
func TemplateFor(industry entities.Industry) entities.IndustryTemplate {
	if t, ok := industryTemplates[industry]; ok {
		return t
	}
	return industryTemplates[entities.IndustryGeneric]
}
