package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	Iservices "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/services"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/metrics"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/provider"
)

const (
	incomingPath = "/voice/incoming"
	respondPath  = "/voice/respond"

	repeatPrompt        = "I'm sorry, I didn't quite catch that. Could you say it again?"
	technicalDifficulty = "We're sorry, we're experiencing technical difficulties. Please call back in a few minutes."
)

// CallService walks one webhook invocation through the turn pipeline:
// resolve tenant, load session, analyze, reply, persist, synthesize, respond.
// Every path ends in well-formed TwiML; in the worst case a hangup document.
type CallService struct {
	Logger              *logger.Logger
	BusinessService     Iservices.IBusinessService
	ConversationService Iservices.IConversationService
	LeadAnalyzer        Iservices.ILeadAnalyzer
	ResponseProvider    provider.IResponseProvider
	SpeechProvider      provider.ISpeechProvider
	ConfidenceThreshold float64
}

func NewCallService(
	log *logger.Logger,
	businessService Iservices.IBusinessService,
	conversationService Iservices.IConversationService,
	leadAnalyzer Iservices.ILeadAnalyzer,
	responseProvider provider.IResponseProvider,
	speechProvider provider.ISpeechProvider,
	confidenceThreshold float64,
) *CallService {
	return &CallService{
		Logger:              log,
		BusinessService:     businessService,
		ConversationService: conversationService,
		LeadAnalyzer:        leadAnalyzer,
		ResponseProvider:    responseProvider,
		SpeechProvider:      speechProvider,
		ConfidenceThreshold: confidenceThreshold,
	}
}

// HandleIncoming is the greeting leg: resolve the tenant from the dialed
// number, synthesize its greeting and hand the caller to the gather loop.
func (cas *CallService) HandleIncoming(ctx context.Context, req dto.TwilioWebhookRequest) *dto.TwiML {
	business := cas.BusinessService.Resolve(ctx, req.To)

	greeting := business.AIConfig.Greeting
	if greeting == "" {
		greeting = fmt.Sprintf(TemplateFor(business.Industry).GreetingTemplate, business.CompanyName)
	}

	profile := provider.ProfileFor(business.AIConfig.VoiceStyle, entities.UrgencyNormal, false)
	audioURL, err := cas.SpeechProvider.Speak(ctx, greeting, profile)
	if err != nil {
		cas.Logger.Error(fmt.Sprintf("Greeting synthesis failed for call %s: %v", req.CallSID, err))
		metrics.SynthFailuresTotal.Inc()
		return cas.technicalDifficulties(ctx, profile)
	}

	return &dto.TwiML{
		Gather: &dto.TwiMLGather{
			Input:         "speech",
			Action:        respondPath,
			Method:        "POST",
			SpeechTimeout: "auto",
			Timeout:       5,
			Play:          &dto.TwiMLPlay{URL: audioURL},
		},
		Redirect: &dto.TwiMLRedirect{Method: "POST", URL: incomingPath},
	}
}

// HandleTurn is the listening/processing leg for each recognized utterance.
func (cas *CallService) HandleTurn(ctx context.Context, req dto.TwilioWebhookRequest) *dto.TwiML {
	business := cas.BusinessService.Resolve(ctx, req.To)
	profile := provider.ProfileFor(business.AIConfig.VoiceStyle, entities.UrgencyNormal, false)

	// Inclusive boundary: confidence exactly at the floor is accepted.
	if req.SpeechResult == "" || req.Confidence < cas.ConfidenceThreshold {
		metrics.LowConfidenceTotal.Inc()
		metrics.TurnsTotal.WithLabelValues("low_confidence").Inc()
		return cas.promptTwiML(ctx, repeatPrompt, profile)
	}

	session := cas.ConversationService.LoadOrCreate(ctx, business, req.CallSID, req.From)

	signal := cas.LeadAnalyzer.Analyze(req.SpeechResult, business)
	session.MergeSignal(signal)
	session.Lead.QualificationScore = cas.LeadAnalyzer.Score(session.Lead)
	if signal.HasEmergency {
		metrics.EmergenciesTotal.Inc()
	}

	session.Append(entities.RoleUser, req.SpeechResult)

	reply, err := cas.ResponseProvider.Reply(ctx, session.Messages)
	if err != nil {
		cas.Logger.Error(fmt.Sprintf("Reply generation failed for call %s: %v", req.CallSID, err), logrus.Fields{
			"error_kind": provider.KindOf(err).String(),
		})
		metrics.LLMFailuresTotal.WithLabelValues(provider.KindOf(err).String()).Inc()
		reply = cas.ResponseProvider.Apology(err)
	}

	session.Append(entities.RoleAssistant, reply)

	turnMessages := session.Messages[len(session.Messages)-2:]
	cas.ConversationService.Save(session, turnMessages)
	cas.ConversationService.UpsertLead(req.From, business.ID, req.CallSID, session.Lead)

	profile = provider.ProfileFor(business.AIConfig.VoiceStyle, session.Lead.Urgency, session.Lead.HasEmergency)
	audioURL, err := cas.SpeechProvider.Speak(ctx, reply, profile)
	if err != nil {
		cas.Logger.Error(fmt.Sprintf("Reply synthesis failed for call %s: %v", req.CallSID, err))
		metrics.SynthFailuresTotal.Inc()
		metrics.TurnsTotal.WithLabelValues("synth_failed").Inc()
		return cas.technicalDifficulties(ctx, profile)
	}

	metrics.TurnsTotal.WithLabelValues("ok").Inc()
	return &dto.TwiML{
		Play: &dto.TwiMLPlay{URL: audioURL},
		Gather: &dto.TwiMLGather{
			Input:         "speech",
			Action:        respondPath,
			Method:        "POST",
			SpeechTimeout: "auto",
			Timeout:       5,
		},
		Redirect: &dto.TwiMLRedirect{Method: "POST", URL: incomingPath},
	}
}

// promptTwiML speaks a short canned prompt and re-enters the gather loop.
// If even the canned prompt cannot be synthesized the turn degrades to the
// technical-difficulties path.
func (cas *CallService) promptTwiML(ctx context.Context, prompt string, profile entities.VoiceProfile) *dto.TwiML {
	audioURL, err := cas.SpeechProvider.Speak(ctx, prompt, profile)
	if err != nil {
		cas.Logger.Error(fmt.Sprintf("Prompt synthesis failed: %v", err))
		metrics.SynthFailuresTotal.Inc()
		return cas.technicalDifficulties(ctx, profile)
	}

	return &dto.TwiML{
		Gather: &dto.TwiMLGather{
			Input:         "speech",
			Action:        respondPath,
			Method:        "POST",
			SpeechTimeout: "auto",
			Timeout:       5,
			Play:          &dto.TwiMLPlay{URL: audioURL},
		},
		Redirect: &dto.TwiMLRedirect{Method: "POST", URL: incomingPath},
	}
}

// technicalDifficulties speaks the terminal apology through the same
// synthesis path. If that synthesis fails too, the call ends with a bare
// hangup document rather than an error reaching Twilio.
func (cas *CallService) technicalDifficulties(ctx context.Context, profile entities.VoiceProfile) *dto.TwiML {
	audioURL, err := cas.SpeechProvider.Speak(ctx, technicalDifficulty, profile)
	if err != nil {
		cas.Logger.Error(fmt.Sprintf("Apology synthesis failed, hanging up: %v", err))
		return &dto.TwiML{Hangup: &dto.TwiMLHangup{}}
	}

	return &dto.TwiML{
		Play:   &dto.TwiMLPlay{URL: audioURL},
		Hangup: &dto.TwiMLHangup{},
	}
}
