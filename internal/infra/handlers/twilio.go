package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	Iservices "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/services"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

// TwilioHandlers terminates the voice webhooks. Whatever happens inside the
// pipeline, the response written here is always a well-formed TwiML document.
type TwilioHandlers struct {
	Logger      *logger.Logger
	CallService Iservices.ICallService
}

func NewTwilioHandlers(logger *logger.Logger, callService Iservices.ICallService) *TwilioHandlers {
	return &TwilioHandlers{Logger: logger, CallService: callService}
}

// Incoming handles the first webhook of a call: the greeting leg.
func (th *TwilioHandlers) Incoming(w http.ResponseWriter, r *http.Request) {
	req, ok := th.parseWebhook(w, r)
	if !ok {
		return
	}

	th.Logger.Info(fmt.Sprintf("Incoming call %s from %s to %s", req.CallSID, req.From, req.To))
	th.writeTwiML(w, th.CallService.HandleIncoming(r.Context(), req))
}

// Respond handles every subsequent webhook carrying a recognition result.
func (th *TwilioHandlers) Respond(w http.ResponseWriter, r *http.Request) {
	req, ok := th.parseWebhook(w, r)
	if !ok {
		return
	}

	th.writeTwiML(w, th.CallService.HandleTurn(r.Context(), req))
}

func (th *TwilioHandlers) parseWebhook(w http.ResponseWriter, r *http.Request) (dto.TwilioWebhookRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return dto.TwilioWebhookRequest{}, false
	}

	if err := r.ParseForm(); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to parse webhook form: %v", err))
		th.writeTwiML(w, &dto.TwiML{Hangup: &dto.TwiMLHangup{}})
		return dto.TwilioWebhookRequest{}, false
	}

	confidence := 1.0
	if raw := r.PostFormValue("Confidence"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			confidence = v
		}
	}

	return dto.TwilioWebhookRequest{
		CallSID:      r.PostFormValue("CallSid"),
		From:         r.PostFormValue("From"),
		To:           r.PostFormValue("To"),
		SpeechResult: r.PostFormValue("SpeechResult"),
		Confidence:   confidence,
	}, true
}

func (th *TwilioHandlers) writeTwiML(w http.ResponseWriter, twiml *dto.TwiML) {
	body, err := twiml.Encode()
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to encode TwiML: %v", err))
		body = []byte(`<?xml version="1.0" encoding="UTF-8"?><Response><Hangup/></Response>`)
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
