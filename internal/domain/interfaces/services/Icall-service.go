package Iservices

import (
	"context"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
)

// ICallService sequences one webhook invocation through the turn pipeline.
// Every path returns a well-formed TwiML document; nothing propagates an
// error to the telephony layer.
type ICallService interface {
	HandleIncoming(ctx context.Context, req dto.TwilioWebhookRequest) *dto.TwiML
	HandleTurn(ctx context.Context, req dto.TwilioWebhookRequest) *dto.TwiML
}
