package provider

import (
	"context"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

// IResponseProvider turns a message history into one assistant reply.
type IResponseProvider interface {
	Reply(ctx context.Context, messages []entities.Message) (string, error)
	// Apology selects the spoken fallback line for a failed reply.
	Apology(err error) string
}

// ISpeechProvider synthesizes text and returns a public audio URL. Synthesis
// is all-or-nothing: there is no degraded fallback voice.
type ISpeechProvider interface {
	Speak(ctx context.Context, text string, profile entities.VoiceProfile) (string, error)
}
