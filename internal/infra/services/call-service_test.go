package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	memory "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/repository"
)

type fakeResponder struct {
	reply string
	err   error
}

func (f *fakeResponder) Reply(ctx context.Context, messages []entities.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeResponder) Apology(err error) string {
	return "I'm sorry, something went wrong on my end. Could you please repeat that?"
}

type fakeSpeech struct {
	mu       sync.Mutex
	spoken   []string
	failures int
}

func (f *fakeSpeech) Speak(ctx context.Context, text string, profile entities.VoiceProfile) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	if f.failures > 0 {
		f.failures--
		return "", fmt.Errorf("synthesis unavailable")
	}
	return "https://cdn.example.com/tts/fake.mp3", nil
}

func (f *fakeSpeech) spokenTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

func newTestCallService(responder *fakeResponder, speech *fakeSpeech, threshold float64) *CallService {
	log := newTestLogger()

	// Nil repositories: tenant resolution falls back to the default tenant
	// and sessions live in the in-memory cache.
	business := NewBusinessService(nil, log)
	conversation := NewConversationService(nil, nil, memory.NewSessionCache(16), log)

	return NewCallService(log, business, conversation, NewLeadAnalyzer(log), responder, speech, threshold)
}

func turnRequest(text string, confidence float64) dto.TwilioWebhookRequest {
	return dto.TwilioWebhookRequest{
		CallSID:      "CA1",
		From:         "+15551234567",
		To:           "+15559876543",
		SpeechResult: text,
		Confidence:   confidence,
	}
}

func TestHandleIncomingUnknownNumberUsesDefaultTenant(t *testing.T) {
	speech := &fakeSpeech{}
	cas := newTestCallService(&fakeResponder{reply: "ok"}, speech, 0.2)

	twiml := cas.HandleIncoming(context.Background(), turnRequest("", 0))

	require.NotNil(t, twiml.Gather)
	require.NotNil(t, twiml.Gather.Play)
	assert.Equal(t, "/voice/respond", twiml.Gather.Action)
	require.NotNil(t, twiml.Redirect)

	texts := speech.spokenTexts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Rayth Media Services")
}

func TestHandleTurnConfidenceBoundaryInclusive(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		processed  bool
	}{
		{"exactly at threshold accepted", 0.2, true},
		{"just below threshold rejected", 0.19, false},
		{"well above threshold accepted", 0.9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speech := &fakeSpeech{}
			responder := &fakeResponder{reply: "Happy to help with that."}
			cas := newTestCallService(responder, speech, 0.2)

			twiml := cas.HandleTurn(context.Background(), turnRequest("My furnace broke", tt.confidence))

			require.NotNil(t, twiml.Gather)
			texts := speech.spokenTexts()
			require.Len(t, texts, 1)

			if tt.processed {
				assert.Equal(t, "Happy to help with that.", texts[0])
			} else {
				assert.Equal(t, repeatPrompt, texts[0])
			}
		})
	}
}

func TestHandleTurnEmptySpeechAsksForRepetition(t *testing.T) {
	speech := &fakeSpeech{}
	cas := newTestCallService(&fakeResponder{reply: "ok"}, speech, 0.2)

	twiml := cas.HandleTurn(context.Background(), turnRequest("", 0.95))

	require.NotNil(t, twiml.Gather)
	texts := speech.spokenTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, repeatPrompt, texts[0])
}

func TestHandleTurnLowConfidenceLeavesSessionUntouched(t *testing.T) {
	speech := &fakeSpeech{}
	cas := newTestCallService(&fakeResponder{reply: "ok"}, speech, 0.2)

	// Low-confidence turn first; the emergency text must not be analyzed.
	cas.HandleTurn(context.Background(), turnRequest("this is an emergency", 0.05))

	// A normal turn then shows the session lead was never marked.
	cas.HandleTurn(context.Background(), turnRequest("I need a quote", 0.9))

	session := cas.ConversationService.LoadOrCreate(context.Background(), DefaultBusiness(), "CA1", "+15551234567")
	assert.False(t, session.Lead.HasEmergency)
}

func TestHandleTurnLLMFailureSpeaksApology(t *testing.T) {
	speech := &fakeSpeech{}
	responder := &fakeResponder{err: fmt.Errorf("completion failed")}
	cas := newTestCallService(responder, speech, 0.2)

	twiml := cas.HandleTurn(context.Background(), turnRequest("My furnace broke", 0.9))

	require.NotNil(t, twiml.Play)
	require.NotNil(t, twiml.Gather)
	assert.Nil(t, twiml.Hangup)

	texts := speech.spokenTexts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "I'm sorry")
}

func TestHandleTurnSynthFailureFallsBackToApologyAudio(t *testing.T) {
	// First synthesis (the reply) fails, the technical-difficulties apology
	// succeeds.
	speech := &fakeSpeech{failures: 1}
	cas := newTestCallService(&fakeResponder{reply: "ok"}, speech, 0.2)

	twiml := cas.HandleTurn(context.Background(), turnRequest("My furnace broke", 0.9))

	require.NotNil(t, twiml.Play)
	require.NotNil(t, twiml.Hangup)
	assert.Nil(t, twiml.Gather)

	texts := speech.spokenTexts()
	require.Len(t, texts, 2)
	assert.Equal(t, technicalDifficulty, texts[1])
}

func TestHandleTurnDoubleSynthFailureHangsUp(t *testing.T) {
	speech := &fakeSpeech{failures: 2}
	cas := newTestCallService(&fakeResponder{reply: "ok"}, speech, 0.2)

	twiml := cas.HandleTurn(context.Background(), turnRequest("My furnace broke", 0.9))

	require.NotNil(t, twiml.Hangup)
	assert.Nil(t, twiml.Play)
	assert.Nil(t, twiml.Gather)
}

func TestFullTurnCompletesInDegradedMode(t *testing.T) {
	speech := &fakeSpeech{}
	responder := &fakeResponder{reply: "A technician can come out today."}
	cas := newTestCallService(responder, speech, 0.2)

	twiml := cas.HandleTurn(context.Background(),
		turnRequest("This is an emergency, my furnace isn't working and I smell gas", 0.8))

	require.NotNil(t, twiml.Play)
	require.NotNil(t, twiml.Gather)
	assert.Nil(t, twiml.Hangup)

	session := cas.ConversationService.LoadOrCreate(context.Background(), DefaultBusiness(), "CA1", "+15551234567")
	assert.True(t, session.Lead.HasEmergency)
	assert.GreaterOrEqual(t, session.Lead.QualificationScore, 85)
}
