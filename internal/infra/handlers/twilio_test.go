package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

type fakeCallService struct {
	lastIncoming dto.TwilioWebhookRequest
	lastTurn     dto.TwilioWebhookRequest
	twiml        *dto.TwiML
}

func (f *fakeCallService) HandleIncoming(ctx context.Context, req dto.TwilioWebhookRequest) *dto.TwiML {
	f.lastIncoming = req
	return f.twiml
}

func (f *fakeCallService) HandleTurn(ctx context.Context, req dto.TwilioWebhookRequest) *dto.TwiML {
	f.lastTurn = req
	return f.twiml
}

func newTestHandlers(twiml *dto.TwiML) (*TwilioHandlers, *fakeCallService) {
	log := logger.NewLogger(context.Background(), "error", false)
	svc := &fakeCallService{twiml: twiml}
	return NewTwilioHandlers(log, svc), svc
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestIncomingWritesTwiML(t *testing.T) {
	th, svc := newTestHandlers(&dto.TwiML{Hangup: &dto.TwiMLHangup{}})

	w := httptest.NewRecorder()
	th.Incoming(w, postForm("/voice/incoming", url.Values{
		"CallSid": {"CA42"},
		"From":    {"+15551112222"},
		"To":      {"+15553334444"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<Response>")
	assert.Contains(t, w.Body.String(), "<Hangup>")

	assert.Equal(t, "CA42", svc.lastIncoming.CallSID)
	assert.Equal(t, "+15551112222", svc.lastIncoming.From)
	assert.Equal(t, "+15553334444", svc.lastIncoming.To)
}

func TestRespondParsesRecognitionFields(t *testing.T) {
	th, svc := newTestHandlers(&dto.TwiML{Hangup: &dto.TwiMLHangup{}})

	w := httptest.NewRecorder()
	th.Respond(w, postForm("/voice/respond", url.Values{
		"CallSid":      {"CA42"},
		"SpeechResult": {"my furnace is broken"},
		"Confidence":   {"0.87"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "my furnace is broken", svc.lastTurn.SpeechResult)
	assert.InDelta(t, 0.87, svc.lastTurn.Confidence, 0.0001)
}

func TestRespondDefaultsMissingConfidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"absent field", "", 1.0},
		{"unparseable value", "high", 1.0},
		{"explicit zero", "0", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, svc := newTestHandlers(&dto.TwiML{Hangup: &dto.TwiMLHangup{}})

			form := url.Values{"CallSid": {"CA1"}, "SpeechResult": {"hello"}}
			if tt.raw != "" {
				form.Set("Confidence", tt.raw)
			}

			w := httptest.NewRecorder()
			th.Respond(w, postForm("/voice/respond", form))

			require.Equal(t, http.StatusOK, w.Code)
			assert.InDelta(t, tt.want, svc.lastTurn.Confidence, 0.0001)
		})
	}
}

func TestWebhookRejectsNonPost(t *testing.T) {
	th, svc := newTestHandlers(&dto.TwiML{Hangup: &dto.TwiMLHangup{}})

	w := httptest.NewRecorder()
	th.Incoming(w, httptest.NewRequest(http.MethodGet, "/voice/incoming", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, svc.lastIncoming.CallSID)
}
