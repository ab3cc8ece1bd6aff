package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwiMLEncodeGatherResponse(t *testing.T) {
	twiml := &TwiML{
		Gather: &TwiMLGather{
			Input:         "speech",
			Action:        "/voice/respond",
			Method:        "POST",
			SpeechTimeout: "auto",
			Timeout:       5,
			Play:          &TwiMLPlay{URL: "https://cdn.example.com/tts/abc.mp3"},
		},
		Redirect: &TwiMLRedirect{Method: "POST", URL: "/voice/incoming"},
	}

	body, err := twiml.Encode()
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<Gather input="speech" action="/voice/respond" method="POST" speechTimeout="auto" timeout="5">`)
	assert.Contains(t, out, `<Play>https://cdn.example.com/tts/abc.mp3</Play>`)
	assert.Contains(t, out, `<Redirect method="POST">/voice/incoming</Redirect>`)
}

func TestTwiMLEncodeHangupOnly(t *testing.T) {
	twiml := &TwiML{Hangup: &TwiMLHangup{}}

	body, err := twiml.Encode()
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "<Response>")
	assert.Contains(t, out, "<Hangup>")
	assert.NotContains(t, out, "<Play>")
	assert.NotContains(t, out, "<Gather")
}
