package entities

// VoiceProfile parameterizes one synthesis pass: a single voice identity with
// prosody adjustments layered on per urgency tier.
type VoiceProfile struct {
	Voice string `json:"voice"`
	Style string `json:"style"`
	Rate  string `json:"rate"`
	Pitch string `json:"pitch"`
}
