package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_DATABASE", "AZURE_OPENAI_DEPLOYMENT", "AZURE_SPEECH_REGION", "CONFIDENCE_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "VoiceAgent", cfg.MongoDatabase)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIDeployment)
	assert.Equal(t, "eastus", cfg.SpeechRegion)
	assert.InDelta(t, 0.2, cfg.ConfidenceThreshold, 0.0001)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.InDelta(t, 0.5, cfg.ConfidenceThreshold, 0.0001)
}

func TestLoadIgnoresUnparseableThreshold(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "very confident")

	cfg := Load()
	assert.InDelta(t, 0.2, cfg.ConfidenceThreshold, 0.0001)
}

func TestMongoConfigured(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{"standard scheme", "mongodb://localhost:27017", true},
		{"srv scheme", "mongodb+srv://cluster.example.net", true},
		{"empty", "", false},
		{"wrong scheme", "postgres://localhost", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MongoURI: tt.uri}
			assert.Equal(t, tt.want, cfg.MongoConfigured())
		})
	}
}
