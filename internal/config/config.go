package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string
	LogLevel string

	// Document store (Cosmos DB, Mongo API)
	MongoURI      string
	MongoDatabase string

	// Optional synthesized-audio URL cache
	RedisAddr     string
	RedisPassword string

	// Azure OpenAI
	OpenAIEndpoint   string
	OpenAIDeployment string
	OpenAIAPIKey     string

	// Azure Speech + blob upload target
	SpeechKey        string
	SpeechRegion     string
	BlobContainerURL string
	BlobSASToken     string

	// Bearer token for the business-config API
	DashboardToken string

	// Inclusive speech-recognition confidence floor
	ConfidenceThreshold float64
}

// LoadEnv loads a .env file if one is present. Missing files are fine in
// deployed environments where variables come from the platform.
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	threshold := 0.2
	if raw := os.Getenv("CONFIDENCE_THRESHOLD"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = v
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "VoiceAgent"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		OpenAIEndpoint:      os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIDeployment:    getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o-mini"),
		OpenAIAPIKey:        os.Getenv("AZURE_OPENAI_API_KEY"),
		SpeechKey:           os.Getenv("AZURE_SPEECH_KEY"),
		SpeechRegion:        getEnv("AZURE_SPEECH_REGION", "eastus"),
		BlobContainerURL:    os.Getenv("AZURE_BLOB_CONTAINER_URL"),
		BlobSASToken:        os.Getenv("AZURE_BLOB_SAS_TOKEN"),
		DashboardToken:      os.Getenv("DASHBOARD_TOKEN"),
		ConfidenceThreshold: threshold,
	}
}

// MongoConfigured reports whether the connection string is present and looks
// like a Mongo URI. A bad value here means degraded (in-memory) operation,
// never a startup failure: the call path must survive misconfiguration.
func (c *Config) MongoConfigured() bool {
	return strings.HasPrefix(c.MongoURI, "mongodb://") ||
		strings.HasPrefix(c.MongoURI, "mongodb+srv://")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
