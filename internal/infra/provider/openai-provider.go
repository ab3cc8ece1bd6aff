package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/dto"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

const (
	openAIAPIVersion = "2024-06-01"

	// Replies are spoken, so the output budget stays small.
	replyMaxTokens   = 80
	replyTemperature = 0.7
)

type AzureOpenAIProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client

	endpoint   string
	deployment string
	apiKey     string
}

func NewAzureOpenAIProvider(logger *logger.Logger, httpClient *http.Client, endpoint, deployment, apiKey string) *AzureOpenAIProvider {
	return &AzureOpenAIProvider{
		Logger:     logger,
		HttpClient: httpClient,
		endpoint:   endpoint,
		deployment: deployment,
		apiKey:     apiKey,
	}
}

// Reply sends the full message history to the chat-completions deployment and
// returns the single assistant reply. One attempt, no retry.
func (p *AzureOpenAIProvider) Reply(ctx context.Context, messages []entities.Message) (string, error) {
	if p.endpoint == "" || p.apiKey == "" {
		return "", &ProviderError{Kind: ErrorKindAuth, Err: fmt.Errorf("azure openai credentials not configured")}
	}

	payload := dto.ChatCompletionRequest{
		Messages:    make([]dto.ChatMessage, 0, len(messages)),
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, dto.ChatMessage{Role: string(m.Role), Content: m.Text})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to marshal chat payload %v", err))
		return "", fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", p.endpoint, p.deployment, openAIAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.HttpClient.Do(req)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Chat completion request failed %v", err))
		return "", &ProviderError{Kind: classifyTransport(err), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(res.Body)
		p.Logger.Error(fmt.Sprintf("Unexpected chat completion status %s response_body %s", res.Status, string(raw)))
		return "", &ProviderError{
			Kind:   classifyStatus(res.StatusCode),
			Status: res.StatusCode,
			Err:    fmt.Errorf("unexpected HTTP status: %s", res.Status),
		}
	}

	var completion dto.ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&completion); err != nil {
		return "", &ProviderError{Kind: ErrorKindUpstream, Err: fmt.Errorf("error decoding response JSON: %w", err)}
	}

	if len(completion.Choices) == 0 {
		return "", &ProviderError{Kind: ErrorKindUpstream, Err: fmt.Errorf("completion returned no choices")}
	}

	return completion.Choices[0].Message.Content, nil
}

// Apology picks the spoken fallback line by failure classification. Callers
// never hear technical detail.
func (p *AzureOpenAIProvider) Apology(err error) string {
	switch KindOf(err) {
	case ErrorKindRateLimited:
		return "I'm sorry, I'm helping a lot of callers right now. Could you give me just a moment and say that again?"
	case ErrorKindTimeout, ErrorKindNetwork:
		return "I'm sorry, I'm having a little trouble with my connection. Could you say that one more time?"
	case ErrorKindAuth:
		return "I apologize, I'm unable to look that up right now. Please call back shortly and we'll be glad to help."
	default:
		return "I'm sorry, something went wrong on my end. Could you please repeat that?"
	}
}
