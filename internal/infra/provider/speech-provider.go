package provider

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
)

const (
	ttsOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
	defaultVoice    = "en-US-JennyNeural"

	// Synthesized phrases are content-addressed, so they cache forever.
	blobCacheControl = "public, max-age=31536000, immutable"
	urlCacheTTL      = 24 * time.Hour
)

// ProfileFor selects the prosody for a reply. One voice identity, with rate
// and pitch stepped up as urgency climbs.
func ProfileFor(style string, urgency entities.Urgency, hasEmergency bool) entities.VoiceProfile {
	if style == "" {
		style = "chat"
	}
	profile := entities.VoiceProfile{Voice: defaultVoice, Style: style, Rate: "+0%", Pitch: "+0%"}

	switch {
	case urgency == entities.UrgencyCritical:
		profile.Rate = "+12%"
		profile.Pitch = "+4%"
	case urgency == entities.UrgencyEmergency || hasEmergency:
		profile.Rate = "+8%"
		profile.Pitch = "+2%"
	case urgency == entities.UrgencyHigh:
		profile.Rate = "+4%"
	}
	return profile
}

// AzureSpeechProvider synthesizes via the Azure Speech REST endpoint and
// uploads the audio to blob storage. A Redis cache in front maps content
// hashes to already-uploaded URLs so canned phrases (greetings, apologies,
// repetition prompts) are synthesized once.
type AzureSpeechProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	Cache      *redis.Client

	key          string
	region       string
	containerURL string
	sasToken     string
}

func NewAzureSpeechProvider(logger *logger.Logger, httpClient *http.Client, cache *redis.Client, key, region, containerURL, sasToken string) *AzureSpeechProvider {
	return &AzureSpeechProvider{
		Logger:       logger,
		HttpClient:   httpClient,
		Cache:        cache,
		key:          key,
		region:       region,
		containerURL: strings.TrimSuffix(containerURL, "/"),
		sasToken:     strings.TrimPrefix(sasToken, "?"),
	}
}

// Speak synthesizes text with the given profile and returns the public audio
// URL. Synthesis or upload failure returns an error; there is no fallback
// voice.
func (p *AzureSpeechProvider) Speak(ctx context.Context, text string, profile entities.VoiceProfile) (string, error) {
	if p.key == "" || p.containerURL == "" {
		return "", &ProviderError{Kind: ErrorKindAuth, Err: fmt.Errorf("azure speech or blob storage not configured")}
	}

	hash := contentHash(text, profile)
	cacheKey := "tts:" + hash

	if p.Cache != nil {
		if cached, err := p.Cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	audio, err := p.synthesize(ctx, text, profile)
	if err != nil {
		return "", err
	}

	audioURL, err := p.upload(ctx, hash, audio)
	if err != nil {
		return "", err
	}

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, cacheKey, audioURL, urlCacheTTL).Err(); err != nil {
			p.Logger.Warn(fmt.Sprintf("Failed to cache audio URL: %v", err), logrus.Fields{"hash": hash})
		}
	}

	return audioURL, nil
}

func (p *AzureSpeechProvider) synthesize(ctx context.Context, text string, profile entities.VoiceProfile) ([]byte, error) {
	ssml := buildSSML(text, profile)

	url := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", p.region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Ocp-Apim-Subscription-Key", p.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", ttsOutputFormat)

	res, err := p.HttpClient.Do(req)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Speech synthesis request failed %v", err))
		return nil, &ProviderError{Kind: classifyTransport(err), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(res.Body)
		p.Logger.Error(fmt.Sprintf("Unexpected synthesis status %s response_body %s", res.Status, string(raw)))
		return nil, &ProviderError{
			Kind:   classifyStatus(res.StatusCode),
			Status: res.StatusCode,
			Err:    fmt.Errorf("unexpected HTTP status: %s", res.Status),
		}
	}

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &ProviderError{Kind: ErrorKindNetwork, Err: fmt.Errorf("failed to read audio body: %w", err)}
	}
	return audio, nil
}

// upload PUTs the audio as a block blob under a content-hashed,
// timestamp-suffixed name and returns the public (SAS-free) URL.
func (p *AzureSpeechProvider) upload(ctx context.Context, hash string, audio []byte) (string, error) {
	name := fmt.Sprintf("tts/%s-%d.mp3", hash, time.Now().Unix())
	publicURL := fmt.Sprintf("%s/%s", p.containerURL, name)

	uploadURL := publicURL
	if p.sasToken != "" {
		uploadURL = fmt.Sprintf("%s?%s", publicURL, p.sasToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("x-ms-blob-type", "BlockBlob")
	req.Header.Set("Content-Type", "audio/mpeg")
	req.Header.Set("x-ms-blob-cache-control", blobCacheControl)

	res, err := p.HttpClient.Do(req)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Blob upload request failed %v", err))
		return "", &ProviderError{Kind: classifyTransport(err), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(res.Body)
		p.Logger.Error(fmt.Sprintf("Unexpected blob upload status %s response_body %s", res.Status, string(raw)))
		return "", &ProviderError{
			Kind:   classifyStatus(res.StatusCode),
			Status: res.StatusCode,
			Err:    fmt.Errorf("unexpected HTTP status: %s", res.Status),
		}
	}

	return publicURL, nil
}

func buildSSML(text string, profile entities.VoiceProfile) string {
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(text))

	var b strings.Builder
	b.WriteString(`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="https://www.w3.org/2001/mstts" xml:lang="en-US">`)
	fmt.Fprintf(&b, `<voice name="%s">`, profile.Voice)
	fmt.Fprintf(&b, `<mstts:express-as style="%s">`, profile.Style)
	fmt.Fprintf(&b, `<prosody rate="%s" pitch="%s">%s</prosody>`, profile.Rate, profile.Pitch, escaped.String())
	b.WriteString(`</mstts:express-as></voice></speak>`)
	return b.String()
}

func contentHash(text string, profile entities.VoiceProfile) string {
	sum := sha256.Sum256([]byte(text + "|" + profile.Voice + "|" + profile.Style + "|" + profile.Rate + "|" + profile.Pitch))
	return hex.EncodeToString(sum[:])[:20]
}
