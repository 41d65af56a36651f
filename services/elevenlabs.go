package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"market-scout/observability"
)

// ElevenLabsService handles communication with the ElevenLabs TTS API
type ElevenLabsService struct {
	apiKey     string
	modelID    string
	httpClient *http.Client
	baseURL    string
}

// NewElevenLabsService creates a new ElevenLabsService instance
func NewElevenLabsService(apiKey, modelID string) *ElevenLabsService {
	return &ElevenLabsService{
		apiKey:     apiKey,
		modelID:    modelID,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    "https://api.elevenlabs.io/v1",
	}
}

// Voice is one entry from the ElevenLabs voice catalog
type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

// voicesResponse represents the voice catalog response
type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// synthesisRequest is the request body for text-to-speech synthesis
type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Voices returns the available voices from the catalog
func (s *ElevenLabsService) Voices(ctx context.Context) ([]Voice, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_KEY not set")
	}

	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerElevenLabs, "voices")
	timer := metrics.NewTimer()

	voices, err := WithCircuitBreaker(ctx, BreakerElevenLabs, func() ([]Voice, error) {
		req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/voices", nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("xi-api-key", s.apiKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch voices: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("ElevenLabs returned status %d: %s", resp.StatusCode, body)
		}

		var catalog voicesResponse
		if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
			return nil, fmt.Errorf("failed to decode voices: %w", err)
		}

		return catalog.Voices, nil
	})

	timer.ObserveExternalAPI(BreakerElevenLabs, "voices")
	if err != nil {
		metrics.RecordExternalAPIError(BreakerElevenLabs, "voices", categorizeAPIError(err))
	}
	return voices, err
}

// Synthesize converts text to speech with the given voice and writes the
// returned audio bytes verbatim to outPath. On any failure nothing is written.
func (s *ElevenLabsService) Synthesize(ctx context.Context, text, voiceID, outPath string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ELEVEN_LABS_API_KEY not set")
	}

	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerElevenLabs, "synthesize")
	timer := metrics.NewTimer()

	audio, err := WithCircuitBreaker(ctx, BreakerElevenLabs, func() ([]byte, error) {
		payload := synthesisRequest{
			Text:    text,
			ModelID: s.modelID,
			VoiceSettings: voiceSettings{
				Stability:       0.5,
				SimilarityBoost: 0.8,
				Style:           0.0,
				UseSpeakerBoost: true,
			},
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/text-to-speech/"+voiceID, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "audio/mpeg")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("xi-api-key", s.apiKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize speech: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("ElevenLabs returned status %d: %s", resp.StatusCode, detail)
		}

		return io.ReadAll(resp.Body)
	})

	timer.ObserveExternalAPI(BreakerElevenLabs, "synthesize")
	if err != nil {
		metrics.RecordExternalAPIError(BreakerElevenLabs, "synthesize", categorizeAPIError(err))
		return "", err
	}

	if err := os.WriteFile(outPath, audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	observability.Info("speech synthesized", "voice_id", voiceID, "path", outPath, "bytes", len(audio))
	return outPath, nil
}
