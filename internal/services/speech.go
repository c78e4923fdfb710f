package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SpeechResult is the speech-to-text service response for one audio clip.
type SpeechResult struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audio []byte) (*SpeechResult, error)
}

type speechService struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewSpeechService(url, apiKey string) (SpeechTranscriber, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigurationError{Setting: "SPEECH_API_KEY"}
	}

	return &speechService{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Transcribe implements SpeechTranscriber. Non-2xx responses surface the raw
// status and body as a ServiceError.
func (s *speechService) Transcribe(ctx context.Context, audio []byte) (*SpeechResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Service: "speech-to-text", StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			Service:    "speech-to-text",
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var result SpeechResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ParseError{Stage: "transcription", Reason: err.Error()}
	}

	return &result, nil
}
