package services

import (
	"context"
	"sync"
)

// stubGenerator scripts text-generation responses in call order. When the
// queue runs dry the last response (or the scripted error) is repeated.
type stubGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (s *stubGenerator) GenerateTextWithRetry(_ context.Context, prompt string, _ float32, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}

	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return response, nil
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *stubGenerator) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

type stubFetcher struct {
	payloads map[string][]byte
	err      error
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	payload, ok := s.payloads[url]
	if !ok {
		return nil, &FetchError{URL: url, Reason: "unexpected status 404"}
	}
	return payload, nil
}

type stubTranscriber struct {
	result *SpeechResult
	err    error
	calls  int
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte) (*SpeechResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}
