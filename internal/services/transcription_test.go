package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/applicant-evaluator/internal/models"
)

func TestCountFillerWords(t *testing.T) {
	assert.Equal(t, 0, CountFillerWords("I designed the ingestion service."))
	assert.Equal(t, 3, CountFillerWords("Um, so I, uh, built it, you know, from scratch."))
	// Spanish fillers count too.
	assert.Equal(t, 2, CountFillerWords("Este, trabajé en el backend, pues, tres años."))
	// Matching is case-insensitive and word-bounded.
	assert.Equal(t, 1, CountFillerWords("UM is what I said, not umbrella."))
}

func TestFluencyScore(t *testing.T) {
	assert.Equal(t, 100.0, FluencyScore(0))
	assert.Equal(t, 85.0, FluencyScore(3))
	// Clamped at zero for filler-heavy answers.
	assert.Equal(t, 0.0, FluencyScore(25))
}

func TestTranscribeAnswer(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"https://cdn.example.com/a1.mp3": []byte("audio-bytes"),
	}}
	transcriber := &stubTranscriber{result: &SpeechResult{
		Text:     "Um, so I led, uh, the migration to Kubernetes.",
		Language: "en",
		Duration: 30,
	}}
	stub := &stubGenerator{responses: []string{
		"I led the migration to Kubernetes.",
		`{"sentiment_score": 0.6, "sentiment_label": "positive", "confidence_score": 80, "key_phrases": ["migration", "Kubernetes"]}`,
	}}

	service := NewTranscriptionService(fetcher, transcriber, stub, 3, 3)

	outcome, err := service.TranscribeAnswer(context.Background(), models.VoiceAnswer{
		QuestionID:   "q1",
		QuestionText: "Describe a recent project.",
		AudioURL:     "https://cdn.example.com/a1.mp3",
	})

	require.NoError(t, err)
	assert.Equal(t, "q1", outcome.QuestionID)
	assert.Equal(t, "Um, so I led, uh, the migration to Kubernetes.", outcome.RawTranscript)
	assert.Equal(t, "I led the migration to Kubernetes.", outcome.CleanTranscript)
	assert.Equal(t, "en", outcome.Language)

	require.NotNil(t, outcome.Analysis)
	assert.Equal(t, 2, outcome.Analysis.FillerWordCount)
	assert.Equal(t, 90.0, outcome.Analysis.FluencyScore)
	assert.Equal(t, "positive", outcome.Analysis.SentimentLabel)
	assert.InDelta(t, 18.0, outcome.Analysis.WordsPerMinute, 0.01)
}

func TestTranscribeAnswerCleaningFailureKeepsRaw(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"https://cdn.example.com/a1.mp3": []byte("audio-bytes"),
	}}
	transcriber := &stubTranscriber{result: &SpeechResult{Text: "Raw answer text.", Language: "en"}}
	stub := &stubGenerator{err: errors.New("model unavailable")}

	service := NewTranscriptionService(fetcher, transcriber, stub, 3, 3)

	outcome, err := service.TranscribeAnswer(context.Background(), models.VoiceAnswer{
		QuestionID: "q1",
		AudioURL:   "https://cdn.example.com/a1.mp3",
	})

	require.NoError(t, err)
	assert.Equal(t, "Raw answer text.", outcome.RawTranscript)
	assert.Equal(t, "Raw answer text.", outcome.CleanTranscript)
	// Analysis failed alongside cleaning; the outcome survives without it.
	assert.Nil(t, outcome.Analysis)
}

func TestTranscribeAnswerEmptyAudio(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"https://cdn.example.com/empty.mp3": {},
	}}
	service := NewTranscriptionService(fetcher, &stubTranscriber{}, &stubGenerator{}, 3, 3)

	_, err := service.TranscribeAnswer(context.Background(), models.VoiceAnswer{
		QuestionID: "q1",
		AudioURL:   "https://cdn.example.com/empty.mp3",
	})

	require.Error(t, err)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Reason, "zero bytes")
}

func TestTranscribeBatchDegradesFailures(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"https://cdn.example.com/a1.mp3": []byte("audio-1"),
		"https://cdn.example.com/a3.mp3": []byte("audio-3"),
	}}
	transcriber := &stubTranscriber{result: &SpeechResult{Text: "Fine answer.", Language: "en"}}
	stub := &stubGenerator{responses: []string{"Fine answer."}}

	service := NewTranscriptionService(fetcher, transcriber, stub, 1, 3)

	outcomes := service.TranscribeBatch(context.Background(), []models.VoiceAnswer{
		{QuestionID: "q1", AudioURL: "https://cdn.example.com/a1.mp3"},
		{QuestionID: "q2", QuestionText: "Second question", AudioURL: "https://cdn.example.com/missing.mp3"},
		{QuestionID: "q3", AudioURL: "https://cdn.example.com/a3.mp3"},
	})

	require.Len(t, outcomes, 3)
	assert.Equal(t, "Fine answer.", outcomes[0].RawTranscript)
	assert.Equal(t, "Fine answer.", outcomes[2].RawTranscript)

	// The failed answer keeps its position with empty transcripts.
	assert.Equal(t, "q2", outcomes[1].QuestionID)
	assert.Equal(t, "Second question", outcomes[1].QuestionText)
	assert.Empty(t, outcomes[1].RawTranscript)
	assert.Empty(t, outcomes[1].CleanTranscript)
	assert.Nil(t, outcomes[1].Analysis)
}
