package services

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"

	"hirelens/applicant-evaluator/internal/models"
)

// fillerPattern matches the fixed bilingual (English/Spanish) filler-word
// list. Filler counting is always local, never model-derived.
var fillerPattern = regexp.MustCompile(`(?i)\b(?:um|uh|uhm|er|ah|hmm|like|you know|i mean|kind of|sort of|basically|actually|literally|este|eh|pues|o sea|bueno|entonces|digamos|a ver|verdad)\b`)

type VoiceAnalysis struct {
	SentimentScore       float64  `json:"sentiment_score"`
	SentimentLabel       string   `json:"sentiment_label"`
	ConfidenceScore      float64  `json:"confidence_score"`
	ConfidenceIndicators []string `json:"confidence_indicators,omitempty"`
	FluencyScore         float64  `json:"fluency_score"`
	FillerWordCount      int      `json:"filler_word_count"`
	WordsPerMinute       float64  `json:"words_per_minute,omitempty"`
	KeyPhrases           []string `json:"key_phrases,omitempty"`
}

// TranscriptionOutcome is the result of transcribing one voice answer. A
// failed transcription still produces an outcome with empty transcripts so
// the evaluation can proceed on the remaining answers.
type TranscriptionOutcome struct {
	QuestionID      string         `json:"question_id"`
	QuestionText    string         `json:"question_text,omitempty"`
	RawTranscript   string         `json:"raw_transcript"`
	CleanTranscript string         `json:"clean_transcript"`
	Language        string         `json:"language,omitempty"`
	Duration        float64        `json:"duration,omitempty"`
	Analysis        *VoiceAnalysis `json:"analysis,omitempty"`
}

type TranscriptionService interface {
	TranscribeAnswer(ctx context.Context, answer models.VoiceAnswer) (*TranscriptionOutcome, error)
	TranscribeBatch(ctx context.Context, answers []models.VoiceAnswer) []*TranscriptionOutcome
}

type transcriptionService struct {
	fetcher       ResourceFetcher
	transcriber   SpeechTranscriber
	generator     TextGenerator
	promptBuilder *PromptBuilder
	concurrency   int
	maxRetries    int
}

func NewTranscriptionService(
	fetcher ResourceFetcher,
	transcriber SpeechTranscriber,
	generator TextGenerator,
	concurrency int,
	maxRetries int,
) TranscriptionService {
	if concurrency <= 0 {
		concurrency = 3
	}
	return &transcriptionService{
		fetcher:       fetcher,
		transcriber:   transcriber,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		concurrency:   concurrency,
		maxRetries:    maxRetries,
	}
}

// TranscribeAnswer implements TranscriptionService.
func (t *transcriptionService) TranscribeAnswer(ctx context.Context, answer models.VoiceAnswer) (*TranscriptionOutcome, error) {
	audio, err := t.fetcher.Fetch(ctx, answer.AudioURL)
	if err != nil {
		return nil, err
	}

	if len(audio) == 0 {
		return nil, &FetchError{URL: answer.AudioURL, Reason: "empty audio (zero bytes)"}
	}

	speech, err := t.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}

	outcome := &TranscriptionOutcome{
		QuestionID:      answer.QuestionID,
		QuestionText:    answer.QuestionText,
		RawTranscript:   speech.Text,
		CleanTranscript: t.cleanTranscript(ctx, speech.Text),
		Language:        speech.Language,
		Duration:        speech.Duration,
	}

	// Analysis can fail independently without failing the transcription.
	if analysis, err := t.analyzeTranscript(ctx, speech.Text, speech.Duration); err != nil {
		log.Printf("⚠️  Voice analysis failed for question %s: %v\n", answer.QuestionID, err)
	} else {
		outcome.Analysis = analysis
	}

	return outcome, nil
}

// TranscribeBatch implements TranscriptionService. Answers are processed in
// sequential chunks; within a chunk transcriptions run concurrently up to
// the configured ceiling. Per-answer failures degrade to empty transcripts.
func (t *transcriptionService) TranscribeBatch(ctx context.Context, answers []models.VoiceAnswer) []*TranscriptionOutcome {
	outcomes := make([]*TranscriptionOutcome, len(answers))

	for start := 0; start < len(answers); start += t.concurrency {
		end := start + t.concurrency
		if end > len(answers) {
			end = len(answers)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				outcome, err := t.TranscribeAnswer(ctx, answers[idx])
				if err != nil {
					log.Printf("⚠️  Transcription failed for question %s: %v\n", answers[idx].QuestionID, err)
					outcome = &TranscriptionOutcome{
						QuestionID:   answers[idx].QuestionID,
						QuestionText: answers[idx].QuestionText,
					}
				}
				outcomes[idx] = outcome
			}(i)
		}
		wg.Wait()
	}

	return outcomes
}

// cleanTranscript degrades gracefully: a failed cleaning call returns the
// raw transcript unchanged.
func (t *transcriptionService) cleanTranscript(ctx context.Context, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	prompt := t.promptBuilder.BuildCleaningPrompt(raw)
	cleaned, err := t.generator.GenerateTextWithRetry(ctx, prompt, 0.2, t.maxRetries)
	if err != nil {
		log.Printf("⚠️  Transcript cleaning failed, keeping raw transcript: %v\n", err)
		return raw
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return raw
	}

	return cleaned
}

type voiceAnalysisResponse struct {
	SentimentScore       float64  `json:"sentiment_score"`
	SentimentLabel       string   `json:"sentiment_label"`
	ConfidenceScore      float64  `json:"confidence_score"`
	ConfidenceIndicators []string `json:"confidence_indicators"`
	KeyPhrases           []string `json:"key_phrases"`
}

func (t *transcriptionService) analyzeTranscript(ctx context.Context, raw string, duration float64) (*VoiceAnalysis, error) {
	prompt := t.promptBuilder.BuildVoiceAnalysisPrompt(raw)
	response, err := t.generator.GenerateTextWithRetry(ctx, prompt, 0.3, t.maxRetries)
	if err != nil {
		return nil, err
	}

	var parsed voiceAnalysisResponse
	if err := ParseModelJSON("voice-analysis", response, &parsed); err != nil {
		return nil, err
	}

	fillerCount := CountFillerWords(raw)

	analysis := &VoiceAnalysis{
		SentimentScore:       clampFloat(parsed.SentimentScore, -1, 1),
		SentimentLabel:       parsed.SentimentLabel,
		ConfidenceScore:      clampFloat(parsed.ConfidenceScore, 0, 100),
		ConfidenceIndicators: parsed.ConfidenceIndicators,
		FluencyScore:         FluencyScore(fillerCount),
		FillerWordCount:      fillerCount,
		KeyPhrases:           parsed.KeyPhrases,
	}

	if len(analysis.KeyPhrases) > 5 {
		analysis.KeyPhrases = analysis.KeyPhrases[:5]
	}

	if duration > 0 {
		wordCount := len(strings.Fields(raw))
		analysis.WordsPerMinute = float64(wordCount) / duration * 60
	}

	return analysis, nil
}

// CountFillerWords counts filler words and disfluencies in a transcript
// against the fixed bilingual filler list.
func CountFillerWords(transcript string) int {
	return len(fillerPattern.FindAllString(transcript, -1))
}

// FluencyScore derives a fluency score from a filler-word count, clamped at
// zero.
func FluencyScore(fillerCount int) float64 {
	score := 100 - 5*float64(fillerCount)
	if score < 0 {
		return 0
	}
	return score
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
