package services

import (
	"context"
	"log"
	"time"

	"hirelens/applicant-evaluator/internal/models"
)

// PipelineOutcome is the terminal state of one applicant's run. A failed run
// carries the triggering error message and the elapsed wall-clock time
// instead of a result.
type PipelineOutcome struct {
	Success        bool                     `json:"success"`
	Result         *models.EvaluationResult `json:"result,omitempty"`
	Error          string                   `json:"error,omitempty"`
	ProcessingTime time.Duration            `json:"processing_time"`
}

type PipelineService interface {
	EvaluateApplicant(ctx context.Context, input *models.EvaluationInput, progress models.ProgressFunc) *PipelineOutcome
}

type pipelineService struct {
	transcription TranscriptionService
	profiles      ProfileParserService
	scorer        ScoringService
	recommender   RecommendationService
}

func NewPipelineService(
	transcription TranscriptionService,
	profiles ProfileParserService,
	scorer ScoringService,
	recommender RecommendationService,
) PipelineService {
	return &pipelineService{
		transcription: transcription,
		profiles:      profiles,
		scorer:        scorer,
		recommender:   recommender,
	}
}

// EvaluateApplicant implements PipelineService. Stages run strictly in
// order: transcription and profile parsing are best-effort, scoring and
// recommendation failures are fatal to the run.
func (p *pipelineService) EvaluateApplicant(ctx context.Context, input *models.EvaluationInput, progress models.ProgressFunc) *PipelineOutcome {
	start := time.Now()
	report := progress
	if report == nil {
		report = func(models.EvaluationProgress) {}
	}

	// Stage 1: transcription.
	report(models.EvaluationProgress{Stage: models.StageTranscribing, Percent: 10, Message: "Transcribing voice answers"})

	var transcripts []*TranscriptionOutcome
	if len(input.VoiceAnswers) > 0 {
		transcripts = p.transcription.TranscribeBatch(ctx, input.VoiceAnswers)
	}

	report(models.EvaluationProgress{Stage: models.StageTranscribing, Percent: 30, Message: "Voice answers transcribed"})

	// Stage 2: profile parsing, attempted only when a résumé is present and
	// never fatal to the run.
	report(models.EvaluationProgress{Stage: models.StageParsingResume, Percent: 40, Message: "Parsing candidate profile"})

	var sources []*models.UnifiedProfile
	if input.ResumeLocation != "" {
		resumeProfile, err := p.profiles.ParseResume(ctx, input.ResumeLocation)
		if err != nil {
			log.Printf("⚠️  Resume parsing skipped for applicant %s: %v\n", input.ApplicantID, err)
		}
		sources = append(sources, resumeProfile)

		for _, link := range []string{input.Personal.PortfolioURL, input.Personal.GithubURL} {
			if link == "" {
				continue
			}
			externalProfile, err := p.profiles.ParsePortfolio(ctx, link)
			if err != nil {
				log.Printf("⚠️  External profile parsing skipped for %s: %v\n", link, err)
				continue
			}
			sources = append(sources, externalProfile)
		}
	}

	profile := MergeProfiles(sources...)

	report(models.EvaluationProgress{Stage: models.StageParsingResume, Percent: 55, Message: "Candidate profile assembled"})

	// Stage 3: scoring. Fatal on failure.
	report(models.EvaluationProgress{Stage: models.StageScoring, Percent: 60, Message: "Scoring candidate against job criteria"})

	scoring, err := p.scorer.ScoreCandidate(ctx, input, profile, transcripts)
	if err != nil {
		return p.fail(report, start, err)
	}

	report(models.EvaluationProgress{Stage: models.StageScoring, Percent: 80, Message: "Scoring complete"})

	// Stage 4: recommendation. Fatal on failure.
	report(models.EvaluationProgress{Stage: models.StageRecommendation, Percent: 85, Message: "Generating recommendation"})

	recommendation, err := p.recommender.GenerateRecommendation(ctx, scoring, input.Criteria, input.Personal.FullName)
	if err != nil {
		return p.fail(report, start, err)
	}

	result := &models.EvaluationResult{
		ApplicantID:    input.ApplicantID,
		JobID:          input.JobID,
		Scoring:        *scoring,
		Recommendation: *recommendation,
		Profile:        profile,
		EvaluatedAt:    time.Now(),
	}

	result.AvgSentiment, result.AvgConfidence = averageVoiceSignals(transcripts)

	for _, transcript := range transcripts {
		result.Transcripts = append(result.Transcripts, models.QuestionTranscript{
			QuestionID:   transcript.QuestionID,
			QuestionText: transcript.QuestionText,
			Raw:          transcript.RawTranscript,
			Clean:        transcript.CleanTranscript,
		})
	}

	report(models.EvaluationProgress{Stage: models.StageComplete, Percent: 100, Message: "Evaluation complete"})

	return &PipelineOutcome{
		Success:        true,
		Result:         result,
		ProcessingTime: time.Since(start),
	}
}

func (p *pipelineService) fail(report models.ProgressFunc, start time.Time, err error) *PipelineOutcome {
	report(models.EvaluationProgress{Stage: models.StageFailed, Percent: 0, Message: err.Error()})
	return &PipelineOutcome{
		Success:        false,
		Error:          err.Error(),
		ProcessingTime: time.Since(start),
	}
}

// averageVoiceSignals computes mean sentiment and confidence across the
// answers that produced an analysis; answers without one are excluded from
// the mean, not counted as zero.
func averageVoiceSignals(transcripts []*TranscriptionOutcome) (*float64, *float64) {
	var sentimentSum, confidenceSum float64
	count := 0

	for _, transcript := range transcripts {
		if transcript == nil || transcript.Analysis == nil {
			continue
		}
		sentimentSum += transcript.Analysis.SentimentScore
		confidenceSum += transcript.Analysis.ConfidenceScore
		count++
	}

	if count == 0 {
		return nil, nil
	}

	avgSentiment := sentimentSum / float64(count)
	avgConfidence := confidenceSum / float64(count)
	return &avgSentiment, &avgConfidence
}
