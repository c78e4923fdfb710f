package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/applicant-evaluator/internal/models"
)

type fakeTranscription struct {
	outcomes []*TranscriptionOutcome
	calls    int
}

func (f *fakeTranscription) TranscribeAnswer(_ context.Context, _ models.VoiceAnswer) (*TranscriptionOutcome, error) {
	return nil, errors.New("not used")
}

func (f *fakeTranscription) TranscribeBatch(_ context.Context, _ []models.VoiceAnswer) []*TranscriptionOutcome {
	f.calls++
	return f.outcomes
}

type fakeProfiles struct {
	resume     *models.UnifiedProfile
	resumeErr  error
	portfolio  *models.UnifiedProfile
	parsedURLs []string
}

func (f *fakeProfiles) ParseResume(_ context.Context, _ string) (*models.UnifiedProfile, error) {
	return f.resume, f.resumeErr
}

func (f *fakeProfiles) ParsePortfolio(_ context.Context, url string) (*models.UnifiedProfile, error) {
	f.parsedURLs = append(f.parsedURLs, url)
	if f.portfolio == nil {
		return nil, &FetchError{URL: url, Reason: "unexpected status 404"}
	}
	return f.portfolio, nil
}

type fakeScorer struct {
	result  *models.ScoringResult
	err     error
	profile *models.UnifiedProfile
}

func (f *fakeScorer) ScoreCandidate(_ context.Context, _ *models.EvaluationInput, profile *models.UnifiedProfile, _ []*TranscriptionOutcome) (*models.ScoringResult, error) {
	f.profile = profile
	return f.result, f.err
}

type fakeRecommender struct {
	result *models.RecommendationResult
	err    error
}

func (f *fakeRecommender) GenerateRecommendation(_ context.Context, _ *models.ScoringResult, _ models.JobCriteria, _ string) (*models.RecommendationResult, error) {
	return f.result, f.err
}

func pipelineInput() *models.EvaluationInput {
	return &models.EvaluationInput{
		ApplicantID:    uuid.New(),
		JobID:          uuid.New(),
		Personal:       models.PersonalData{FullName: "Dana Volkov", PortfolioURL: "https://dana.dev"},
		VoiceAnswers:   []models.VoiceAnswer{{QuestionID: "q1", AudioURL: "https://cdn.example.com/a1.mp3"}},
		ResumeLocation: "https://cdn.example.com/resume.pdf",
		Criteria:       models.JobCriteria{Title: "Backend Engineer"},
	}
}

func TestEvaluateApplicant(t *testing.T) {
	sentimentA, confidenceA := 0.5, 80.0
	sentimentB, confidenceB := 0.9, 60.0

	transcription := &fakeTranscription{outcomes: []*TranscriptionOutcome{
		{QuestionID: "q1", RawTranscript: "raw one", CleanTranscript: "clean one",
			Analysis: &VoiceAnalysis{SentimentScore: sentimentA, ConfidenceScore: confidenceA}},
		{QuestionID: "q2", RawTranscript: "raw two", CleanTranscript: "clean two",
			Analysis: &VoiceAnalysis{SentimentScore: sentimentB, ConfidenceScore: confidenceB}},
		// An answer that never produced an analysis stays out of the means.
		{QuestionID: "q3"},
	}}
	profiles := &fakeProfiles{
		resume:    &models.UnifiedProfile{Summary: "Backend engineer.", Skills: []models.ProfileSkill{{Name: "Go"}}},
		portfolio: &models.UnifiedProfile{Skills: []models.ProfileSkill{{Name: "Rust"}}},
	}
	scorer := &fakeScorer{result: &models.ScoringResult{OverallScore: 84, Summary: "Strong"}}
	recommender := &fakeRecommender{result: &models.RecommendationResult{
		Recommendation: models.RecommendationHire, Confidence: 88,
	}}

	pipeline := NewPipelineService(transcription, profiles, scorer, recommender)

	var stages []models.EvaluationProgress
	outcome := pipeline.EvaluateApplicant(context.Background(), pipelineInput(), func(p models.EvaluationProgress) {
		stages = append(stages, p)
	})

	require.True(t, outcome.Success)
	require.NotNil(t, outcome.Result)
	assert.Empty(t, outcome.Error)

	result := outcome.Result
	assert.Equal(t, 84, result.Scoring.OverallScore)
	assert.Equal(t, models.RecommendationHire, result.Recommendation.Recommendation)
	assert.Len(t, result.Transcripts, 3)
	assert.Equal(t, "clean one", result.Transcripts[0].Clean)
	assert.False(t, result.EvaluatedAt.IsZero())

	// Profiles merged across sources before scoring.
	require.NotNil(t, scorer.profile)
	assert.Len(t, scorer.profile.Skills, 2)
	assert.Equal(t, []string{"https://dana.dev"}, profiles.parsedURLs)

	// Means exclude the answer without an analysis.
	require.NotNil(t, result.AvgSentiment)
	require.NotNil(t, result.AvgConfidence)
	assert.InDelta(t, 0.7, *result.AvgSentiment, 0.0001)
	assert.InDelta(t, 70.0, *result.AvgConfidence, 0.0001)

	// Progress runs the full staged sequence.
	wantStages := []models.EvaluationProgress{
		{Stage: models.StageTranscribing, Percent: 10, Message: "Transcribing voice answers"},
		{Stage: models.StageTranscribing, Percent: 30, Message: "Voice answers transcribed"},
		{Stage: models.StageParsingResume, Percent: 40, Message: "Parsing candidate profile"},
		{Stage: models.StageParsingResume, Percent: 55, Message: "Candidate profile assembled"},
		{Stage: models.StageScoring, Percent: 60, Message: "Scoring candidate against job criteria"},
		{Stage: models.StageScoring, Percent: 80, Message: "Scoring complete"},
		{Stage: models.StageRecommendation, Percent: 85, Message: "Generating recommendation"},
		{Stage: models.StageComplete, Percent: 100, Message: "Evaluation complete"},
	}
	assert.Equal(t, wantStages, stages)
}

func TestEvaluateApplicantResumeFailureNonFatal(t *testing.T) {
	profiles := &fakeProfiles{resumeErr: &FetchError{URL: "https://cdn.example.com/resume.pdf", Reason: "unexpected status 500"}}
	scorer := &fakeScorer{result: &models.ScoringResult{OverallScore: 40}}
	recommender := &fakeRecommender{result: &models.RecommendationResult{Recommendation: models.RecommendationReject}}

	pipeline := NewPipelineService(&fakeTranscription{}, profiles, scorer, recommender)

	input := pipelineInput()
	input.VoiceAnswers = nil
	input.Personal.PortfolioURL = ""

	outcome := pipeline.EvaluateApplicant(context.Background(), input, nil)

	require.True(t, outcome.Success)
	// Scoring ran with no profile at all.
	assert.Nil(t, scorer.profile)
	assert.Nil(t, outcome.Result.Profile)
}

func TestEvaluateApplicantScoringFailureFatal(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("failed to score candidate: model unavailable")}

	pipeline := NewPipelineService(&fakeTranscription{}, &fakeProfiles{}, scorer, &fakeRecommender{})

	var stages []models.EvaluationProgress
	input := pipelineInput()
	input.ResumeLocation = ""
	input.VoiceAnswers = nil

	outcome := pipeline.EvaluateApplicant(context.Background(), input, func(p models.EvaluationProgress) {
		stages = append(stages, p)
	})

	require.False(t, outcome.Success)
	assert.Nil(t, outcome.Result)
	assert.Contains(t, outcome.Error, "model unavailable")
	assert.Greater(t, outcome.ProcessingTime.Nanoseconds(), int64(0))

	last := stages[len(stages)-1]
	assert.Equal(t, models.StageFailed, last.Stage)
	assert.Equal(t, 0, last.Percent)
	assert.Contains(t, last.Message, "model unavailable")
}

func TestEvaluateApplicantRecommendationFailureFatal(t *testing.T) {
	scorer := &fakeScorer{result: &models.ScoringResult{OverallScore: 75}}
	recommender := &fakeRecommender{err: errors.New("failed to generate recommendation: quota exhausted")}

	pipeline := NewPipelineService(&fakeTranscription{}, &fakeProfiles{}, scorer, recommender)

	input := pipelineInput()
	input.ResumeLocation = ""
	input.VoiceAnswers = nil

	outcome := pipeline.EvaluateApplicant(context.Background(), input, nil)

	require.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "quota exhausted")
}

func TestEvaluateApplicantSkipsTranscriptionWithoutVoiceAnswers(t *testing.T) {
	transcription := &fakeTranscription{}
	scorer := &fakeScorer{result: &models.ScoringResult{OverallScore: 70}}
	recommender := &fakeRecommender{result: &models.RecommendationResult{Recommendation: models.RecommendationHold}}

	pipeline := NewPipelineService(transcription, &fakeProfiles{}, scorer, recommender)

	input := pipelineInput()
	input.VoiceAnswers = nil
	input.ResumeLocation = ""

	outcome := pipeline.EvaluateApplicant(context.Background(), input, nil)

	require.True(t, outcome.Success)
	assert.Equal(t, 0, transcription.calls)
	assert.Empty(t, outcome.Result.Transcripts)
	assert.Nil(t, outcome.Result.AvgSentiment)
}
