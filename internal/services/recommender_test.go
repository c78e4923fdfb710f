package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/applicant-evaluator/internal/models"
)

func TestGenerateRecommendationAutoReject(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"recommendation": "hire"}`}}
	service := NewRecommendationService(stub, 3)

	result, err := service.GenerateRecommendation(
		context.Background(),
		&models.ScoringResult{OverallScore: 35},
		models.JobCriteria{AutoRejectThreshold: 50},
		"Dana Volkov",
	)

	require.NoError(t, err)
	assert.Equal(t, models.RecommendationReject, result.Recommendation)
	assert.Equal(t, 95, result.Confidence)
	assert.Equal(t, "35 is below the auto-reject threshold of 50", result.Reason)
	assert.Empty(t, result.SuggestedQuestions)
	assert.Equal(t, "Send rejection notification", result.NextBestAction)
	// The model is never consulted for an auto-reject.
	assert.Equal(t, 0, stub.callCount())
}

func TestGenerateRecommendationAtThresholdCallsModel(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"recommendation": "hold", "confidence": 70, "reason": "Solid but needs a systems interview.", "suggested_questions": ["Walk through a recent outage."], "next_best_action": "Schedule follow-up interview"}`,
	}}
	service := NewRecommendationService(stub, 3)

	result, err := service.GenerateRecommendation(
		context.Background(),
		&models.ScoringResult{OverallScore: 50, Summary: "Borderline"},
		models.JobCriteria{AutoRejectThreshold: 50},
		"Dana Volkov",
	)

	require.NoError(t, err)
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, models.RecommendationHold, result.Recommendation)
	assert.Equal(t, 70, result.Confidence)
	assert.Equal(t, "Schedule follow-up interview", result.NextBestAction)
}

func TestGenerateRecommendationNormalizesEnum(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"HIRE", models.RecommendationHire},
		{"  Reject  ", models.RecommendationReject},
		{"strong hire", models.RecommendationPending},
		{"", models.RecommendationPending},
	}

	for _, tc := range cases {
		stub := &stubGenerator{responses: []string{
			`{"recommendation": "` + tc.raw + `", "confidence": 80, "reason": "r"}`,
		}}
		service := NewRecommendationService(stub, 3)

		result, err := service.GenerateRecommendation(
			context.Background(),
			&models.ScoringResult{OverallScore: 90},
			models.JobCriteria{},
			"Dana Volkov",
		)

		require.NoError(t, err)
		assert.Equal(t, tc.want, result.Recommendation, "raw value %q", tc.raw)
	}
}

func TestGenerateRecommendationCapsQuestions(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"recommendation": "hold", "confidence": 60, "reason": "r", "suggested_questions": ["q1","q2","q3","q4","q5","q6","q7"]}`,
	}}
	service := NewRecommendationService(stub, 3)

	result, err := service.GenerateRecommendation(
		context.Background(),
		&models.ScoringResult{OverallScore: 70},
		models.JobCriteria{},
		"Dana Volkov",
	)

	require.NoError(t, err)
	assert.Len(t, result.SuggestedQuestions, 5)
	assert.Equal(t, "q5", result.SuggestedQuestions[4])
}

func TestGenerateRecommendationClampsConfidence(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"recommendation": "hire", "confidence": 180, "reason": "r"}`,
	}}
	service := NewRecommendationService(stub, 3)

	result, err := service.GenerateRecommendation(
		context.Background(),
		&models.ScoringResult{OverallScore: 92},
		models.JobCriteria{},
		"Dana Volkov",
	)

	require.NoError(t, err)
	assert.Equal(t, 100, result.Confidence)
}

func TestGenerateRecommendationGenerationFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("model unavailable")}
	service := NewRecommendationService(stub, 3)

	_, err := service.GenerateRecommendation(
		context.Background(),
		&models.ScoringResult{OverallScore: 85},
		models.JobCriteria{},
		"Dana Volkov",
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestGenerateRecommendationMalformedResponse(t *testing.T) {
	stub := &stubGenerator{responses: []string{"no json here"}}
	service := NewRecommendationService(stub, 3)

	_, err := service.GenerateRecommendation(
		context.Background(),
		&models.ScoringResult{OverallScore: 85},
		models.JobCriteria{},
		"Dana Volkov",
	)

	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "recommendation", parseErr.Stage)
}
