package services

import (
	"context"
	"fmt"
	"strings"

	"hirelens/applicant-evaluator/internal/models"
)

type RecommendationService interface {
	GenerateRecommendation(
		ctx context.Context,
		scoring *models.ScoringResult,
		criteria models.JobCriteria,
		candidateName string,
	) (*models.RecommendationResult, error)
}

type recommendationService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewRecommendationService(generator TextGenerator, maxRetries int) RecommendationService {
	return &recommendationService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type recommendationResponse struct {
	Recommendation     string   `json:"recommendation"`
	Confidence         float64  `json:"confidence"`
	Reason             string   `json:"reason"`
	SuggestedQuestions []string `json:"suggested_questions"`
	NextBestAction     string   `json:"next_best_action"`
}

// GenerateRecommendation implements RecommendationService. Scores below the
// job's auto-reject threshold short-circuit to a rejection without any model
// call.
func (r *recommendationService) GenerateRecommendation(
	ctx context.Context,
	scoring *models.ScoringResult,
	criteria models.JobCriteria,
	candidateName string,
) (*models.RecommendationResult, error) {
	if scoring.OverallScore < criteria.AutoRejectThreshold {
		return &models.RecommendationResult{
			Recommendation: models.RecommendationReject,
			Confidence:     95,
			Reason: fmt.Sprintf("%d is below the auto-reject threshold of %d",
				scoring.OverallScore, criteria.AutoRejectThreshold),
			SuggestedQuestions: []string{},
			NextBestAction:     "Send rejection notification",
		}, nil
	}

	prompt := r.promptBuilder.BuildRecommendationPrompt(
		candidateName,
		scoring.Summary,
		scoring.Why,
		scoring.OverallScore,
		scoring.Strengths,
		scoring.Weaknesses,
		scoring.RedFlags,
	)

	response, err := r.generator.GenerateTextWithRetry(ctx, prompt, 0.4, r.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendation: %w", err)
	}

	var parsed recommendationResponse
	if err := ParseModelJSON("recommendation", response, &parsed); err != nil {
		return nil, err
	}

	result := &models.RecommendationResult{
		Recommendation:     normalizeRecommendation(parsed.Recommendation),
		Confidence:         int(clampFloat(parsed.Confidence, 0, 100)),
		Reason:             parsed.Reason,
		SuggestedQuestions: parsed.SuggestedQuestions,
		NextBestAction:     parsed.NextBestAction,
	}

	if len(result.SuggestedQuestions) > 5 {
		result.SuggestedQuestions = result.SuggestedQuestions[:5]
	}

	return result, nil
}

// normalizeRecommendation trusts the model's categorical answer as-is and
// only maps it onto the valid enum; anything unrecognized becomes pending.
func normalizeRecommendation(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case models.RecommendationHire:
		return models.RecommendationHire
	case models.RecommendationHold:
		return models.RecommendationHold
	case models.RecommendationReject:
		return models.RecommendationReject
	default:
		return models.RecommendationPending
	}
}
