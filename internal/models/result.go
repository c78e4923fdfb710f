package models

import (
	"time"

	"github.com/google/uuid"
)

// CriterionMatch is one evaluated criterion. Weight stays in [1,10] and
// score in [0,100]; out-of-range model values are clamped, never rejected.
type CriterionMatch struct {
	Name     string   `json:"name"`
	Matched  bool     `json:"matched"`
	Score    float64  `json:"score"`
	Weight   float64  `json:"weight"`
	Reason   string   `json:"reason,omitempty"`
	Evidence []string `json:"evidence,omitempty"`
}

// ScoringResult carries the weighted overall score plus the qualitative
// assessment. OverallScore is always derived from Matches, never supplied.
type ScoringResult struct {
	OverallScore int              `json:"overall_score"`
	Matches      []CriterionMatch `json:"matches"`
	Strengths    []string         `json:"strengths,omitempty"`
	Weaknesses   []string         `json:"weaknesses,omitempty"`
	RedFlags     []string         `json:"red_flags,omitempty"`
	Summary      string           `json:"summary,omitempty"`
	Why          string           `json:"why,omitempty"`
}

const (
	RecommendationHire    = "hire"
	RecommendationHold    = "hold"
	RecommendationReject  = "reject"
	RecommendationPending = "pending"
)

type RecommendationResult struct {
	Recommendation     string   `json:"recommendation"`
	Confidence         int      `json:"confidence"`
	Reason             string   `json:"reason,omitempty"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
	NextBestAction     string   `json:"next_best_action,omitempty"`
}

type QuestionTranscript struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text,omitempty"`
	Raw          string `json:"raw"`
	Clean        string `json:"clean"`
}

// EvaluationResult is the terminal artifact of one successful pipeline run.
// It is never mutated after construction; a re-evaluation produces a new one.
type EvaluationResult struct {
	ApplicantID    uuid.UUID            `json:"applicant_id"`
	JobID          uuid.UUID            `json:"job_id"`
	Scoring        ScoringResult        `json:"scoring"`
	Recommendation RecommendationResult `json:"recommendation"`
	AvgSentiment   *float64             `json:"avg_sentiment,omitempty"`
	AvgConfidence  *float64             `json:"avg_confidence,omitempty"`
	Transcripts    []QuestionTranscript `json:"transcripts,omitempty"`
	Profile        *UnifiedProfile      `json:"profile,omitempty"`
	EvaluatedAt    time.Time            `json:"evaluated_at"`
}

// API request/response shapes.

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Kind         string `json:"kind"`
}

type EvaluateRequest struct {
	ApplicantID string `json:"applicant_id"`
	JobID       string `json:"job_id"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BatchEvaluateRequest struct {
	JobID        string   `json:"job_id"`
	ApplicantIDs []string `json:"applicant_ids"`
}

type ResultResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Result       *EvaluationResult `json:"result,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}
