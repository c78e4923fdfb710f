package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/applicant-evaluator/internal/models"
)

type fakePipeline struct {
	outcomes map[uuid.UUID]*PipelineOutcome
	calls    []uuid.UUID
}

func (f *fakePipeline) EvaluateApplicant(_ context.Context, input *models.EvaluationInput, _ models.ProgressFunc) *PipelineOutcome {
	f.calls = append(f.calls, input.ApplicantID)
	if outcome, ok := f.outcomes[input.ApplicantID]; ok {
		return outcome
	}
	return &PipelineOutcome{Success: true, Result: &models.EvaluationResult{ApplicantID: input.ApplicantID}}
}

func TestProcessBatchMissingApplicantIsolated(t *testing.T) {
	jobID := uuid.New()
	first, missing, third := uuid.New(), uuid.New(), uuid.New()

	pipeline := &fakePipeline{}
	service := NewBatchService(pipeline, 0, nil)

	load := func(_ context.Context, applicantID, _ uuid.UUID) (*models.EvaluationInput, error) {
		if applicantID == missing {
			return nil, nil
		}
		return &models.EvaluationInput{ApplicantID: applicantID, JobID: jobID}, nil
	}

	result := service.ProcessBatch(context.Background(), jobID, []uuid.UUID{first, missing, third}, load)

	assert.Equal(t, jobID, result.JobID)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.TotalFailed)
	require.Len(t, result.Results, 3)

	assert.True(t, result.Results[0].Success)
	assert.True(t, result.Results[2].Success)

	assert.False(t, result.Results[1].Success)
	assert.Equal(t, missing, result.Results[1].ApplicantID)
	assert.Equal(t, "Candidate data not found", result.Results[1].Error)
	assert.Nil(t, result.Results[1].Result)

	// The missing applicant never reaches the pipeline.
	assert.Equal(t, []uuid.UUID{first, third}, pipeline.calls)
}

func TestProcessBatchLoaderErrorRecorded(t *testing.T) {
	jobID := uuid.New()
	applicantID := uuid.New()

	service := NewBatchService(&fakePipeline{}, 0, nil)

	load := func(_ context.Context, _, _ uuid.UUID) (*models.EvaluationInput, error) {
		return nil, errors.New("connection refused")
	}

	result := service.ProcessBatch(context.Background(), jobID, []uuid.UUID{applicantID}, load)

	assert.Equal(t, 1, result.TotalProcessed)
	assert.Equal(t, 1, result.TotalFailed)
	assert.Equal(t, "connection refused", result.Results[0].Error)
}

func TestProcessBatchPipelineFailureIsolated(t *testing.T) {
	jobID := uuid.New()
	good, bad := uuid.New(), uuid.New()

	pipeline := &fakePipeline{outcomes: map[uuid.UUID]*PipelineOutcome{
		bad: {Success: false, Error: "failed to score candidate: model unavailable"},
	}}
	service := NewBatchService(pipeline, 0, nil)

	load := func(_ context.Context, applicantID, _ uuid.UUID) (*models.EvaluationInput, error) {
		return &models.EvaluationInput{ApplicantID: applicantID, JobID: jobID}, nil
	}

	result := service.ProcessBatch(context.Background(), jobID, []uuid.UUID{bad, good}, load)

	assert.Equal(t, 1, result.TotalFailed)
	assert.False(t, result.Results[0].Success)
	assert.Contains(t, result.Results[0].Error, "model unavailable")
	assert.True(t, result.Results[1].Success)
}

func TestProcessBatchDelaysBetweenApplicants(t *testing.T) {
	jobID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var slept []time.Duration
	service := NewBatchService(&fakePipeline{}, 500*time.Millisecond, func(d time.Duration) {
		slept = append(slept, d)
	})

	load := func(_ context.Context, applicantID, _ uuid.UUID) (*models.EvaluationInput, error) {
		return &models.EvaluationInput{ApplicantID: applicantID, JobID: jobID}, nil
	}

	service.ProcessBatch(context.Background(), jobID, ids, load)

	// No delay before the first applicant; one between each following pair.
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, slept)
}

func TestProcessBatchEmpty(t *testing.T) {
	service := NewBatchService(&fakePipeline{}, 0, nil)

	result := service.ProcessBatch(context.Background(), uuid.New(), nil, func(_ context.Context, _, _ uuid.UUID) (*models.EvaluationInput, error) {
		return nil, nil
	})

	assert.Equal(t, 0, result.TotalProcessed)
	assert.Equal(t, 0, result.TotalFailed)
	assert.Empty(t, result.Results)
}
