package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
	"hirelens/applicant-evaluator/internal/repositories"
)

// DataLoaderFunc assembles the evaluation input for one applicant. A nil
// input with a nil error means the data is absent, which is a non-fatal
// per-applicant failure.
type DataLoaderFunc func(ctx context.Context, applicantID, jobID uuid.UUID) (*models.EvaluationInput, error)

type BatchEntry struct {
	ApplicantID uuid.UUID                `json:"applicant_id"`
	Success     bool                     `json:"success"`
	Error       string                   `json:"error,omitempty"`
	Result      *models.EvaluationResult `json:"result,omitempty"`
}

type BatchResult struct {
	JobID          uuid.UUID    `json:"job_id"`
	TotalProcessed int          `json:"total_processed"`
	TotalFailed    int          `json:"total_failed"`
	Results        []BatchEntry `json:"results"`
}

type BatchService interface {
	ProcessBatch(ctx context.Context, jobID uuid.UUID, applicantIDs []uuid.UUID, load DataLoaderFunc) *BatchResult
}

type batchService struct {
	pipeline PipelineService
	delay    time.Duration
	sleep    func(time.Duration)
}

// NewBatchService builds the batch coordinator. The sleep function is
// injectable so tests run without real inter-applicant delays; nil means
// time.Sleep.
func NewBatchService(pipeline PipelineService, delay time.Duration, sleep func(time.Duration)) BatchService {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &batchService{
		pipeline: pipeline,
		delay:    delay,
		sleep:    sleep,
	}
}

// ProcessBatch implements BatchService. Applicants are processed strictly
// one after another; a per-applicant failure is recorded and never aborts
// the batch.
func (b *batchService) ProcessBatch(ctx context.Context, jobID uuid.UUID, applicantIDs []uuid.UUID, load DataLoaderFunc) *BatchResult {
	result := &BatchResult{
		JobID:          jobID,
		TotalProcessed: len(applicantIDs),
	}

	for i, applicantID := range applicantIDs {
		if i > 0 && b.delay > 0 {
			// Spacing between applicants keeps the external services sane.
			b.sleep(b.delay)
		}

		entry := b.processApplicant(ctx, applicantID, jobID, load)
		if !entry.Success {
			result.TotalFailed++
		}
		result.Results = append(result.Results, entry)
	}

	log.Printf("📊 Batch for job %s finished: %d processed, %d failed\n", jobID, result.TotalProcessed, result.TotalFailed)

	return result
}

func (b *batchService) processApplicant(ctx context.Context, applicantID, jobID uuid.UUID, load DataLoaderFunc) BatchEntry {
	input, err := load(ctx, applicantID, jobID)
	if err != nil {
		return BatchEntry{ApplicantID: applicantID, Error: err.Error()}
	}
	if input == nil {
		return BatchEntry{ApplicantID: applicantID, Error: "Candidate data not found"}
	}

	outcome := b.pipeline.EvaluateApplicant(ctx, input, nil)
	if !outcome.Success {
		return BatchEntry{ApplicantID: applicantID, Error: outcome.Error}
	}

	return BatchEntry{ApplicantID: applicantID, Success: true, Result: outcome.Result}
}

// NewRepositoryLoader builds the store-backed data loader used by the API
// surface. A missing applicant or job maps to the absent-data outcome
// instead of an error.
func NewRepositoryLoader(
	applicantRepo repositories.ApplicantRepository,
	jobRepo repositories.JobRepository,
	responseRepo repositories.ResponseRepository,
) DataLoaderFunc {
	return func(ctx context.Context, applicantID, jobID uuid.UUID) (*models.EvaluationInput, error) {
		applicant, err := applicantRepo.FindByID(applicantID)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				return nil, nil
			}
			return nil, err
		}

		job, err := jobRepo.FindByID(jobID)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				return nil, nil
			}
			return nil, err
		}

		criteria, err := jobRepo.CriteriaFor(job)
		if err != nil {
			return nil, err
		}

		voiceResponses, err := responseRepo.FindVoiceResponses(applicantID, jobID)
		if err != nil {
			return nil, err
		}

		textResponses, err := responseRepo.FindTextResponses(applicantID, jobID)
		if err != nil {
			return nil, err
		}

		input := &models.EvaluationInput{
			ApplicantID: applicantID,
			JobID:       jobID,
			Personal: models.PersonalData{
				FullName:        applicant.FullName,
				Email:           applicant.Email,
				Phone:           applicant.Phone,
				YearsExperience: applicant.YearsExperience,
				ExpectedSalary:  applicant.ExpectedSalary,
				LinkedInURL:     applicant.LinkedInURL,
				PortfolioURL:    applicant.PortfolioURL,
				GithubURL:       applicant.GithubURL,
			},
			ResumeLocation: applicant.ResumePath,
			Criteria:       criteria,
		}

		for _, response := range voiceResponses {
			input.VoiceAnswers = append(input.VoiceAnswers, models.VoiceAnswer{
				QuestionID:   response.QuestionID,
				QuestionText: response.QuestionText,
				Weight:       response.Weight,
				AudioURL:     response.AudioURL,
			})
		}

		for _, response := range textResponses {
			input.TextAnswers = append(input.TextAnswers, models.TextAnswer{
				QuestionID:   response.QuestionID,
				QuestionText: response.QuestionText,
				Answer:       response.Answer,
			})
		}

		return input, nil
	}
}
