package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
	"hirelens/applicant-evaluator/internal/repositories"
	"hirelens/applicant-evaluator/internal/services"
)

type BatchHandler struct {
	evalRepo     repositories.EvaluationRepository
	jobRepo      repositories.JobRepository
	batchService services.BatchService
	loader       services.DataLoaderFunc
}

func NewBatchHandler(
	evalRepo repositories.EvaluationRepository,
	jobRepo repositories.JobRepository,
	batchService services.BatchService,
	loader services.DataLoaderFunc,
) *BatchHandler {
	return &BatchHandler{
		evalRepo:     evalRepo,
		jobRepo:      jobRepo,
		batchService: batchService,
		loader:       loader,
	}
}

// HandleBatchEvaluate handles POST /evaluate/batch. The batch runs
// synchronously; each applicant's outcome is persisted as its own
// evaluation record before the aggregate summary is returned.
func (h *BatchHandler) HandleBatchEvaluate(c *fiber.Ctx) error {
	var req models.BatchEvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	if len(req.ApplicantIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "applicant_ids is required",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	applicantIDs := make([]uuid.UUID, 0, len(req.ApplicantIDs))
	for _, raw := range req.ApplicantIDs {
		applicantID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid applicant id: " + raw,
			})
		}
		applicantIDs = append(applicantIDs, applicantID)
	}

	started := time.Now()
	result := h.batchService.ProcessBatch(c.Context(), jobID, applicantIDs, h.loader)
	h.persistBatch(result, time.Since(started))

	return c.JSON(result)
}

func (h *BatchHandler) persistBatch(result *services.BatchResult, elapsed time.Duration) {
	for _, entry := range result.Results {
		evaluation := &models.Evaluation{
			ID:          uuid.New(),
			ApplicantID: entry.ApplicantID,
			JobID:       result.JobID,
			Status:      models.StatusQueued,
		}
		if err := h.evalRepo.Create(evaluation); err != nil {
			continue
		}

		if entry.Success {
			h.evalRepo.UpdateResult(evaluation.ID, entry.Result, elapsed)
		} else {
			h.evalRepo.UpdateError(evaluation.ID, entry.Error, elapsed)
		}
	}
}
