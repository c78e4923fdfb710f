package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
	"hirelens/applicant-evaluator/internal/repositories"
	"hirelens/applicant-evaluator/internal/services"
)

type EvaluationHandler struct {
	evalRepo      repositories.EvaluationRepository
	applicantRepo repositories.ApplicantRepository
	jobRepo       repositories.JobRepository
	worker        services.Worker
}

func NewEvaluationHandler(
	evalRepo repositories.EvaluationRepository,
	applicantRepo repositories.ApplicantRepository,
	jobRepo repositories.JobRepository,
	worker services.Worker,
) *EvaluationHandler {
	return &EvaluationHandler{
		evalRepo:      evalRepo,
		applicantRepo: applicantRepo,
		jobRepo:       jobRepo,
		worker:        worker,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ApplicantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "applicant_id is required",
		})
	}

	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid applicant_id format",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	if _, err := h.applicantRepo.FindByID(applicantID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Applicant not found",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	evaluation := &models.Evaluation{
		ID:          uuid.New(),
		ApplicantID: applicantID,
		JobID:       jobID,
		Status:      models.StatusQueued,
	}

	if err := h.evalRepo.Create(evaluation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create evaluation",
		})
	}

	h.worker.EnqueueJob(evaluation.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		ID:     evaluation.ID.String(),
		Status: string(evaluation.Status),
	})
}
