package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
	"hirelens/applicant-evaluator/internal/repositories"
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
}

func NewResultHandler(evalRepo repositories.EvaluationRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	evalID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	response := models.ResultResponse{
		ID:     evaluation.ID.String(),
		Status: string(evaluation.Status),
	}

	if evaluation.Status == models.StatusCompleted && evaluation.ResultJSON != nil {
		var result models.EvaluationResult
		if err := json.Unmarshal([]byte(*evaluation.ResultJSON), &result); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode evaluation result",
			})
		}
		response.Result = &result
	}

	if evaluation.Status == models.StatusFailed {
		response.ErrorMessage = evaluation.ErrorMessage
	}

	return c.JSON(response)
}
