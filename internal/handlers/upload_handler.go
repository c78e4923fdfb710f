package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
	"hirelens/applicant-evaluator/internal/repositories"
	"hirelens/applicant-evaluator/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. Accepts a "resume" PDF and any number
// of "audio" answer recordings in one multipart form.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	var responses []models.UploadResponse

	if resumeFiles, exists := form.File["resume"]; exists && len(resumeFiles) > 0 {
		response, status, err := h.saveOne(resumeFiles[0], models.DocumentKindResume)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		responses = append(responses, *response)
	}

	for _, audioFile := range form.File["audio"] {
		response, status, err := h.saveOne(audioFile, models.DocumentKindAudio)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		responses = append(responses, *response)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no resume or audio files provided",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uploads": responses,
	})
}

func (h *UploadHandler) saveOne(file *multipart.FileHeader, kind models.DocumentKind) (*models.UploadResponse, int, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.StatusBadRequest,
			fmt.Errorf("%s file too large. Max size: %d bytes", kind, h.maxFileSize)
	}

	filename, filePath, err := h.storageService.SaveFile(file, kind)
	if err != nil {
		return nil, fiber.StatusBadRequest,
			fmt.Errorf("failed to save %s file: %v", kind, err)
	}

	document := &models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		Kind:             kind,
		FilePath:         filePath,
	}

	if err := h.docRepo.Create(document); err != nil {
		return nil, fiber.StatusInternalServerError,
			fmt.Errorf("failed to record %s upload: %v", kind, err)
	}

	return &models.UploadResponse{
		ID:           document.ID.String(),
		Filename:     filename,
		OriginalName: file.Filename,
		Kind:         string(kind),
	}, 0, nil
}
