package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirelens/applicant-evaluator/internal/models"
)

type EvaluationRepository interface {
	Create(eval *models.Evaluation) error
	FindByID(id uuid.UUID) (*models.Evaluation, error)
	UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error
	UpdateResult(id uuid.UUID, result *models.EvaluationResult, processingTime time.Duration) error
	UpdateError(id uuid.UUID, errorMsg string, processingTime time.Duration) error
	FindPendingJobs(limit int) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("evaluation not found")
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

func (r *evaluationRepository) UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) UpdateResult(id uuid.UUID, evalResult *models.EvaluationResult, processingTime time.Duration) error {
	raw, err := json.Marshal(evalResult)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation result: %w", err)
	}

	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.StatusCompleted,
			"overall_score":  evalResult.Scoring.OverallScore,
			"recommendation": evalResult.Recommendation.Recommendation,
			"confidence":     evalResult.Recommendation.Confidence,
			"result_json":    string(raw),
			"processing_ms":  processingTime.Milliseconds(),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) UpdateError(id uuid.UUID, errorMsg string, processingTime time.Duration) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"processing_ms": processingTime.Milliseconds(),
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) FindPendingJobs(limit int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return evals, nil
}
