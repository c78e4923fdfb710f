package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirelens/applicant-evaluator/internal/models"
)

type ApplicantRepository interface {
	Create(applicant *models.Applicant) error
	FindByID(id uuid.UUID) (*models.Applicant, error)
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(applicant *models.Applicant) error {
	if err := r.db.Create(applicant).Error; err != nil {
		return fmt.Errorf("failed to create applicant: %w", err)
	}
	return nil
}

func (r *applicantRepository) FindByID(id uuid.UUID) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := r.db.Where("id = ?", id).First(&applicant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("applicant not found")
		}
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}
	return &applicant, nil
}

type JobRepository interface {
	Create(job *models.Job, criteria models.JobCriteria) error
	FindByID(id uuid.UUID) (*models.Job, error)
	CriteriaFor(job *models.Job) (models.JobCriteria, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job, criteria models.JobCriteria) error {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal job criteria: %w", err)
	}
	job.CriteriaJSON = string(raw)

	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// CriteriaFor decodes the criteria column. The title and description columns
// win over whatever was serialized so posting edits are always reflected.
func (r *jobRepository) CriteriaFor(job *models.Job) (models.JobCriteria, error) {
	var criteria models.JobCriteria
	if job.CriteriaJSON != "" {
		if err := json.Unmarshal([]byte(job.CriteriaJSON), &criteria); err != nil {
			return criteria, fmt.Errorf("failed to unmarshal job criteria: %w", err)
		}
	}
	criteria.Title = job.Title
	criteria.Description = job.Description
	return criteria, nil
}

type ResponseRepository interface {
	FindVoiceResponses(applicantID, jobID uuid.UUID) ([]models.VoiceResponse, error)
	FindTextResponses(applicantID, jobID uuid.UUID) ([]models.TextResponse, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindVoiceResponses(applicantID, jobID uuid.UUID) ([]models.VoiceResponse, error) {
	var responses []models.VoiceResponse
	err := r.db.
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find voice responses: %w", err)
	}
	return responses, nil
}

func (r *responseRepository) FindTextResponses(applicantID, jobID uuid.UUID) ([]models.TextResponse, error) {
	var responses []models.TextResponse
	err := r.db.
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find text responses: %w", err)
	}
	return responses, nil
}
