package models

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusQueued     EvaluationStatus = "queued"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

type Evaluation struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicantID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"applicant_id"`
	JobID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"job_id"`
	Status         EvaluationStatus `gorm:"not null;default:'queued'" json:"status"`
	OverallScore   *int             `gorm:"type:integer" json:"overall_score,omitempty"`
	Recommendation *string          `gorm:"type:text" json:"recommendation,omitempty"`
	Confidence     *int             `gorm:"type:integer" json:"confidence,omitempty"`
	ResultJSON     *string          `gorm:"type:jsonb" json:"-"`
	ErrorMessage   *string          `gorm:"type:text" json:"error_message,omitempty"`
	ProcessingMs   *int64           `gorm:"type:bigint" json:"processing_ms,omitempty"`
	CreatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Applicant Applicant `gorm:"foreignKey:ApplicantID" json:"-"`
	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
