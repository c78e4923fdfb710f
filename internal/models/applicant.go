package models

import (
	"time"

	"github.com/google/uuid"
)

type Applicant struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName        string    `gorm:"type:text;not null" json:"full_name"`
	Email           string    `gorm:"type:text" json:"email"`
	Phone           string    `gorm:"type:text" json:"phone"`
	YearsExperience *float64  `gorm:"type:decimal(4,1)" json:"years_experience,omitempty"`
	ExpectedSalary  *float64  `gorm:"type:decimal(12,2)" json:"expected_salary,omitempty"`
	LinkedInURL     string    `gorm:"type:text" json:"linkedin_url,omitempty"`
	PortfolioURL    string    `gorm:"type:text" json:"portfolio_url,omitempty"`
	GithubURL       string    `gorm:"type:text" json:"github_url,omitempty"`
	ResumePath      string    `gorm:"type:text" json:"resume_path,omitempty"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}

// Job stores the posting itself plus the serialized JobCriteria the scoring
// engine consumes. Criteria lives in one JSON column so the weighted list can
// vary per posting without schema churn.
type Job struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	CriteriaJSON string    `gorm:"type:jsonb" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

type VoiceResponse struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant_id"`
	JobID        uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	QuestionID   string    `gorm:"type:text;not null" json:"question_id"`
	QuestionText string    `gorm:"type:text" json:"question_text"`
	Weight       int       `gorm:"default:1" json:"weight"`
	AudioURL     string    `gorm:"type:text;not null" json:"audio_url"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (VoiceResponse) TableName() string {
	return "voice_responses"
}

type TextResponse struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant_id"`
	JobID        uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	QuestionID   string    `gorm:"type:text;not null" json:"question_id"`
	QuestionText string    `gorm:"type:text" json:"question_text"`
	Answer       string    `gorm:"type:text" json:"answer"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (TextResponse) TableName() string {
	return "text_responses"
}
