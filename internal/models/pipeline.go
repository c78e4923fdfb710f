package models

import "github.com/google/uuid"

// PersonalData is the applicant's self-reported information as submitted
// with the application.
type PersonalData struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	YearsExperience *float64 `json:"years_experience,omitempty"`
	ExpectedSalary  *float64 `json:"expected_salary,omitempty"`
	LinkedInURL     string   `json:"linkedin_url,omitempty"`
	PortfolioURL    string   `json:"portfolio_url,omitempty"`
	GithubURL       string   `json:"github_url,omitempty"`
}

type VoiceAnswer struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	Weight       int    `json:"weight"`
	AudioURL     string `json:"audio_url"`
}

type TextAnswer struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	Answer       string `json:"answer"`
}

type SkillRequirement struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

type LanguageRequirement struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type CustomCriterion struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Weight      int    `json:"weight"`
	Required    bool   `json:"required"`
}

// JobCriteria is everything a job posting contributes to scoring: the
// requirement lists, the salary bounds, and the auto-reject threshold.
type JobCriteria struct {
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	MinYearsExperience  float64               `json:"min_years_experience"`
	Skills              []SkillRequirement    `json:"skills,omitempty"`
	Languages           []LanguageRequirement `json:"languages,omitempty"`
	Custom              []CustomCriterion     `json:"custom,omitempty"`
	SalaryMin           *float64              `json:"salary_min,omitempty"`
	SalaryMax           *float64              `json:"salary_max,omitempty"`
	AutoRejectThreshold int                   `json:"auto_reject_threshold"`
}

// EvaluationInput is the immutable per-run input assembled from the store
// before the pipeline starts. The pipeline never reads the database itself.
type EvaluationInput struct {
	ApplicantID    uuid.UUID     `json:"applicant_id"`
	JobID          uuid.UUID     `json:"job_id"`
	Personal       PersonalData  `json:"personal"`
	VoiceAnswers   []VoiceAnswer `json:"voice_answers,omitempty"`
	TextAnswers    []TextAnswer  `json:"text_answers,omitempty"`
	ResumeLocation string        `json:"resume_location,omitempty"`
	Criteria       JobCriteria   `json:"criteria"`
}

const (
	StageTranscribing   = "transcribing"
	StageParsingResume  = "parsing_resume"
	StageScoring        = "scoring"
	StageRecommendation = "generating_recommendation"
	StageComplete       = "complete"
	StageFailed         = "failed"
)

type EvaluationProgress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressFunc observes pipeline progress. It must never block and has no
// influence on the pipeline outcome.
type ProgressFunc func(EvaluationProgress)
