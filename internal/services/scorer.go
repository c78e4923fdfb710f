package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hirelens/applicant-evaluator/internal/models"
)

var figurePrinter = message.NewPrinter(language.English)

// BudgetCheck is the deterministic salary check run before any model call.
type BudgetCheck struct {
	WithinBudget bool
	Difference   float64
	RedFlag      string
}

// CheckBudget compares a salary expectation against the job's budget
// ceiling. Absent expectation or absent ceiling always passes.
func CheckBudget(expected, salaryMin, salaryMax *float64) BudgetCheck {
	if expected == nil || salaryMax == nil {
		return BudgetCheck{WithinBudget: true}
	}

	if *expected <= *salaryMax {
		return BudgetCheck{WithinBudget: true}
	}

	difference := *expected - *salaryMax
	return BudgetCheck{
		WithinBudget: false,
		Difference:   difference,
		RedFlag: figurePrinter.Sprintf(
			"Salary expectation of %d exceeds the budget ceiling of %d by %d",
			int64(*expected), int64(*salaryMax), int64(difference),
		),
	}
}

// AggregateScore computes the weight-normalized mean of criterion scores,
// rounded to the nearest integer. Weights are clamped to [1,10] and scores
// to [0,100] before aggregation; an empty list scores 0.
func AggregateScore(matches []models.CriterionMatch) int {
	if len(matches) == 0 {
		return 0
	}

	var weightedSum, weightSum float64
	for _, match := range matches {
		weight := clampFloat(match.Weight, 1, 10)
		score := clampFloat(match.Score, 0, 100)
		weightedSum += score * weight
		weightSum += weight
	}

	if weightSum == 0 {
		return 0
	}

	return int(math.Round(weightedSum / weightSum))
}

type ScoringService interface {
	ScoreCandidate(
		ctx context.Context,
		input *models.EvaluationInput,
		profile *models.UnifiedProfile,
		transcripts []*TranscriptionOutcome,
	) (*models.ScoringResult, error)
}

type scoringService struct {
	generator     TextGenerator
	embedder      Embedder
	contextIndex  ContextIndexService
	promptBuilder *PromptBuilder
	maxRetries    int
}

// NewScoringService builds the scoring engine. The embedder and context
// index are optional; when absent the scoring prompt simply carries no
// retrieved job context.
func NewScoringService(
	generator TextGenerator,
	embedder Embedder,
	contextIndex ContextIndexService,
	maxRetries int,
) ScoringService {
	return &scoringService{
		generator:     generator,
		embedder:      embedder,
		contextIndex:  contextIndex,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type scoringResponse struct {
	Criteria   []models.CriterionMatch `json:"criteria"`
	Strengths  []string                `json:"strengths"`
	Weaknesses []string                `json:"weaknesses"`
	RedFlags   []string                `json:"red_flags"`
	Summary    string                  `json:"summary"`
	Why        string                  `json:"why"`
}

// ScoreCandidate implements ScoringService.
func (s *scoringService) ScoreCandidate(
	ctx context.Context,
	input *models.EvaluationInput,
	profile *models.UnifiedProfile,
	transcripts []*TranscriptionOutcome,
) (*models.ScoringResult, error) {
	// Deterministic budget check first, no model involved.
	budget := CheckBudget(input.Personal.ExpectedSalary, input.Criteria.SalaryMin, input.Criteria.SalaryMax)

	dossier := buildDossier(input, profile, transcripts)
	criteriaText := buildCriteriaText(input.Criteria)
	jobContext := s.retrieveJobContext(ctx, input.Criteria)

	prompt := s.promptBuilder.BuildScoringPrompt(dossier, criteriaText, jobContext)

	response, err := s.generator.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scoring evaluation: %w", err)
	}

	var parsed scoringResponse
	if err := ParseModelJSON("scoring", response, &parsed); err != nil {
		return nil, err
	}

	for i := range parsed.Criteria {
		parsed.Criteria[i].Weight = clampFloat(parsed.Criteria[i].Weight, 1, 10)
		parsed.Criteria[i].Score = clampFloat(parsed.Criteria[i].Score, 0, 100)
	}

	result := &models.ScoringResult{
		OverallScore: AggregateScore(parsed.Criteria),
		Matches:      parsed.Criteria,
		Strengths:    parsed.Strengths,
		Weaknesses:   parsed.Weaknesses,
		RedFlags:     parsed.RedFlags,
		Summary:      parsed.Summary,
		Why:          parsed.Why,
	}

	// The budget flag is appended after the model call so it survives even
	// when the model omits red flags.
	if !budget.WithinBudget {
		result.RedFlags = append(result.RedFlags, budget.RedFlag)
	}

	return result, nil
}

func (s *scoringService) retrieveJobContext(ctx context.Context, criteria models.JobCriteria) string {
	if s.embedder == nil || s.contextIndex == nil {
		return ""
	}

	query := fmt.Sprintf("Job requirements and scoring criteria for %s", criteria.Title)
	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to embed job-context query: %v\n", err)
		return ""
	}

	var allResults []SearchResult
	for _, docType := range []string{"job_description", "scoring_rubric"} {
		results, err := s.contextIndex.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search job context for %s: %v\n", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	return FormatContextSnippets(allResults)
}

func buildDossier(input *models.EvaluationInput, profile *models.UnifiedProfile, transcripts []*TranscriptionOutcome) string {
	var b strings.Builder

	b.WriteString("PERSONAL DATA:\n")
	fmt.Fprintf(&b, "- Name: %s\n", input.Personal.FullName)
	if input.Personal.Email != "" {
		fmt.Fprintf(&b, "- Email: %s\n", input.Personal.Email)
	}
	if input.Personal.YearsExperience != nil {
		fmt.Fprintf(&b, "- Self-reported experience: %.1f years\n", *input.Personal.YearsExperience)
	}
	if input.Personal.ExpectedSalary != nil {
		fmt.Fprintf(&b, "- Salary expectation: %.0f\n", *input.Personal.ExpectedSalary)
	}

	if profile != nil {
		b.WriteString("\nPROFILE:\n")
		if profile.Summary != "" {
			fmt.Fprintf(&b, "- Summary: %s\n", profile.Summary)
		}
		if len(profile.Skills) > 0 {
			var skills []string
			for _, skill := range profile.Skills {
				if skill.Years > 0 {
					skills = append(skills, fmt.Sprintf("%s (%.1f years)", skill.Name, skill.Years))
				} else {
					skills = append(skills, skill.Name)
				}
			}
			fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(skills, ", "))
		}
		for _, exp := range profile.Experience {
			fmt.Fprintf(&b, "- Experience: %s at %s (%s)\n", exp.Title, exp.Company, experiencePeriod(exp))
			for _, achievement := range exp.Achievements {
				fmt.Fprintf(&b, "  - Achievement: %s\n", achievement)
			}
		}
		for _, edu := range profile.Education {
			fmt.Fprintf(&b, "- Education: %s, %s\n", edu.Degree, edu.Institution)
		}
		for _, lang := range profile.Languages {
			fmt.Fprintf(&b, "- Language: %s (%s)\n", lang.Language, lang.Level)
		}
		if len(profile.Certifications) > 0 {
			fmt.Fprintf(&b, "- Certifications: %s\n", strings.Join(profile.Certifications, ", "))
		}
	}

	if len(transcripts) > 0 {
		b.WriteString("\nVOICE ANSWERS:\n")
		for _, transcript := range transcripts {
			if strings.TrimSpace(transcript.CleanTranscript) == "" {
				continue
			}
			fmt.Fprintf(&b, "- Q: %s\n  A: %s\n", transcript.QuestionText, transcript.CleanTranscript)
			if transcript.Analysis != nil {
				fmt.Fprintf(&b, "  (sentiment %.2f %s, confidence %.0f, fluency %.0f)\n",
					transcript.Analysis.SentimentScore,
					transcript.Analysis.SentimentLabel,
					transcript.Analysis.ConfidenceScore,
					transcript.Analysis.FluencyScore,
				)
			}
		}
	}

	if len(input.TextAnswers) > 0 {
		b.WriteString("\nWRITTEN ANSWERS:\n")
		for _, answer := range input.TextAnswers {
			fmt.Fprintf(&b, "- Q: %s\n  A: %s\n", answer.QuestionText, answer.Answer)
		}
	}

	return b.String()
}

func buildCriteriaText(criteria models.JobCriteria) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Position: %s\n", criteria.Title)
	if criteria.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", criteria.Description)
	}
	if criteria.MinYearsExperience > 0 {
		fmt.Fprintf(&b, "Minimum experience: %.1f years\n", criteria.MinYearsExperience)
	}

	var required, preferred []string
	for _, skill := range criteria.Skills {
		if skill.Required {
			required = append(required, skill.Name)
		} else {
			preferred = append(preferred, skill.Name)
		}
	}
	if len(required) > 0 {
		fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(required, ", "))
	}
	if len(preferred) > 0 {
		fmt.Fprintf(&b, "Preferred skills: %s\n", strings.Join(preferred, ", "))
	}

	for _, lang := range criteria.Languages {
		fmt.Fprintf(&b, "Language requirement: %s (%s)\n", lang.Language, lang.Proficiency)
	}

	for _, custom := range criteria.Custom {
		requiredTag := ""
		if custom.Required {
			requiredTag = ", required"
		}
		fmt.Fprintf(&b, "Criterion: %s (weight %d%s)", custom.Name, custom.Weight, requiredTag)
		if custom.Description != "" {
			fmt.Fprintf(&b, " - %s", custom.Description)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func experiencePeriod(exp models.WorkExperience) string {
	if exp.Duration != "" {
		return exp.Duration
	}
	end := exp.EndDate
	if exp.Current {
		end = "present"
	}
	return strings.TrimSpace(exp.StartDate + " - " + end)
}
