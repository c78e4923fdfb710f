package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCleaningPrompt creates the prompt that turns a verbatim transcript
// into a filler-free cleaned transcript.
func (pb *PromptBuilder) BuildCleaningPrompt(rawTranscript string) string {
	return fmt.Sprintf(`You are a transcript editor. Clean up the following verbatim interview answer transcript.

Rules:
- Remove filler words and disfluencies (um, uh, este, eh, repeated words, false starts)
- Fix minor grammar issues
- Preserve the original language of the transcript. NEVER translate.
- NEVER add content, opinions, or information that is not in the original.
- Keep the meaning identical.

TRANSCRIPT:
%s

Return ONLY the cleaned transcript text, no commentary.`, rawTranscript)
}

// BuildVoiceAnalysisPrompt creates the prompt for sentiment/confidence
// analysis of one cleaned answer transcript.
func (pb *PromptBuilder) BuildVoiceAnalysisPrompt(transcript string) string {
	return fmt.Sprintf(`You are an interview communication analyst. Analyze the following spoken interview answer.

TRANSCRIPT:
%s

Return your response in the following JSON format:
{
  "sentiment_score": <number from -1.0 (very negative) to 1.0 (very positive)>,
  "sentiment_label": "<negative|neutral|positive>",
  "confidence_score": <0-100, how confident the speaker sounds>,
  "confidence_indicators": ["<short textual indicator>", ...],
  "key_phrases": ["<up to 5 key phrases from the answer>"]
}

Be objective. Base every value only on the transcript content.`, transcript)
}

// BuildProfileExtractionPrompt creates the prompt that turns raw résumé text
// into the structured profile shape.
func (pb *PromptBuilder) BuildProfileExtractionPrompt(rawText string) string {
	return fmt.Sprintf(`You are a résumé parsing engine. Extract a structured profile from the résumé text below.

RESUME TEXT:
%s

Return your response in the following JSON format:
{
  "summary": "<2-3 sentence professional summary>",
  "skills": [{"name": "...", "category": "...", "years": <number or 0>, "proficiency": "..."}],
  "experience": [{"title": "...", "company": "...", "start_date": "...", "end_date": "...", "current": <bool>, "duration": "...", "responsibilities": ["..."], "achievements": ["..."]}],
  "education": [{"degree": "...", "institution": "...", "field": "...", "year": "..."}],
  "languages": [{"language": "...", "level": "..."}],
  "certifications": ["..."],
  "links": {"linkedin": "...", "portfolio": "...", "github": "...", "other": ["..."]}
}

Only include information present in the résumé. Use empty strings or empty arrays for missing fields. Return ONLY the JSON object.`, rawText)
}

// BuildPortfolioExtractionPrompt creates the prompt that extracts a partial
// profile from raw portfolio/profile page markup.
func (pb *PromptBuilder) BuildPortfolioExtractionPrompt(html string) string {
	return fmt.Sprintf(`You are a profile extraction engine. The following is raw HTML from a candidate's portfolio or professional profile page. Extract the candidate's skills, tools, and a short summary of their work.

PAGE HTML:
%s

Return your response in the following JSON format:
{
  "summary": "<short summary of the candidate's work, or empty string>",
  "skills": [{"name": "...", "category": "..."}]
}

Ignore navigation, ads, and boilerplate. Return ONLY the JSON object.`, html)
}

// BuildScoringPrompt creates the single scoring prompt: candidate dossier +
// criteria list + optional retrieved job context.
func (pb *PromptBuilder) BuildScoringPrompt(dossier, criteriaText, jobContext string) string {
	contextSection := ""
	if strings.TrimSpace(jobContext) != "" {
		contextSection = fmt.Sprintf("\nADDITIONAL JOB CONTEXT:\n%s\n", jobContext)
	}

	return fmt.Sprintf(`You are an expert HR recruiter evaluating a job candidate against a job's criteria.

CANDIDATE DOSSIER:
%s

JOB CRITERIA:
%s
%s
Evaluate the candidate against EACH criterion listed above.

Return your response in the following JSON format:
{
  "criteria": [
    {
      "name": "<criterion name>",
      "matched": <true|false>,
      "score": <0-100>,
      "weight": <1-10, importance of this criterion>,
      "reason": "<1-2 sentence justification>",
      "evidence": ["<verbatim snippet from the dossier supporting the score>"]
    }
  ],
  "strengths": ["<notable strength>"],
  "weaknesses": ["<notable weakness>"],
  "red_flags": ["<serious concern, if any>"],
  "summary": "<one sentence overall summary>",
  "why": "<short paragraph explaining the overall assessment>"
}

Be objective and cite specific evidence from the dossier. Return ONLY the JSON object.`, dossier, criteriaText, contextSection)
}

// BuildRecommendationPrompt creates the final hire/hold/reject prompt. The
// decision bands are guidance for the model, not enforced in code.
func (pb *PromptBuilder) BuildRecommendationPrompt(candidateName, summary, why string, overallScore int, strengths, weaknesses, redFlags []string) string {
	return fmt.Sprintf(`You are an expert hiring manager making a final recommendation for candidate %s.

EVALUATION RESULTS:
- Overall Score: %d/100
- Summary: %s
- Strengths: %s
- Weaknesses: %s
- Red Flags: %s
- Assessment: %s

Decision guidance:
- "hire" when the score is above 80 and there are no major red flags
- "hold" when the score is between 60 and 80, or when concerns need follow-up
- "reject" when the score is below 60 or a critical red flag exists

Return your response in the following JSON format:
{
  "recommendation": "<hire|hold|reject>",
  "confidence": <0-100>,
  "reason": "<2-3 sentence justification>",
  "suggested_questions": ["<3-5 follow-up interview questions targeting the weaknesses>"],
  "next_best_action": "<one concrete next step for the recruiter>"
}

Be direct and actionable. Return ONLY the JSON object.`,
		candidateName,
		overallScore,
		summary,
		formatList(strengths),
		formatList(weaknesses),
		formatList(redFlags),
		why,
	)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, "; ")
}
