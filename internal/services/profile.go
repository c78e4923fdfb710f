package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"hirelens/applicant-evaluator/internal/models"
)

type ProfileParserService interface {
	ParseResume(ctx context.Context, location string) (*models.UnifiedProfile, error)
	ParsePortfolio(ctx context.Context, url string) (*models.UnifiedProfile, error)
}

type profileParserService struct {
	fetcher           ResourceFetcher
	extractor         DocumentExtractor
	generator         TextGenerator
	promptBuilder     *PromptBuilder
	maxRetries        int
	portfolioMaxChars int
}

func NewProfileParserService(
	fetcher ResourceFetcher,
	extractor DocumentExtractor,
	generator TextGenerator,
	maxRetries int,
	portfolioMaxChars int,
) ProfileParserService {
	if portfolioMaxChars <= 0 {
		portfolioMaxChars = 15000
	}
	return &profileParserService{
		fetcher:           fetcher,
		extractor:         extractor,
		generator:         generator,
		promptBuilder:     NewPromptBuilder(),
		maxRetries:        maxRetries,
		portfolioMaxChars: portfolioMaxChars,
	}
}

// ParseResume implements ProfileParserService. Remote documents are fetched
// and sent to the document model; local PDF paths are extracted directly.
func (p *profileParserService) ParseResume(ctx context.Context, location string) (*models.UnifiedProfile, error) {
	rawText, err := p.resumeText(ctx, location)
	if err != nil {
		return nil, err
	}

	prompt := p.promptBuilder.BuildProfileExtractionPrompt(rawText)
	response, err := p.generator.GenerateTextWithRetry(ctx, prompt, 0.2, p.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to extract structured profile: %w", err)
	}

	var profile models.UnifiedProfile
	if err := ParseModelJSON("resume-profile", response, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (p *profileParserService) resumeText(ctx context.Context, location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err := p.fetcher.Fetch(ctx, location)
		if err != nil {
			return "", err
		}

		text, err := p.extractor.ExtractDocumentText(ctx, data, "application/pdf")
		if err != nil {
			return "", fmt.Errorf("failed to extract resume text: %w", err)
		}
		return text, nil
	}

	return ExtractPDFText(location)
}

// ParsePortfolio implements ProfileParserService. The page markup is
// truncated to a bounded prefix before it reaches the model.
func (p *profileParserService) ParsePortfolio(ctx context.Context, url string) (*models.UnifiedProfile, error) {
	page, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	html := string(page)
	if len(html) > p.portfolioMaxChars {
		html = html[:p.portfolioMaxChars]
	}

	prompt := p.promptBuilder.BuildPortfolioExtractionPrompt(html)
	response, err := p.generator.GenerateTextWithRetry(ctx, prompt, 0.2, p.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to extract portfolio profile: %w", err)
	}

	var parsed struct {
		Summary string                `json:"summary"`
		Skills  []models.ProfileSkill `json:"skills"`
	}
	if err := ParseModelJSON("portfolio-profile", response, &parsed); err != nil {
		return nil, err
	}

	return &models.UnifiedProfile{
		Summary: parsed.Summary,
		Skills:  parsed.Skills,
		Links:   models.ProfileLinks{Portfolio: url},
	}, nil
}

// ExtractPDFText extracts plain text from a local PDF file.
func ExtractPDFText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", &FetchError{URL: filePath, Reason: "file does not exist"}
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", &FetchError{URL: filePath, Reason: "no text content found in PDF"}
	}

	return text, nil
}

// MergeProfiles merges up to three profiles in priority order (résumé,
// external profile A, external profile B). Scalar fields keep the longest
// non-empty summary; list fields are deduplicated by normalized key; link
// fields are last-write-wins across the sources in that order. Absent
// sources are skipped, never inserted as empty entries.
func MergeProfiles(profiles ...*models.UnifiedProfile) *models.UnifiedProfile {
	merged := &models.UnifiedProfile{}
	any := false

	seenSkills := make(map[string]bool)
	seenExperience := make(map[string]bool)
	seenEducation := make(map[string]bool)
	seenLanguages := make(map[string]bool)
	seenCertifications := make(map[string]bool)
	seenOtherLinks := make(map[string]bool)

	for _, profile := range profiles {
		if profile == nil {
			continue
		}
		any = true

		if len(strings.TrimSpace(profile.Summary)) > len(strings.TrimSpace(merged.Summary)) {
			merged.Summary = profile.Summary
		}

		for _, skill := range profile.Skills {
			key := normalizeKey(skill.Name)
			if key == "" || seenSkills[key] {
				continue
			}
			seenSkills[key] = true
			merged.Skills = append(merged.Skills, skill)
		}

		for _, exp := range profile.Experience {
			key := normalizeKey(exp.Title + "|" + exp.Company)
			if key == "|" || seenExperience[key] {
				continue
			}
			seenExperience[key] = true
			merged.Experience = append(merged.Experience, exp)
		}

		for _, edu := range profile.Education {
			key := normalizeKey(edu.Degree + "|" + edu.Institution)
			if key == "|" || seenEducation[key] {
				continue
			}
			seenEducation[key] = true
			merged.Education = append(merged.Education, edu)
		}

		for _, lang := range profile.Languages {
			key := normalizeKey(lang.Language)
			if key == "" || seenLanguages[key] {
				continue
			}
			seenLanguages[key] = true
			merged.Languages = append(merged.Languages, lang)
		}

		for _, cert := range profile.Certifications {
			key := normalizeKey(cert)
			if key == "" || seenCertifications[key] {
				continue
			}
			seenCertifications[key] = true
			merged.Certifications = append(merged.Certifications, cert)
		}

		if profile.Links.LinkedIn != "" {
			merged.Links.LinkedIn = profile.Links.LinkedIn
		}
		if profile.Links.Portfolio != "" {
			merged.Links.Portfolio = profile.Links.Portfolio
		}
		if profile.Links.Github != "" {
			merged.Links.Github = profile.Links.Github
		}
		for _, other := range profile.Links.Other {
			key := normalizeKey(other)
			if key == "" || seenOtherLinks[key] {
				continue
			}
			seenOtherLinks[key] = true
			merged.Links.Other = append(merged.Links.Other, other)
		}
	}

	if !any {
		return nil
	}

	return merged
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
