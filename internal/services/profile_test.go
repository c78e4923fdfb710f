package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/applicant-evaluator/internal/models"
)

func sampleProfile() *models.UnifiedProfile {
	return &models.UnifiedProfile{
		Summary: "Backend engineer with eight years of Go and distributed systems experience.",
		Skills: []models.ProfileSkill{
			{Name: "Go", Category: "backend", Years: 8},
			{Name: "PostgreSQL", Category: "database", Years: 6},
		},
		Experience: []models.WorkExperience{
			{Title: "Senior Engineer", Company: "Acme", StartDate: "2019", Current: true},
		},
		Education: []models.Education{
			{Degree: "BSc", Institution: "TU Delft", Field: "Computer Science"},
		},
		Languages: []models.LanguageProficiency{
			{Language: "English", Level: "fluent"},
		},
		Certifications: []string{"CKA"},
		Links:          models.ProfileLinks{LinkedIn: "https://linkedin.com/in/dana"},
	}
}

func TestMergeProfilesIdempotent(t *testing.T) {
	profile := sampleProfile()

	merged := MergeProfiles(profile, profile)

	require.NotNil(t, merged)
	assert.Len(t, merged.Skills, 2)
	assert.Len(t, merged.Experience, 1)
	assert.Len(t, merged.Education, 1)
	assert.Len(t, merged.Languages, 1)
	assert.Len(t, merged.Certifications, 1)
	assert.Equal(t, profile.Summary, merged.Summary)
}

func TestMergeProfilesDedupCaseInsensitive(t *testing.T) {
	first := &models.UnifiedProfile{
		Skills: []models.ProfileSkill{{Name: "Go"}},
	}
	second := &models.UnifiedProfile{
		Skills: []models.ProfileSkill{{Name: "go"}, {Name: "Rust"}},
	}

	merged := MergeProfiles(first, second)

	require.NotNil(t, merged)
	require.Len(t, merged.Skills, 2)
	// The first source's entry wins for a duplicate key.
	assert.Equal(t, "Go", merged.Skills[0].Name)
	assert.Equal(t, "Rust", merged.Skills[1].Name)
}

func TestMergeProfilesLongestSummaryWins(t *testing.T) {
	short := &models.UnifiedProfile{Summary: "Engineer."}
	long := &models.UnifiedProfile{Summary: "Engineer with a decade of experience building data platforms."}

	assert.Equal(t, long.Summary, MergeProfiles(short, long).Summary)
	assert.Equal(t, long.Summary, MergeProfiles(long, short).Summary)
}

func TestMergeProfilesLinksLastWriteWins(t *testing.T) {
	resume := &models.UnifiedProfile{
		Links: models.ProfileLinks{LinkedIn: "https://linkedin.com/in/old", Github: "https://github.com/dana"},
	}
	external := &models.UnifiedProfile{
		Links: models.ProfileLinks{LinkedIn: "https://linkedin.com/in/new"},
	}

	merged := MergeProfiles(resume, external)

	require.NotNil(t, merged)
	assert.Equal(t, "https://linkedin.com/in/new", merged.Links.LinkedIn)
	assert.Equal(t, "https://github.com/dana", merged.Links.Github)
}

func TestMergeProfilesSkipsAbsentSources(t *testing.T) {
	profile := sampleProfile()

	withNils := MergeProfiles(nil, profile, nil)
	alone := MergeProfiles(profile)

	require.NotNil(t, withNils)
	assert.Equal(t, alone, withNils)
}

func TestMergeProfilesAllAbsent(t *testing.T) {
	assert.Nil(t, MergeProfiles())
	assert.Nil(t, MergeProfiles(nil, nil))
}

func TestParsePortfolioTruncatesInput(t *testing.T) {
	page := strings.Repeat("x", 20000)
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"https://dana.dev": []byte(page),
	}}
	stub := &stubGenerator{responses: []string{`{"summary": "Builds Go tooling.", "skills": [{"name": "Go"}]}`}}

	parser := NewProfileParserService(fetcher, nil, stub, 3, 15000)

	profile, err := parser.ParsePortfolio(context.Background(), "https://dana.dev")

	require.NoError(t, err)
	assert.Equal(t, "Builds Go tooling.", profile.Summary)
	assert.Equal(t, "https://dana.dev", profile.Links.Portfolio)
	// The prompt carries at most the bounded page prefix.
	assert.Less(t, len(stub.lastPrompt()), 16000)
}

func TestParsePortfolioFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string][]byte{}}
	parser := NewProfileParserService(fetcher, nil, &stubGenerator{}, 3, 15000)

	_, err := parser.ParsePortfolio(context.Background(), "https://gone.example.com")

	require.Error(t, err)
	fetchErr, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, "https://gone.example.com", fetchErr.URL)
}
