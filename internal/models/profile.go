package models

type ProfileSkill struct {
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Years       float64 `json:"years,omitempty"`
	Proficiency string  `json:"proficiency,omitempty"`
}

type WorkExperience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Current          bool     `json:"current,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

type LanguageProficiency struct {
	Language string `json:"language"`
	Level    string `json:"level,omitempty"`
}

type ProfileLinks struct {
	LinkedIn  string   `json:"linkedin,omitempty"`
	Portfolio string   `json:"portfolio,omitempty"`
	Github    string   `json:"github,omitempty"`
	Other     []string `json:"other,omitempty"`
}

// UnifiedProfile is the deduplicated merge of every structured-profile
// source available for one candidate (résumé first, then external profiles).
type UnifiedProfile struct {
	Summary        string                `json:"summary,omitempty"`
	Skills         []ProfileSkill        `json:"skills,omitempty"`
	Experience     []WorkExperience      `json:"experience,omitempty"`
	Education      []Education           `json:"education,omitempty"`
	Languages      []LanguageProficiency `json:"languages,omitempty"`
	Certifications []string              `json:"certifications,omitempty"`
	Links          ProfileLinks          `json:"links,omitempty"`
}
