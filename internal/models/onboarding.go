package models

// SourceMode selects what the onboarding agent reads to build documentation.
type SourceMode string

const (
	SourcePullRequests SourceMode = "pull_requests"
	SourceCommits      SourceMode = "commits"
)

// OnboardingIncludeOptions toggles the documentation sections requested from
// the onboarding agent.
type OnboardingIncludeOptions struct {
	Architecture bool `json:"architecture"`
	APIReference bool `json:"apiReference"`
	SetupGuide   bool `json:"setupGuide"`
	TechStack    bool `json:"techStack"`
	DevPatterns  bool `json:"devPatterns"`
	Changelog    bool `json:"changelog"`
}

// OnboardingConfig is the user-chosen configuration for one onboarding run.
type OnboardingConfig struct {
	RepoURL        string                   `json:"repoUrl"`
	PRCount        int                      `json:"prCount"`
	Branches       []string                 `json:"branches"`
	SourceMode     SourceMode               `json:"sourceMode"`
	IncludeOptions OnboardingIncludeOptions `json:"includeOptions"`
}

// OnboardingDocs holds the seven generated project documents.
type OnboardingDocs struct {
	ProjectOverview     string `json:"project_overview"`
	TechnologyStack     string `json:"technology_stack"`
	APIReference        string `json:"api_reference"`
	SetupGuide          string `json:"setup_guide"`
	DevelopmentPatterns string `json:"development_patterns"`
	ChangelogSummary    string `json:"changelog_summary"`
	FullReadme          string `json:"full_readme"`
}

// OnboardingResult is the strict shape of one onboarding-agent response.
type OnboardingResult struct {
	Docs        OnboardingDocs `json:"docs"`
	AnalyzedAt  string         `json:"analyzed_at"`
	PRsAnalyzed int            `json:"prs_analyzed"`
	RepoURL     string         `json:"repo_url"`
	SourceMode  SourceMode     `json:"source_mode"`
}
