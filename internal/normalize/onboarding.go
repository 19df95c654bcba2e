package normalize

import "docsync/internal/models"

// Onboarding builds the strict OnboardingDocs shape from a raw onboarding
// payload. The run metadata (analyzed-at, repo URL, source mode) is the
// caller's, taken from the onboarding configuration rather than the agent.
func Onboarding(raw map[string]interface{}) (models.OnboardingDocs, []string) {
	d := &decoder{}

	docs := raw
	if wrapped, ok := raw["onboarding_docs"].(map[string]interface{}); ok {
		docs = wrapped
	}

	result := models.OnboardingDocs{
		ProjectOverview:     d.str(docs, "project_overview", "onboarding_docs.project_overview", ""),
		TechnologyStack:     d.str(docs, "technology_stack", "onboarding_docs.technology_stack", ""),
		APIReference:        d.str(docs, "api_reference", "onboarding_docs.api_reference", ""),
		SetupGuide:          d.str(docs, "setup_guide", "onboarding_docs.setup_guide", ""),
		DevelopmentPatterns: d.str(docs, "development_patterns", "onboarding_docs.development_patterns", ""),
		ChangelogSummary:    d.str(docs, "changelog_summary", "onboarding_docs.changelog_summary", ""),
		FullReadme:          d.str(docs, "full_readme", "onboarding_docs.full_readme", ""),
	}
	return result, d.warnings
}
