package models

// ChangeItem is a single change the coordinator agent detected in a PR.
type ChangeItem struct {
	FilePath    string `json:"file_path"`
	ChangeType  string `json:"change_type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// ChangeCategories buckets detected changes. Every list is present even when
// empty; the normalizer guarantees nil never leaks into these slices.
type ChangeCategories struct {
	APIEndpoints []ChangeItem `json:"api_endpoints"`
	Schemas      []ChangeItem `json:"schemas"`
	Configs      []ChangeItem `json:"configs"`
	Dependencies []ChangeItem `json:"dependencies"`
	CodePatterns []ChangeItem `json:"code_patterns"`
}

type ChangeReport struct {
	Summary      string           `json:"summary"`
	TotalChanges int              `json:"total_changes"`
	Categories   ChangeCategories `json:"categories"`
}

// Documentation holds the editable documentation drafts for one analysis.
type Documentation struct {
	APIDocs        string `json:"api_docs"`
	ReadmeSections string `json:"readme_sections"`
	ChangelogEntry string `json:"changelog_entry"`
	Summary        string `json:"summary"`
}

// PRRef pins an analysis to the PR it was produced for.
type PRRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	PRNumber int    `json:"pr_number"`
	Author   string `json:"author"`
	Branch   string `json:"branch"`
}

// AnalysisResult is the strict shape of one coordinator-agent response. It is
// superseded wholesale by the next analysis of the same PR, never merged.
type AnalysisResult struct {
	ChangeReport  ChangeReport  `json:"change_report"`
	Documentation Documentation `json:"documentation"`
	PR            PRRef         `json:"pr"`
	AnalyzedAt    string        `json:"analyzed_at"`
}
