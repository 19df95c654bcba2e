package models

import "time"

// CategoryPreferences toggles which change categories the user wants
// documented.
type CategoryPreferences struct {
	APIEndpoints bool `json:"apiEndpoints"`
	Schemas      bool `json:"schemas"`
	Configs      bool `json:"configs"`
	Dependencies bool `json:"dependencies"`
	CodeExamples bool `json:"codeExamples"`
}

// AppSettings is the single live settings instance, mutated wholesale on
// save. The backing table is session-local (in-memory database).
type AppSettings struct {
	ID                uint                `gorm:"primaryKey" json:"id"` // single-row table (ID=1)
	RepoURL           string              `gorm:"size:512" json:"repoUrl"`
	MonitoredBranches []string            `gorm:"serializer:json" json:"monitoredBranches"`
	DocPaths          []string            `gorm:"serializer:json" json:"docPaths"`
	Preferences       CategoryPreferences `gorm:"serializer:json" json:"preferences"`
	OutputFormat      string              `gorm:"size:16;not null;default:markdown" json:"outputFormat"` // "markdown" | "rst"
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// DefaultAppSettings returns the settings used before the user saves any.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		ID:                1,
		RepoURL:           "",
		MonitoredBranches: []string{"main"},
		DocPaths:          []string{"docs/", "README.md", "CHANGELOG.md"},
		Preferences: CategoryPreferences{
			APIEndpoints: true,
			Schemas:      true,
			Configs:      true,
			Dependencies: true,
			CodeExamples: true,
		},
		OutputFormat: "markdown",
	}
}
