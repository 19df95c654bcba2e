package models

// MergedPR is one merged pull request shown on the dashboard. The analysis
// prompt is composed from this metadata only; diff content never leaves the
// repository.
type MergedPR struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	AuthorAvatar string   `json:"author_avatar"`
	MergeDate    string   `json:"merge_date"`
	Branch       string   `json:"branch"`
	FilesChanged int      `json:"files_changed"`
	Additions    int      `json:"additions"`
	Deletions    int      `json:"deletions"`
	Categories   []string `json:"categories"`
	PRNumber     int      `json:"pr_number"`
	Status       string   `json:"status"` // "pending" | "analyzed" | "committed"
}
