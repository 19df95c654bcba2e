package models

// PublishResult is the strict shape of one publisher-agent response. At most
// one is live at a time; publishing is not idempotent.
type PublishResult struct {
	Status        string   `json:"status"`
	BranchName    string   `json:"branch_name"`
	PRURL         string   `json:"pr_url"`
	PRNumber      int      `json:"pr_number"`
	CommitMessage string   `json:"commit_message"`
	FilesUpdated  []string `json:"files_updated"`
}
