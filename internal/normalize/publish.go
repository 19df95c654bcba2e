package normalize

import "docsync/internal/models"

// Publish builds the strict PublishResult shape from a raw publisher
// payload. Some gateway versions wrap the fields in `publish_result`, others
// return them at the top level; the wrapper wins when present.
func Publish(raw map[string]interface{}) (models.PublishResult, []string) {
	d := &decoder{}

	pub := raw
	if wrapped, ok := raw["publish_result"].(map[string]interface{}); ok {
		pub = wrapped
	}

	result := models.PublishResult{
		Status:        d.str(pub, "status", "publish_result.status", "success"),
		BranchName:    d.str(pub, "branch_name", "publish_result.branch_name", ""),
		PRURL:         d.str(pub, "pr_url", "publish_result.pr_url", ""),
		PRNumber:      d.num(pub, "pr_number", "publish_result.pr_number"),
		CommitMessage: d.str(pub, "commit_message", "publish_result.commit_message", ""),
		FilesUpdated:  d.strList(pub, "files_updated", "publish_result.files_updated"),
	}
	return result, d.warnings
}
