package models

import "time"

// History entry statuses.
const (
	HistoryStatusPending   = "pending"
	HistoryStatusCommitted = "committed"
	HistoryStatusDiscarded = "discarded"
)

// HistoryEntry is one past analysis/publish outcome. Entries are immutable
// once created; the ledger only ever grows from the front.
type HistoryEntry struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	PRName          string    `gorm:"size:512;not null" json:"pr_name"`
	PRNumber        int       `gorm:"not null" json:"pr_number"`
	DateAnalyzed    string    `gorm:"size:32;not null" json:"date_analyzed"`
	ChangesDetected int       `gorm:"not null" json:"changes_detected"`
	Status          string    `gorm:"size:16;not null;index" json:"status"` // "pending" | "committed" | "discarded"
	GithubPRURL     string    `gorm:"size:512" json:"github_pr_url"`
	ChangeSummary   string    `gorm:"type:text" json:"change_summary"`
	CreatedAt       time.Time `json:"-"`
}
