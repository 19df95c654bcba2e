package models

// WorkflowState is the snapshot the presentation layer renders from. All
// fields are owned by the workflow service; the frontend never writes them.
type WorkflowState struct {
	ActiveScreen     Screen            `json:"activeScreen"`
	ActiveAgentID    string            `json:"activeAgentId"`
	SelectedPR       *MergedPR         `json:"selectedPr"`
	AnalysisResult   *AnalysisResult   `json:"analysisResult"`
	PublishResult    *PublishResult    `json:"publishResult"`
	OnboardingResult *OnboardingResult `json:"onboardingResult"`
	AgentError       string            `json:"agentError"`
	PublishError     string            `json:"publishError"`
	IsAnalyzing      bool              `json:"isAnalyzing"`
	IsPublishing     bool              `json:"isPublishing"`
	IsOnboarding     bool              `json:"isOnboarding"`
}
