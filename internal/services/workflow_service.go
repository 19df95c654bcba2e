package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"docsync/internal/agents"
	"docsync/internal/events"
	"docsync/internal/models"
	"docsync/internal/normalize"
)

// analyzedAtLayout is the human-readable stamp shown on results.
const analyzedAtLayout = "2006-01-02 15:04:05"

// WorkflowService is the state machine at the center of the app. It owns the
// active screen, the single active agent invocation, the strict results and
// the per-stage error banners, and it is the only writer of the history
// ledger.
//
// Invocations are single-flight per role: starting a new one bumps that
// role's generation token, and a completion holding a stale token is dropped
// without touching state. The active-agent slot is released on every path,
// current or stale, success or failure.
type WorkflowService struct {
	context  context.Context
	agents   agents.Invoker
	history  HistoryService
	settings AppSettingsService

	mu               sync.Mutex
	activeScreen     models.Screen
	activeAgentID    string
	selectedPR       *models.MergedPR
	analysisResult   *models.AnalysisResult
	publishResult    *models.PublishResult
	onboardingResult *models.OnboardingResult
	agentError       string
	publishError     string
	isAnalyzing      bool
	isPublishing     bool
	isOnboarding     bool

	analysisGen   uint64
	publishGen    uint64
	onboardingGen uint64
}

func NewWorkflowService(invoker agents.Invoker, history HistoryService, settings AppSettingsService) *WorkflowService {
	return &WorkflowService{
		agents:       invoker,
		history:      history,
		settings:     settings,
		activeScreen: models.ScreenDashboard,
	}
}

func (s *WorkflowService) Startup(ctx context.Context) error {
	s.context = ctx
	if s.agents == nil {
		return fmt.Errorf("agent invoker not configured")
	}
	if s.history == nil {
		return fmt.Errorf("history service not configured")
	}
	if s.settings == nil {
		return fmt.Errorf("app settings service not configured")
	}
	return nil
}

// ListAgents exposes the static registry to the presentation layer.
func (s *WorkflowService) ListAgents() []models.AgentDescriptor {
	return agents.Registry()
}

// State returns a consistent snapshot for rendering.
func (s *WorkflowService) State() models.WorkflowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.WorkflowState{
		ActiveScreen:     s.activeScreen,
		ActiveAgentID:    s.activeAgentID,
		SelectedPR:       s.selectedPR,
		AnalysisResult:   s.analysisResult,
		PublishResult:    s.publishResult,
		OnboardingResult: s.onboardingResult,
		AgentError:       s.agentError,
		PublishError:     s.publishError,
		IsAnalyzing:      s.isAnalyzing,
		IsPublishing:     s.isPublishing,
		IsOnboarding:     s.isOnboarding,
	}
}

// Navigate switches the active screen. Navigation has no side effects beyond
// the screen itself, except that leaving onboarding for the dashboard resets
// the onboarding result and invalidates any in-flight onboarding call.
func (s *WorkflowService) Navigate(screen string) (models.Screen, error) {
	target := models.Screen(screen)
	if !target.Valid() {
		return "", fmt.Errorf("unknown screen: %s", screen)
	}

	s.mu.Lock()
	if s.activeScreen == models.ScreenOnboarding && target == models.ScreenDashboard {
		s.onboardingResult = nil
		s.onboardingGen++
		s.isOnboarding = false
		if !s.isAnalyzing && !s.isPublishing {
			s.activeAgentID = ""
		}
	}
	s.activeScreen = target
	ctx := s.context
	s.mu.Unlock()

	s.emit(ctx, events.WorkflowScreen, "", events.NewInfo("screen: "+screen))
	return target, nil
}

// AnalyzePR runs the dashboard -> review transition: select the PR, clear
// publish state from any prior review, and ask the coordinator agent for an
// analysis. A failed invocation leaves the prior analysis (nil on first
// attempt) untouched and surfaces one error string.
func (s *WorkflowService) AnalyzePR(pr models.MergedPR) (*models.AnalysisResult, error) {
	s.mu.Lock()
	prCopy := pr
	s.selectedPR = &prCopy
	s.isAnalyzing = true
	s.activeAgentID = agents.CoordinatorAgentID
	s.agentError = ""
	s.publishResult = nil
	s.publishError = ""
	s.activeScreen = models.ScreenReview
	s.analysisGen++
	gen := s.analysisGen
	ctx := s.context
	s.mu.Unlock()

	defer s.release(&s.isAnalyzing, &s.analysisGen, gen)

	s.emit(ctx, events.WorkflowAnalysis, agents.CoordinatorAgentID, events.NewInfo(fmt.Sprintf("analyzing PR #%d", pr.PRNumber)))

	env := s.agents.Invoke(ctx, buildAnalysisPrompt(pr), agents.CoordinatorAgentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.analysisGen {
		// A newer analysis superseded this one while it was in flight.
		return nil, nil
	}

	if !env.Success {
		s.agentError = errorMessage(env.Error, "Analysis failed")
		s.emit(ctx, events.WorkflowAnalysis, agents.CoordinatorAgentID, events.NewError(s.agentError))
		return nil, nil
	}

	result, warnings := normalize.Analysis(normalize.Result(env.Response))
	result.PR = models.PRRef{
		ID:       pr.ID,
		Title:    pr.Title,
		PRNumber: pr.PRNumber,
		Author:   pr.Author,
		Branch:   pr.Branch,
	}
	result.AnalyzedAt = time.Now().Format(analyzedAtLayout)
	s.analysisResult = &result

	s.warnDefaults(ctx, events.WorkflowAnalysis, agents.CoordinatorAgentID, warnings)
	s.emit(ctx, events.WorkflowAnalysis, agents.CoordinatorAgentID, events.NewSuccess(fmt.Sprintf("analysis ready for PR #%d", pr.PRNumber)))
	return &result, nil
}

// Regenerate re-runs the analysis for the currently selected PR, fully
// replacing the prior analysis, publish result and errors for it.
func (s *WorkflowService) Regenerate() (*models.AnalysisResult, error) {
	s.mu.Lock()
	pr := s.selectedPR
	s.mu.Unlock()
	if pr == nil {
		return nil, errors.New("no PR selected")
	}
	return s.AnalyzePR(*pr)
}

// CommitAndPush runs the review publish transition with the user-edited
// documentation. Publishing is not idempotent: a second attempt while one is
// outstanding, or after this analysis already published, is rejected.
func (s *WorkflowService) CommitAndPush(docs models.Documentation) (*models.PublishResult, error) {
	s.mu.Lock()
	if s.analysisResult == nil {
		s.mu.Unlock()
		return nil, errors.New("no analysis to publish")
	}
	if s.isPublishing {
		s.mu.Unlock()
		return nil, errors.New("publish already in progress")
	}
	if s.publishResult != nil {
		s.mu.Unlock()
		return nil, errors.New("documentation already published for this analysis")
	}
	analysis := *s.analysisResult
	s.isPublishing = true
	s.activeAgentID = agents.PublisherAgentID
	s.publishError = ""
	s.publishGen++
	gen := s.publishGen
	ctx := s.context
	s.mu.Unlock()

	defer s.release(&s.isPublishing, &s.publishGen, gen)

	s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewInfo(fmt.Sprintf("publishing docs for PR #%d", analysis.PR.PRNumber)))

	repoURL := s.repoURL()
	env := s.agents.Invoke(ctx, buildPublishPrompt(repoURL, &analysis, docs), agents.PublisherAgentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.publishGen {
		return nil, nil
	}

	if !env.Success {
		s.publishError = errorMessage(env.Error, "Publish failed")
		s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewError(s.publishError))
		return nil, nil
	}

	pub, warnings := normalize.Publish(normalize.Result(env.Response))
	s.publishResult = &pub
	s.warnDefaults(ctx, events.WorkflowPublish, agents.PublisherAgentID, warnings)

	entry := models.HistoryEntry{
		PRName:          analysis.PR.Title,
		PRNumber:        analysis.PR.PRNumber,
		DateAnalyzed:    time.Now().Format("2006-01-02"),
		ChangesDetected: analysis.ChangeReport.TotalChanges,
		Status:          models.HistoryStatusCommitted,
		GithubPRURL:     pub.PRURL,
		ChangeSummary:   analysis.ChangeReport.Summary,
	}
	if _, err := s.history.Prepend(entry); err != nil {
		// The publish itself succeeded; a ledger write failure is surfaced
		// but does not undo it.
		s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewError("failed to record history entry: "+err.Error()))
	}

	s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewSuccess(fmt.Sprintf("docs published for PR #%d", analysis.PR.PRNumber)))
	return &pub, nil
}

// Discard clears the review state and returns to the dashboard. In-flight
// analysis or publish results for the discarded review are invalidated.
func (s *WorkflowService) Discard() models.Screen {
	s.mu.Lock()
	s.analysisResult = nil
	s.publishResult = nil
	s.publishError = ""
	s.analysisGen++
	s.publishGen++
	// Invalidated invocations no longer own the busy slot; their stale
	// completions must find it already released.
	s.isAnalyzing = false
	s.isPublishing = false
	if !s.isOnboarding {
		s.activeAgentID = ""
	}
	s.activeScreen = models.ScreenDashboard
	ctx := s.context
	s.mu.Unlock()

	s.emit(ctx, events.WorkflowScreen, "", events.NewInfo("review discarded"))
	return models.ScreenDashboard
}

// StartOnboarding asks the onboarding agent to generate the full project
// documentation set for a repository.
func (s *WorkflowService) StartOnboarding(cfg models.OnboardingConfig) (*models.OnboardingResult, error) {
	cfg.RepoURL = strings.TrimSpace(cfg.RepoURL)
	if cfg.RepoURL == "" {
		return nil, errors.New("repository URL is required")
	}
	if len(cfg.Branches) == 0 {
		return nil, errors.New("at least one branch is required")
	}
	if cfg.SourceMode != models.SourceCommits {
		cfg.SourceMode = models.SourcePullRequests
	}

	s.mu.Lock()
	s.isOnboarding = true
	s.activeAgentID = agents.OnboardingAgentID
	s.agentError = ""
	s.onboardingGen++
	gen := s.onboardingGen
	ctx := s.context
	s.mu.Unlock()

	defer s.release(&s.isOnboarding, &s.onboardingGen, gen)

	s.emit(ctx, events.WorkflowOnboarding, agents.OnboardingAgentID, events.NewInfo("onboarding analysis started for "+cfg.RepoURL))

	env := s.agents.Invoke(ctx, buildOnboardingPrompt(cfg), agents.OnboardingAgentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.onboardingGen {
		return nil, nil
	}

	if !env.Success {
		s.agentError = errorMessage(env.Error, "Onboarding analysis failed")
		s.emit(ctx, events.WorkflowOnboarding, agents.OnboardingAgentID, events.NewError(s.agentError))
		return nil, nil
	}

	docs, warnings := normalize.Onboarding(normalize.Result(env.Response))
	result := models.OnboardingResult{
		Docs:        docs,
		AnalyzedAt:  time.Now().Format(analyzedAtLayout),
		PRsAnalyzed: cfg.PRCount,
		RepoURL:     cfg.RepoURL,
		SourceMode:  cfg.SourceMode,
	}
	s.onboardingResult = &result

	s.warnDefaults(ctx, events.WorkflowOnboarding, agents.OnboardingAgentID, warnings)
	s.emit(ctx, events.WorkflowOnboarding, agents.OnboardingAgentID, events.NewSuccess("onboarding docs generated for "+cfg.RepoURL))
	return &result, nil
}

// CommitOnboardingDocs publishes all seven onboarding documents to the fixed
// onboarding branch. It parallels CommitAndPush but never touches the
// history ledger.
func (s *WorkflowService) CommitOnboardingDocs(docs models.OnboardingDocs) (*models.PublishResult, error) {
	s.mu.Lock()
	if s.onboardingResult == nil {
		s.mu.Unlock()
		return nil, errors.New("no onboarding docs to publish")
	}
	if s.isPublishing {
		s.mu.Unlock()
		return nil, errors.New("publish already in progress")
	}
	s.isPublishing = true
	s.activeAgentID = agents.PublisherAgentID
	s.publishError = ""
	s.publishResult = nil
	s.publishGen++
	gen := s.publishGen
	ctx := s.context
	s.mu.Unlock()

	defer s.release(&s.isPublishing, &s.publishGen, gen)

	s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewInfo("publishing onboarding docs"))

	repoURL := s.repoURL()
	env := s.agents.Invoke(ctx, buildOnboardingPublishPrompt(repoURL, docs), agents.PublisherAgentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.publishGen {
		return nil, nil
	}

	if !env.Success {
		s.publishError = errorMessage(env.Error, "Publish failed")
		s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewError(s.publishError))
		return nil, nil
	}

	pub, warnings := normalize.Publish(normalize.Result(env.Response))
	s.publishResult = &pub
	s.warnDefaults(ctx, events.WorkflowPublish, agents.PublisherAgentID, warnings)
	s.emit(ctx, events.WorkflowPublish, agents.PublisherAgentID, events.NewSuccess("onboarding docs published"))
	return &pub, nil
}

// DismissAgentError clears the analysis/onboarding error banner.
func (s *WorkflowService) DismissAgentError() {
	s.mu.Lock()
	s.agentError = ""
	s.mu.Unlock()
}

// DismissPublishError clears the publish error banner.
func (s *WorkflowService) DismissPublishError() {
	s.mu.Lock()
	s.publishError = ""
	s.mu.Unlock()
}

// release frees the busy flag and the active-agent slot, but only when gen
// is still current: a superseding invocation owns the slot by then. Runs on
// every completion path so the controller can never stay perpetually busy.
func (s *WorkflowService) release(busy *bool, current *uint64, gen uint64) {
	s.mu.Lock()
	if *current == gen {
		*busy = false
		s.activeAgentID = ""
	}
	s.mu.Unlock()
}

func (s *WorkflowService) repoURL() string {
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		return ""
	}
	return settings.RepoURL
}

func (s *WorkflowService) warnDefaults(ctx context.Context, name, agentID string, warnings []string) {
	for _, warning := range warnings {
		s.emit(ctx, name, agentID, events.NewWarn("defaulted field: "+warning))
	}
}

func (s *WorkflowService) emit(ctx context.Context, name, agentID string, evt events.AppEvent) {
	if ctx == nil {
		return
	}
	evt.AgentID = agentID
	events.Emit(ctx, name, evt)
}

func errorMessage(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
