package agents

import "docsync/internal/models"

// Fixed ids of the three remote agents behind the gateway.
const (
	CoordinatorAgentID = "69a271e024f2adeb72b9fd14"
	PublisherAgentID   = "69a271e1f18a4f26754c8a98"
	OnboardingAgentID  = "69a277988e6d0e51fd5cd32f"
)

var registry = []models.AgentDescriptor{
	{ID: CoordinatorAgentID, Name: "Documentation Coordinator", Purpose: "Analyzes PR diffs and generates documentation"},
	{ID: PublisherAgentID, Name: "Documentation Publisher", Purpose: "Commits documentation updates to repository"},
	{ID: OnboardingAgentID, Name: "Repository Onboarding", Purpose: "Generates project docs from PR history"},
}

// Registry returns the static agent registry. Callers get a copy; the
// registry itself never changes after process start.
func Registry() []models.AgentDescriptor {
	out := make([]models.AgentDescriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves an agent id to its descriptor.
func Lookup(id string) (models.AgentDescriptor, bool) {
	for _, agent := range registry {
		if agent.ID == id {
			return agent, true
		}
	}
	return models.AgentDescriptor{}, false
}
