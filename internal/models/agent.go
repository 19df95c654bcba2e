package models

// AgentDescriptor identifies one remote agent reachable through the gateway.
// The registry of descriptors is defined at process start and never mutated.
type AgentDescriptor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}
