package mocks

import (
	"context"
	"sync"

	"docsync/internal/agents"
)

// AgentInvokerMock records every invocation. Without an InvokeFunc it
// returns a bare success envelope, which exercises normalization defaults.
type AgentInvokerMock struct {
	InvokeFunc func(ctx context.Context, message, agentID string) agents.Envelope

	mu    sync.Mutex
	Calls []InvokeCall
}

type InvokeCall struct {
	Message string
	AgentID string
}

func (m *AgentInvokerMock) Invoke(ctx context.Context, message, agentID string) agents.Envelope {
	m.mu.Lock()
	m.Calls = append(m.Calls, InvokeCall{Message: message, AgentID: agentID})
	m.mu.Unlock()
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, message, agentID)
	}
	return agents.Envelope{Success: true, Response: map[string]interface{}{}}
}

func (m *AgentInvokerMock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
