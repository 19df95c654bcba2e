package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"docsync/internal/transport"
)

// Envelope is the uniform result of one agent invocation. Exactly one of
// Response (on success) or Error (on failure) is meaningful.
type Envelope struct {
	Success  bool                   `json:"success"`
	Response map[string]interface{} `json:"response,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Invoker issues a single request/response exchange to a named agent.
type Invoker interface {
	Invoke(ctx context.Context, message, agentID string) Envelope
}

// Doer is the outbound HTTP surface; in production it is the transport
// interceptor, which may legitimately return (nil, nil) for exchanges it
// handled and terminated itself.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client invokes agents through the gateway. It performs exactly one
// exchange per call (no retries, no streaming) and carries no knowledge of
// which agent role it is used for.
type Client struct {
	baseURL string
	doer    Doer
	apiKey  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey supplies a credential source consulted on every invocation;
// empty keys are simply not sent.
func WithAPIKey(key func() string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

func NewClient(baseURL string, doer Doer, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		doer:    doer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type invokeRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

// wire mirrors Envelope but keeps Success optional so older gateway
// responses that omit it can still be classified.
type wire struct {
	Success  *bool                  `json:"success"`
	Response map[string]interface{} `json:"response"`
	Error    string                 `json:"error"`
}

func failure(format string, args ...interface{}) Envelope {
	return Envelope{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Invoke sends message to the agent identified by agentID and returns the
// uniform envelope. It never returns an error: every failure mode collapses
// into a failed envelope with a human-readable message.
func (c *Client) Invoke(ctx context.Context, message, agentID string) Envelope {
	if strings.TrimSpace(message) == "" {
		return failure("message is required")
	}
	if strings.TrimSpace(agentID) == "" {
		return failure("agent id is required")
	}
	if c.baseURL == "" {
		return failure("agent gateway base URL is not configured")
	}

	payload, err := json.Marshal(invokeRequest{Message: message, AgentID: agentID})
	if err != nil {
		return failure("failed to encode agent request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transport.AgentEndpointPath, bytes.NewReader(payload))
	if err != nil {
		return failure("failed to create agent request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != nil {
		if key := c.apiKey(); key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return failure("agent invocation failed: %v", err)
	}
	if resp == nil {
		// The transport classified and terminated the exchange itself.
		return failure("agent gateway returned no response")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure("failed to read agent response: %v", err)
	}

	var decoded wire
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return failure("agent invocation failed with status %d", resp.StatusCode)
		}
		return failure("failed to decode agent response: %v", err)
	}

	if decoded.Error != "" && (decoded.Success == nil || !*decoded.Success) {
		return Envelope{Success: false, Error: decoded.Error}
	}
	if decoded.Success != nil && !*decoded.Success {
		return Envelope{Success: false, Error: "agent invocation failed"}
	}
	if resp.StatusCode != http.StatusOK {
		return failure("agent invocation failed with status %d", resp.StatusCode)
	}

	return Envelope{Success: true, Response: decoded.Response}
}
