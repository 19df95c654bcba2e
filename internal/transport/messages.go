package transport

// MessageSource identifies this app to the hosting frame.
const MessageSource = "architect-child-app"

// Cross-frame message types.
const (
	MessageChildAppError    = "CHILD_APP_ERROR"
	MessageToolAuthRequired = "TOOL_AUTH_REQUIRED"
)

// CHILD_APP_ERROR kinds.
const (
	ErrorKindAPI     = "api_error"
	ErrorKindNetwork = "network_error"
)

// FrameMessage is the outbound message shape the hosting frame expects.
type FrameMessage struct {
	Source  string      `json:"source"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ChildAppErrorPayload reports a failing backend exchange to the hosting
// frame.
type ChildAppErrorPayload struct {
	Type      string `json:"type"` // "api_error" | "network_error"
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // ISO-8601
	URL       string `json:"url"`
	Endpoint  string `json:"endpoint"`
	Status    int    `json:"status,omitempty"`
}

// ToolAuthPayload reports a tool-authentication-required condition. Any field
// may be absent; absent fields are never guessed.
type ToolAuthPayload struct {
	ToolName    string   `json:"tool_name,omitempty"`
	ToolSource  string   `json:"tool_source,omitempty"`
	ActionNames []string `json:"action_names,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

func newChildAppError(kind, message, endpoint, url string, status int, timestamp string) FrameMessage {
	return FrameMessage{
		Source: MessageSource,
		Type:   MessageChildAppError,
		Payload: ChildAppErrorPayload{
			Type:      kind,
			Message:   message,
			Timestamp: timestamp,
			URL:       url,
			Endpoint:  endpoint,
			Status:    status,
		},
	}
}

func newToolAuthRequired(detail ToolAuthDetail) FrameMessage {
	return FrameMessage{
		Source: MessageSource,
		Type:   MessageToolAuthRequired,
		Payload: ToolAuthPayload{
			ToolName:    detail.ToolName,
			ToolSource:  detail.ToolSource,
			ActionNames: detail.ActionNames,
			Reason:      detail.Reason,
		},
	}
}
