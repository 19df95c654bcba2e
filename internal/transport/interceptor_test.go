package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navigatorSpy struct {
	navigatedTo []string
	replaced    []string
}

func (n *navigatorSpy) NavigateTo(ctx context.Context, url string) {
	n.navigatedTo = append(n.navigatedTo, url)
}

func (n *navigatorSpy) ReplaceDocument(ctx context.Context, html string) {
	n.replaced = append(n.replaced, html)
}

func newTestInterceptor(sink Sink, nav Navigator) *Interceptor {
	i := NewInterceptor(nil, sink, nav)
	i.logf = func(format string, args ...interface{}) {}
	return i
}

func TestInterceptor_ServerError_EmitsOneAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sink := NewCaptureSink()
	interceptor := newTestInterceptor(sink, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/agent", strings.NewReader("{}"))
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	messages := sink.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, MessageSource, messages[0].Source)
	assert.Equal(t, MessageChildAppError, messages[0].Type)

	payload, ok := messages[0].Payload.(ChildAppErrorPayload)
	require.True(t, ok)
	assert.Equal(t, ErrorKindAPI, payload.Type)
	assert.Equal(t, http.StatusServiceUnavailable, payload.Status)
	assert.Contains(t, payload.Message, "503")
	assert.NotEmpty(t, payload.Timestamp)
}

func TestInterceptor_NotFoundJSON_EmitsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer server.Close()

	sink := NewCaptureSink()
	interceptor := newTestInterceptor(sink, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/status", nil)
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()

	messages := sink.Messages()
	require.Len(t, messages, 1)
	payload, ok := messages[0].Payload.(ChildAppErrorPayload)
	require.True(t, ok)
	assert.Equal(t, ErrorKindNetwork, payload.Type)
	assert.Equal(t, http.StatusNotFound, payload.Status)
}

func TestInterceptor_NotFoundHTML_ReplacesDocument(t *testing.T) {
	const page = "<html><body>fallback</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(page))
	}))
	defer server.Close()

	sink := NewCaptureSink()
	nav := &navigatorSpy{}
	interceptor := newTestInterceptor(sink, nav)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/missing", nil)
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	assert.NoError(t, err)
	assert.Nil(t, resp)

	require.Len(t, nav.replaced, 1)
	assert.Equal(t, page, nav.replaced[0])
	assert.Empty(t, sink.Messages())
}

func TestInterceptor_Redirect_NavigatesTopLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}))
	defer server.Close()

	sink := NewCaptureSink()
	nav := &navigatorSpy{}
	interceptor := newTestInterceptor(sink, nav)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/agent", nil)
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	assert.NoError(t, err)
	assert.Nil(t, resp)

	require.Len(t, nav.navigatedTo, 1)
	assert.Equal(t, server.URL+"/login", nav.navigatedTo[0])
	assert.Empty(t, sink.Messages())
}

func TestInterceptor_ConnectionRefused_EmitsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	sink := NewCaptureSink()
	interceptor := newTestInterceptor(sink, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodPost, url+"/api/agent", strings.NewReader("{}"))
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	assert.NoError(t, err)
	assert.Nil(t, resp)

	messages := sink.Messages()
	require.Len(t, messages, 1)
	payload, ok := messages[0].Payload.(ChildAppErrorPayload)
	require.True(t, ok)
	assert.Equal(t, ErrorKindNetwork, payload.Type)
	assert.Equal(t, 0, payload.Status)
	assert.Contains(t, payload.Message, "Cannot connect to backend")
}

func TestInterceptor_ToolAuth_EmitsRequiredAndKeepsBody(t *testing.T) {
	const body = `{"detail":{"error":"tool_auth_required","tool_name":"create_pull_request","tool_source":"github_connector","action_names":["repo:write"],"reason":"GitHub authentication required"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(body))
	}))
	defer server.Close()

	sink := NewCaptureSink()
	interceptor := newTestInterceptor(sink, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/agent", strings.NewReader(`{"message":"publish"}`))
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()

	// The body was inspected but must still be fully readable downstream.
	read, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(read))

	messages := sink.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, MessageToolAuthRequired, messages[0].Type)

	payload, ok := messages[0].Payload.(ToolAuthPayload)
	require.True(t, ok)
	assert.Equal(t, "create_pull_request", payload.ToolName)
	assert.Equal(t, "github_connector", payload.ToolSource)
	assert.Equal(t, []string{"repo:write"}, payload.ActionNames)
	assert.Equal(t, "GitHub authentication required", payload.Reason)
}

func TestInterceptor_ToolAuth_MarkerWithoutFieldsStillEmits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"tool_auth_required but nothing parseable"}`))
	}))
	defer server.Close()

	sink := NewCaptureSink()
	interceptor := newTestInterceptor(sink, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/agent", strings.NewReader(`{"message":"publish"}`))
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()

	messages := sink.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, MessageToolAuthRequired, messages[0].Type)

	payload, ok := messages[0].Payload.(ToolAuthPayload)
	require.True(t, ok)
	assert.Empty(t, payload.ToolName)
	assert.Empty(t, payload.ToolSource)
	assert.Empty(t, payload.ActionNames)
	assert.Empty(t, payload.Reason)
}

func TestInterceptor_ToolAuth_IgnoredOffAgentEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"tool_auth_required"}`))
	}))
	defer server.Close()

	sink := NewCaptureSink()
	interceptor := newTestInterceptor(sink, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/settings", nil)
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()

	assert.Empty(t, sink.Messages())
}

func TestInterceptor_Success_EmitsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"response":{}}`))
	}))
	defer server.Close()

	sink := NewCaptureSink()
	nav := &navigatorSpy{}
	interceptor := newTestInterceptor(sink, nav)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/agent", strings.NewReader("{}"))
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()

	assert.Empty(t, sink.Messages())
	assert.Empty(t, nav.navigatedTo)
	assert.Empty(t, nav.replaced)
}

func TestInterceptor_PanickingSink_DoesNotFailExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	interceptor := newTestInterceptor(panickingSink{}, &navigatorSpy{})

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/agent", nil)
	require.NoError(t, err)

	resp, err := interceptor.Do(req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()
}

type panickingSink struct{}

func (panickingSink) Emit(ctx context.Context, msg FrameMessage) {
	panic("sink exploded")
}
