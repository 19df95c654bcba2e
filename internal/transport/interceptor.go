package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// AgentEndpointPath marks agent-invocation requests; only their bodies are
// inspected for the tool-auth signal.
const AgentEndpointPath = "/api/agent"

const defaultTimeout = 240 * time.Second

// Interceptor wraps every outbound HTTP call, classifies the response and
// emits one typed notification per classification. Handled-and-terminated
// paths (redirect, 404 with an HTML body, network failure) return (nil, nil):
// classification outcomes surface through the sink, never as errors to the
// caller.
type Interceptor struct {
	client *http.Client
	sink   Sink
	nav    Navigator
	logf   func(format string, args ...interface{})
}

// NewInterceptor builds an interceptor around client. A nil client gets a
// default that does not follow redirects, so expired-session redirects are
// observed rather than silently chased.
func NewInterceptor(client *http.Client, sink Sink, nav Navigator) *Interceptor {
	if client == nil {
		client = &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return &Interceptor{client: client, sink: sink, nav: nav, logf: log.Printf}
}

func (i *Interceptor) Do(req *http.Request) (*http.Response, error) {
	requestURL := req.URL.String()

	resp, err := i.client.Do(req)
	if err != nil {
		i.notify(req, newChildAppError(
			ErrorKindNetwork,
			fmt.Sprintf("Network error: Cannot connect to backend (%s)", requestURL),
			requestURL, requestURL, 0, isoNow(),
		))
		return nil, nil
	}

	// Expired hosting session: the backend answers with a redirect (often to
	// /login) and the whole document must re-authenticate at the top level.
	if target := redirectTarget(resp); target != "" {
		resp.Body.Close()
		i.nav.NavigateTo(req.Context(), target)
		return nil, nil
	}

	if strings.Contains(req.URL.Path, AgentEndpointPath) && hasContentType(resp, "application/json") {
		i.inspectToolAuth(req, resp)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && hasContentType(resp, "text/html"):
		// Backend-rendered fallback page: swap the whole document for it.
		html, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		i.nav.ReplaceDocument(req.Context(), string(html))
		return nil, nil

	case resp.StatusCode == http.StatusNotFound:
		i.notify(req, newChildAppError(
			ErrorKindNetwork,
			fmt.Sprintf("Backend returned 404 Not Found for %s", requestURL),
			requestURL, requestURL, http.StatusNotFound, isoNow(),
		))

	case resp.StatusCode >= http.StatusInternalServerError:
		i.notify(req, newChildAppError(
			ErrorKindAPI,
			fmt.Sprintf("Backend returned %d error for %s", resp.StatusCode, requestURL),
			requestURL, requestURL, resp.StatusCode, isoNow(),
		))
	}

	return resp, nil
}

// inspectToolAuth reads the body looking for the tool-auth signal and
// restores it so the caller can still consume the response normally.
func (i *Interceptor) inspectToolAuth(req *http.Request, resp *http.Response) {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return
	}

	if !bytes.Contains(body, []byte(toolAuthMarker)) {
		return
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Not JSON after all; nothing to report.
		return
	}

	// The marker alone is the signal; an empty detail still goes out so the
	// hosting frame learns auth is needed even when nothing was extractable.
	detail, ok := DetectToolAuth(decoded, string(body))
	if !ok {
		return
	}
	if detail.Partial {
		i.logf("transport: partial tool_auth extraction for %s", req.URL.String())
	}
	i.notify(req, newToolAuthRequired(detail))
}

// notify delivers one message through the sink. Delivery must never panic
// and never fail the exchange it describes.
func (i *Interceptor) notify(req *http.Request, msg FrameMessage) {
	defer func() {
		if r := recover(); r != nil {
			i.logf("transport: sink panicked emitting %s: %v", msg.Type, r)
		}
	}()
	if i.sink == nil {
		return
	}
	i.sink.Emit(req.Context(), msg)
}

// redirectTarget returns the resolved Location of a redirect response, or ""
// when the response is not a redirect.
func redirectTarget(resp *http.Response) string {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
	default:
		return ""
	}
	loc, err := resp.Location()
	if err != nil {
		return ""
	}
	return loc.String()
}

func hasContentType(resp *http.Response, want string) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), want)
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
