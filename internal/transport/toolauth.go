package transport

import (
	"regexp"
	"strings"
)

// toolAuthMarker is the substring that flags a tool-authentication-required
// body, whether structured or stringified.
const toolAuthMarker = "tool_auth"

// ToolAuthDetail is the extracted tool-authentication signal. Partial is set
// when the pattern-matching fallback produced an incomplete or ambiguous
// read, so callers can surface it as a partial result instead of silently
// accepting it.
type ToolAuthDetail struct {
	ToolName    string
	ToolSource  string
	ActionNames []string
	Reason      string
	Partial     bool
}

func (d ToolAuthDetail) empty() bool {
	return d.ToolName == "" && d.ToolSource == "" && d.Reason == "" && len(d.ActionNames) == 0
}

// Fallback patterns for the stringified error form. The structured detail
// object always wins; these only fill fields the detail did not provide.
var (
	toolNameRe    = regexp.MustCompile(`['"]tool_name['"]:\s*['"]([^'"]+)['"]`)
	toolSourceRe  = regexp.MustCompile(`['"]tool_source['"]:\s*['"]([^'"]+)['"]`)
	reasonRe      = regexp.MustCompile(`['"]reason['"]:\s*['"]([^'"]+)['"]`)
	actionNamesRe = regexp.MustCompile(`['"]action_names['"]:\s*\[([^\]]+)\]`)
	quotedRe      = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

// DetectToolAuth inspects a decoded agent response body for the
// tool-authentication signal. The second return is false when the body
// carries no signal at all.
//
// Extraction is two-tier: the structured `detail` object (HTTP 401 from the
// proxy) is read first; fields it does not carry are pattern-matched out of
// the stringified error (HTTP 200 from the async task runner).
func DetectToolAuth(body map[string]interface{}, raw string) (ToolAuthDetail, bool) {
	if !strings.Contains(raw, toolAuthMarker) {
		return ToolAuthDetail{}, false
	}

	var detail ToolAuthDetail
	structured := false
	if d, ok := body["detail"].(map[string]interface{}); ok {
		structured = true
		detail.ToolName, _ = d["tool_name"].(string)
		detail.ToolSource, _ = d["tool_source"].(string)
		detail.Reason, _ = d["reason"].(string)
		detail.ActionNames = stringSlice(d["action_names"])
	}

	errStr := stringifiedError(body)
	fellBack := false
	if detail.ToolName == "" {
		if m := toolNameRe.FindStringSubmatch(errStr); m != nil {
			detail.ToolName = m[1]
			fellBack = true
		}
	}
	if detail.ToolSource == "" {
		if m := toolSourceRe.FindStringSubmatch(errStr); m != nil {
			detail.ToolSource = m[1]
			fellBack = true
		}
	}
	if detail.Reason == "" {
		if m := reasonRe.FindStringSubmatch(errStr); m != nil {
			detail.Reason = m[1]
			fellBack = true
		}
	}
	if len(detail.ActionNames) == 0 {
		if m := actionNamesRe.FindStringSubmatch(errStr); m != nil {
			fellBack = true
			for _, q := range quotedRe.FindAllStringSubmatch(m[1], -1) {
				detail.ActionNames = append(detail.ActionNames, q[1])
			}
			if len(detail.ActionNames) == 0 {
				detail.Partial = true
			}
		}
	}

	// A regex read with missing fields is ambiguous: the stringified form
	// breaks on nested quotes and reordering, so never trust an incomplete
	// match as the full story.
	if !structured && fellBack {
		if detail.ToolName == "" || detail.ToolSource == "" || detail.Reason == "" || len(detail.ActionNames) == 0 {
			detail.Partial = true
		}
	}

	return detail, true
}

// stringifiedError pulls the free-text error field the async task runner
// embeds the auth failure in: body.error first, body.response.message second.
func stringifiedError(body map[string]interface{}) string {
	if s, ok := body["error"].(string); ok && s != "" {
		return s
	}
	if resp, ok := body["response"].(map[string]interface{}); ok {
		if s, ok := resp["message"].(string); ok {
			return s
		}
	}
	return ""
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
