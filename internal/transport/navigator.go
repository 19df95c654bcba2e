package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Navigator performs top-level navigations on behalf of the interceptor:
// redirects to an authentication page and backend-rendered fallback pages
// both replace the whole document, not the calling code path.
type Navigator interface {
	NavigateTo(ctx context.Context, url string)
	ReplaceDocument(ctx context.Context, html string)
}

// WailsNavigator drives the embedded webview through the wails runtime.
type WailsNavigator struct {
	mu  sync.RWMutex
	ctx context.Context
}

func NewWailsNavigator() *WailsNavigator {
	return &WailsNavigator{}
}

func (n *WailsNavigator) Startup(ctx context.Context) {
	n.mu.Lock()
	n.ctx = ctx
	n.mu.Unlock()
}

func (n *WailsNavigator) wailsContext() context.Context {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ctx
}

func (n *WailsNavigator) NavigateTo(ctx context.Context, url string) {
	wailsCtx := n.wailsContext()
	if wailsCtx == nil {
		return
	}
	runtime.WindowExecJS(wailsCtx, fmt.Sprintf("window.location.href = %s;", jsString(url)))
}

func (n *WailsNavigator) ReplaceDocument(ctx context.Context, html string) {
	wailsCtx := n.wailsContext()
	if wailsCtx == nil {
		return
	}
	runtime.WindowExecJS(wailsCtx, fmt.Sprintf(
		"document.open(); document.write(%s); document.close();", jsString(html)))
}

// jsString renders s as a JS string literal.
func jsString(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(data)
}
