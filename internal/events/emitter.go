package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit delivers an event to the frontend. It is a no-op until
// EnableRuntimeEmitter is called during startup, so packages can emit freely
// in tests without a wails context.
var Emit = func(ctx context.Context, name string, evt AppEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt AppEvent) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt AppEvent)) {
	if f == nil {
		Emit = func(context.Context, string, AppEvent) {}
		return
	}
	Emit = f
}
