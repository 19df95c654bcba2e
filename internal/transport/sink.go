package transport

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// FrameMessageEvent is the event name the frontend bridge listens on; the
// bridge forwards each message to window.parent.postMessage.
const FrameMessageEvent = "transport:frame-message"

// Sink delivers classified transport notifications. Implementations must not
// block and must not panic; the interceptor treats delivery as best effort.
type Sink interface {
	Emit(ctx context.Context, msg FrameMessage)
}

// Sinks fans one message out to several sinks.
type Sinks []Sink

func (s Sinks) Emit(ctx context.Context, msg FrameMessage) {
	for _, sink := range s {
		sink.Emit(ctx, msg)
	}
}

// FrameSink forwards messages to the hosting frame through the wails event
// bridge. Emission is a no-op until the app is confirmed to be embedded in a
// parent frame (the frontend reports this after mount), so a standalone
// window never posts anywhere.
type FrameSink struct {
	mu     sync.RWMutex
	ctx    context.Context
	hosted bool
}

func NewFrameSink() *FrameSink {
	return &FrameSink{}
}

func (s *FrameSink) Startup(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

// SetHosted records whether the app is embedded inside a parent frame.
func (s *FrameSink) SetHosted(hosted bool) {
	s.mu.Lock()
	s.hosted = hosted
	s.mu.Unlock()
}

func (s *FrameSink) Hosted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hosted
}

func (s *FrameSink) Emit(ctx context.Context, msg FrameMessage) {
	s.mu.RLock()
	wailsCtx := s.ctx
	hosted := s.hosted
	s.mu.RUnlock()
	if wailsCtx == nil || !hosted {
		return
	}
	runtime.EventsEmit(wailsCtx, FrameMessageEvent, msg)
}

// LogSink mirrors every notification to the process log regardless of
// hosting, so classification stays observable in a standalone window.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Emit(ctx context.Context, msg FrameMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("transport: failed to marshal frame message: %v", err)
		return
	}
	log.Printf("transport: %s", data)
}

// CaptureSink records messages for tests.
type CaptureSink struct {
	mu       sync.Mutex
	messages []FrameMessage
}

func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

func (s *CaptureSink) Emit(ctx context.Context, msg FrameMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

func (s *CaptureSink) Messages() []FrameMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FrameMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
