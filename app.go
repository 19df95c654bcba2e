package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"docsync/internal/transport"
)

// App is the wails-bound application shell. Domain logic lives in the
// services; App only carries lifecycle wiring and a few native dialogs.
type App struct {
	ctx       context.Context
	dbClose   func() error
	frameSink *transport.FrameSink
}

func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// ReportHosted is called by the frontend once it has probed whether it runs
// inside the architect parent frame. Frame messages are only forwarded when
// hosted; otherwise they stay local to the diagnostic log.
func (a *App) ReportHosted(hosted bool) bool {
	if a.frameSink != nil {
		a.frameSink.SetHosted(hosted)
	}
	runtime.LogInfo(a.ctx, fmt.Sprintf("frame hosting reported: %v", hosted))
	return hosted
}

// SelectDirectory opens a native directory picker dialog
func (a *App) SelectDirectory() (string, error) {
	dir, err := runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select Directory",
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}
