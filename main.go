package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"docsync/internal/agents"
	"docsync/internal/database"
	"docsync/internal/events"
	"docsync/internal/services"
	"docsync/internal/transport"
	"docsync/internal/utils"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {

	app := NewApp()

	if err := utils.LoadEnv(); err != nil {
		fmt.Println("Error loading .env:", err)
	}

	db, err := database.Init(database.Config{
		DSN:      database.MemoryDSN,
		LogLevel: logger.Warn,
	})
	if err != nil {
		fmt.Println("Error opening database:", err)
		return
	}

	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	// Transport chain: every agent call flows through the interceptor, which
	// classifies failures and reports them to the frame sink.
	frameSink := transport.NewFrameSink()
	app.frameSink = frameSink
	navigator := transport.NewWailsNavigator()
	interceptor := transport.NewInterceptor(nil, transport.Sinks{frameSink, transport.NewLogSink()}, navigator)

	keyringService := services.NewKeyringService()
	agentClient := agents.NewClient(os.Getenv("DOCSYNC_AGENT_BASE_URL"), interceptor,
		agents.WithAPIKey(func() string {
			key, _ := keyringService.GetGatewayKey()
			return key
		}))

	gitService := services.NewGitService()
	dbService := services.NewDbServices(db)
	workflowService := services.NewWorkflowService(agentClient, dbService.History, dbService.AppSettings)

	err = wails.Run(&options.App{
		Title:  "DocSync",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "DocSync",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
			events.EnableRuntimeEmitter()
			dbService.StartDbServices(ctx)
			gitService.Startup(ctx)
			keyringService.Startup()
			frameSink.Startup(ctx)
			navigator.Startup(ctx)

			if embedded := os.Getenv("DOCSYNC_EMBEDDED"); embedded == "1" || embedded == "true" {
				frameSink.SetHosted(true)
			}

			if err := workflowService.Startup(ctx); err != nil {
				fmt.Println("Error starting workflow service:", err)
			}
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			dbService.History,
			dbService.AppSettings,
			gitService,
			keyringService,
			workflowService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
