// Package wire provides dependency injection for the COBRA application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"net/http"
	"sync"

	"github.com/example/cobra/internal/adapters/bridge"
	"github.com/example/cobra/internal/adapters/httpapi"
	"github.com/example/cobra/internal/adapters/realtime"
	"github.com/example/cobra/internal/adapters/sqlite"
	"github.com/example/cobra/internal/app"
	"github.com/example/cobra/internal/config"
	"github.com/example/cobra/internal/core/relay"
	"github.com/example/cobra/internal/db"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

var (
	cfg              *config.Config
	hub              *realtime.Hub
	templateService  primary.TemplateService
	checklistService primary.ChecklistService
	libraryService   primary.LibraryService
	chatService      primary.ChatService
	analyticsService primary.AnalyticsService
	settingsService  primary.SettingsService
	once             sync.Once
)

// Cfg returns the loaded configuration.
func Cfg() *config.Config {
	once.Do(initServices)
	return cfg
}

// Hub returns the singleton realtime hub. The caller owns running its
// event loop.
func Hub() *realtime.Hub {
	once.Do(initServices)
	return hub
}

// TemplateService returns the singleton TemplateService instance.
func TemplateService() primary.TemplateService {
	once.Do(initServices)
	return templateService
}

// ChecklistService returns the singleton ChecklistService instance.
func ChecklistService() primary.ChecklistService {
	once.Do(initServices)
	return checklistService
}

// LibraryService returns the singleton LibraryService instance.
func LibraryService() primary.LibraryService {
	once.Do(initServices)
	return libraryService
}

// ChatService returns the singleton ChatService instance.
func ChatService() primary.ChatService {
	once.Do(initServices)
	return chatService
}

// AnalyticsService returns the singleton AnalyticsService instance.
func AnalyticsService() primary.AnalyticsService {
	once.Do(initServices)
	return analyticsService
}

// SettingsService returns the singleton SettingsService instance.
func SettingsService() primary.SettingsService {
	once.Do(initServices)
	return settingsService
}

// Handler returns the full HTTP handler, REST routes plus websocket.
func Handler() http.Handler {
	once.Do(initServices)
	server := httpapi.NewServer(
		templateService,
		checklistService,
		libraryService,
		chatService,
		analyticsService,
		settingsService,
		hub,
	)
	return server.Routes()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB.
	templateRepo := sqlite.NewTemplateRepository(database)
	checklistRepo := sqlite.NewChecklistRepository(database)
	libraryRepo := sqlite.NewLibraryRepository(database)
	channelRepo := sqlite.NewChannelRepository(database)
	messageRepo := sqlite.NewMessageRepository(database)
	settingRepo := sqlite.NewSettingRepository(database)
	analyticsRepo := sqlite.NewAnalyticsRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(sqlite.NewAuditLogRepository(database))

	hub = realtime.NewHub()

	bridges := []secondary.PlatformBridge{
		bridge.NewTeamsBridge(),
		bridge.NewGroupMeBridge(cfg.GroupMePostURL),
	}
	policy := relay.Policy{
		MaxAttempts: cfg.RelayMaxAttempts,
		BaseDelay:   cfg.RelayBaseDelay,
		MaxDelay:    cfg.RelayMaxDelay,
	}

	// Services (primary ports implementation).
	templateService = app.NewTemplateService(templateRepo, libraryRepo, logWriter, hub)
	checklistService = app.NewChecklistService(checklistRepo, templateRepo, logWriter, hub)
	libraryService = app.NewLibraryService(libraryRepo, logWriter)
	chatService = app.NewChatService(channelRepo, messageRepo, bridges, policy, logWriter, hub)
	analyticsService = app.NewAnalyticsService(analyticsRepo)
	settingsService = app.NewSettingsService(settingRepo, channelRepo, logWriter)
}
