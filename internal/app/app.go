// Package app wires configuration, storage, clients and services into one App
// shared by the HTTP server and the CLI.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/papertrade/internal/clients/backend"
	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/realtime"
	"github.com/bobmcallan/papertrade/internal/services/advisor"
	"github.com/bobmcallan/papertrade/internal/services/insight"
	"github.com/bobmcallan/papertrade/internal/services/lesson"
	"github.com/bobmcallan/papertrade/internal/services/market"
	"github.com/bobmcallan/papertrade/internal/services/portfolio"
	"github.com/bobmcallan/papertrade/internal/storage"
	"github.com/bobmcallan/papertrade/internal/storage/localstate"
)

// App holds all initialized services, clients, storage and the MCP server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	LocalState       *localstate.Store
	BackendClient    interfaces.BackendClient
	PortfolioService interfaces.PortfolioService
	InsightService   interfaces.InsightService
	AdvisorService   *advisor.Service
	LessonService    interfaces.LessonService
	MarketService    interfaces.MarketService
	Hub              *realtime.Hub
	MCPServer        *server.MCPServer
	StartupTime      time.Time

	scheduler *Scheduler
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath returns configPath, else PAPERTRADE_CONFIG, else papertrade.toml
// next to the binary, else config/papertrade.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("PAPERTRADE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "papertrade.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/papertrade.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and initializes the App.
// configPath may be empty, in which case ResolveConfigPath decides.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewAppWithConfig(config, common.NewLoggerFromConfig(config.Logging))
}

// NewAppWithConfig initializes the App from an already loaded config
func NewAppWithConfig(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	backendCfg := config.Clients.Backend
	backendClient := backend.NewClient(
		backend.WithBaseURL(backendCfg.BaseURL),
		backend.WithAPIKey(backendCfg.APIKey),
		backend.WithRateLimit(backendCfg.RateLimit),
		backend.WithTimeout(backendCfg.GetTimeout()),
		backend.WithLogger(logger),
	)

	state := localstate.New(storageManager.KeyValueStorage(), logger)

	portfolioService := portfolio.NewService(backendClient, logger)
	insightService := insight.NewService(portfolioService, state, insight.NewThresholds(config.Insights), logger)
	advisorService := advisor.NewService(backendClient, advisor.NewClassifier(nil), config.Advisor.FallbackToScript, logger)
	lessonService := lesson.NewService(state, logger)
	marketService := market.NewService(backendClient, logger)

	mcpServer := server.NewMCPServer(
		"papertrade",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		LocalState:       state,
		BackendClient:    backendClient,
		PortfolioService: portfolioService,
		InsightService:   insightService,
		AdvisorService:   advisorService,
		LessonService:    lessonService,
		MarketService:    marketService,
		Hub:              realtime.NewHub(),
		MCPServer:        mcpServer,
		StartupTime:      startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// StartScheduler starts the background refresh jobs
func (a *App) StartScheduler() error {
	if a.scheduler != nil {
		return nil
	}

	s := NewScheduler(a.Logger)
	interval := a.Config.Refresh.GetInterval()

	if err := s.AddJob(fmt.Sprintf("@every %s", interval), &insightRefreshJob{
		hub:      a.Hub,
		insights: a.InsightService,
		logger:   a.Logger,
		timeout:  interval,
	}); err != nil {
		return fmt.Errorf("failed to schedule insight refresh: %w", err)
	}

	if err := s.AddJob("@every 10m", &sessionPruneJob{
		advisor: a.AdvisorService,
		maxIdle: ChatSessionMaxIdle,
	}); err != nil {
		return fmt.Errorf("failed to schedule session pruning: %w", err)
	}

	s.Start()
	a.scheduler = s
	return nil
}

// Close releases all resources held by the App.
// Shutdown order: stop scheduler, close storage.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		a.scheduler = nil
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
		a.Storage = nil
	}
}
