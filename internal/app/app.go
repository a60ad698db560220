// Package app wires configuration, the backend client, the dispatch loop and
// all sessions into a single aggregate used by cmd/portal.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bobmcallan/cryptoai-portal/internal/clients/backend"
	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions/dispatch"
)

// App holds all initialized components of the portal core.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Client  interfaces.BackendClient
	Loop    *dispatch.Loop
	Router  *sessions.ViewRouter
	started bool
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logger, client, loop and sessions.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	if configPath == "" {
		configPath = os.Getenv("CRYPTOAI_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "portal.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/portal.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	client := backend.NewClient(
		backend.WithBaseURL(config.Backend.BaseURL),
		backend.WithLogger(logger),
		backend.WithTimeout(config.Backend.GetTimeout()),
		backend.WithRateLimit(config.Backend.RateLimit),
	)

	loop := dispatch.NewLoop()
	sched := dispatch.NewTimerScheduler(loop)

	conversation := sessions.NewConversationSession(loop, client, logger)
	polling := sessions.NewPollingController(loop, client, logger, sched, config.Market.Assets, config.Market.GetPollInterval())
	analytics := sessions.NewAnalyticsSession(loop, client, logger, config.Market.ForecastAsset)
	profile := sessions.NewProfileEditSession(loop, client, logger)
	router := sessions.NewViewRouter(logger, conversation, polling, analytics, profile)

	return &App{
		Config: config,
		Logger: logger,
		Client: client,
		Loop:   loop,
		Router: router,
	}, nil
}

// Start runs the dispatch loop and activates the Assistant tab.
func (a *App) Start() {
	if a.started {
		return
	}
	a.started = true
	a.Loop.Start()
	a.Loop.Do(func() {
		a.Router.SwitchTo(sessions.TabAssistant)
	})
}

// Close tears down the active sessions and stops the loop.
func (a *App) Close() {
	if !a.started {
		return
	}
	a.started = false
	a.Loop.Do(func() {
		a.Router.Shutdown()
	})
	a.Loop.Stop()
}
