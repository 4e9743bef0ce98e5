// Package app orchestrates all components of the daemon.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumenwm/lumen-ipc/internal/catalog"
	"github.com/lumenwm/lumen-ipc/internal/compositor/memory"
	"github.com/lumenwm/lumen-ipc/internal/config"
	"github.com/lumenwm/lumen-ipc/internal/hub"
	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/methods"
	"github.com/lumenwm/lumen-ipc/internal/server/websocket"
)

// App wires the in-memory compositor state, the event hub, the command
// dispatcher and the WebSocket server together.
type App struct {
	cfg   *config.Config
	build methods.BuildInfo

	state        *memory.State
	hub          *hub.Hub
	dispatcher   *handler.Dispatcher
	server       *websocket.Server
	sceneWatcher *memory.SceneWatcher

	mu      sync.Mutex
	running bool
}

// New creates an App instance from configuration.
func New(cfg *config.Config, build methods.BuildInfo) (*App, error) {
	state := memory.NewState()
	h := hub.New(catalog.Default(), state)
	state.SetOutputListener(h)

	registry := handler.NewRegistry()
	registry.RegisterService(methods.NewHostService(build))
	registry.RegisterService(methods.NewViewsService(state))
	registry.RegisterService(methods.NewOutputsService(state))
	registry.RegisterService(methods.NewWsetsService(state))
	registry.RegisterService(methods.NewInputService(state))
	registry.RegisterService(methods.NewEventsService(h))

	dispatcher := handler.NewDispatcher(registry)

	commandHandler := func(ctx context.Context, clientID string, message []byte) []byte {
		ctx = context.WithValue(ctx, handler.ClientIDKey, clientID)
		return dispatcher.DispatchBytes(ctx, message)
	}

	server := websocket.NewServer(
		cfg.Server.Host,
		cfg.Server.Port,
		int64(cfg.Limits.MaxMessageSizeKB)*1024,
		commandHandler,
		h,
	)

	a := &App{
		cfg:        cfg,
		build:      build,
		state:      state,
		hub:        h,
		dispatcher: dispatcher,
		server:     server,
	}

	if cfg.Scene.Path != "" && cfg.Scene.Watch {
		a.sceneWatcher = memory.NewSceneWatcher(
			cfg.Scene.Path,
			state,
			time.Duration(cfg.Scene.DebounceMS)*time.Millisecond,
		)
	}

	return a, nil
}

// Hub returns the event hub.
func (a *App) Hub() *hub.Hub {
	return a.hub
}

// State returns the compositor state backing the daemon.
func (a *App) State() *memory.State {
	return a.state
}

// Start starts the daemon and blocks until the context is cancelled.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("application is already running")
	}
	a.running = true
	a.mu.Unlock()

	if a.cfg.Scene.Path != "" {
		scene, err := memory.LoadScene(a.cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("failed to load scene: %w", err)
		}
		a.state.ApplyScene(scene)
		log.Info().
			Str("path", a.cfg.Scene.Path).
			Int("outputs", len(scene.Outputs)).
			Int("views", len(scene.Views)).
			Msg("scene loaded")
	}

	if a.sceneWatcher != nil {
		if err := a.sceneWatcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scene watcher: %w", err)
		}
	}

	if err := a.server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Info().
		Str("addr", a.server.Addr()).
		Int("events", a.hub.Catalog().Len()).
		Msg("daemon ready")

	<-ctx.Done()
	return a.shutdown()
}

func (a *App) shutdown() error {
	log.Info().Msg("shutting down")

	if a.sceneWatcher != nil {
		if err := a.sceneWatcher.Stop(); err != nil {
			log.Warn().Err(err).Msg("scene watcher stop failed")
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Stop(stopCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.mu.Lock()
	a.running = false
	a.mu.Unlock()
	return nil
}
