package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lumenwm/lumen-ipc/internal/app"
	"github.com/lumenwm/lumen-ipc/internal/config"
	"github.com/lumenwm/lumen-ipc/internal/rpc/methods"
)

var (
	scenePath string
	port      int
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the lumen-ipc daemon",
	Long: `Start the daemon and accept WebSocket connections from clients.

When a scene file is configured the daemon serves its contents and
reloads it on change, so edits to the file show up to connected
clients as ordinary compositor events.

Example:
  lumen-ipc start
  lumen-ipc start --scene testdata/scene.yaml
  lumen-ipc start --port 8870`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&scenePath, "scene", "", "path to a scene file (standalone mode)")
	startCmd.Flags().IntVar(&port, "port", 0, "server port (default: 8870)")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if scenePath != "" {
		cfg.Scene.Path = scenePath
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	// Re-validate after flag overrides.
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg)

	log.Info().
		Str("version", version).
		Str("scene", cfg.Scene.Path).
		Int("port", cfg.Server.Port).
		Msg("starting lumen-ipc")

	application, err := app.New(cfg, methods.BuildInfo{
		Version: version,
		Commit:  gitCommit,
		Branch:  gitBranch,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("application error: %w", err)
	}

	log.Info().Msg("lumen-ipc stopped")
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" || verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
