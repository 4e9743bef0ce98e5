package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumenwm/lumen-ipc/internal/rpc/client"
)

// listenCmd streams events from a running daemon to stdout.
var listenCmd = &cobra.Command{
	Use:   "listen [event...]",
	Short: "Stream events from a running daemon",
	Long: `Subscribe to compositor events and print each one as a JSON line.
With no arguments, every event in the catalog is streamed.

Example:
  lumen-ipc listen
  lumen-ipc listen view-mapped view-unmapped
  lumen-ipc listen view-focused`,
	RunE: runListen,
}

func runListen(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	c, err := client.Dial(ctx, serverURL)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	c.OnEvent(func(name string, payload []byte) {
		printJSON(payload)
	})

	if err := c.Watch(ctx, args); err != nil {
		return err
	}
	return c.Listen(ctx)
}
