package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenwm/lumen-ipc/internal/rpc/client"
)

var (
	serverURL string
	callData  string
)

// callCmd sends a single command to a running daemon.
var callCmd = &cobra.Command{
	Use:   "call <method>",
	Short: "Send one command to a running daemon and print the response",
	Long: `Send a command to the daemon and print the JSON response.

Example:
  lumen-ipc call entities/list-views
  lumen-ipc call entities/view-info --data '{"id": 17}'
  lumen-ipc call entities/configure-view --data '{"id": 17, "geometry": {"x":0,"y":0,"width":800,"height":600}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&serverURL, "url", "ws://127.0.0.1:8870/", "daemon WebSocket URL")
	callCmd.Flags().StringVar(&callData, "data", "", "request data as a JSON object")

	listenCmd.Flags().StringVar(&serverURL, "url", "ws://127.0.0.1:8870/", "daemon WebSocket URL")
}

func runCall(cmd *cobra.Command, args []string) error {
	method := args[0]

	var data any
	if callData != "" {
		if err := json.Unmarshal([]byte(callData), &data); err != nil {
			return fmt.Errorf("invalid --data: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := client.Dial(ctx, serverURL)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	resp, err := c.Call(ctx, method, data)
	if resp != nil {
		printJSON(resp)
	}
	return err
}

func printJSON(raw []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Fprintln(os.Stdout, buf.String())
}
