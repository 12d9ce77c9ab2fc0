package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [endpoint]",
	Short: "Query a running debug server",
	Long: `Query the debug server of a running Sable application and print the
JSON response.

Endpoints:
  windows     controller state per window (default)
  dom-tree    one window's document tree (--window selects it)
  stats       dispatch/regeneration counters
  health      liveness check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Int("port", 9223, "debug server port")
	inspectCmd.Flags().String("host", "localhost", "debug server host")
	inspectCmd.Flags().Uint64("window", 1, "window id for dom-tree")
	viper.BindPFlag("inspect.port", inspectCmd.Flags().Lookup("port"))
	viper.BindPFlag("inspect.host", inspectCmd.Flags().Lookup("host"))
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	endpoint := "windows"
	if len(args) > 0 {
		endpoint = args[0]
	}

	host := viper.GetString("inspect.host")
	port := viper.GetInt("inspect.port")
	url := fmt.Sprintf("http://%s:%d/%s", host, port, endpoint)
	if endpoint == "dom-tree" {
		windowID, _ := cmd.Flags().GetUint64("window")
		url = fmt.Sprintf("%s?window=%d", url, windowID)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("debug server unreachable at %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", resp.Status, string(body))
	}

	fmt.Println(string(body))
	return nil
}
