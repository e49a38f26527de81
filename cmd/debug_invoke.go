package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ansa-dev/ansa/internal/agent"
	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
)

// debugInvokeCmd represents the debug invoke command
var debugInvokeCmd = &cobra.Command{
	Use:   "invoke [event file]",
	Short: "Invoke the handler with an event file.",
	Long: `Invoke the handler with an event file.

The file holds one agent event in JSON or YAML. The handler runs against the
configured dependencies and the response envelope is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read event file: %w", err)
		}

		// YAML is a superset of JSON, so JSON event files pass through.
		jsonData, err := yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("failed to parse event file: %w", err)
		}

		var req agent.Request
		if err := json.Unmarshal(jsonData, &req); err != nil {
			return fmt.Errorf("failed to decode event: %w", err)
		}

		h, cleanup, err := buildHandler(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := h.Handle(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("failed to handle event: %w", err)
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugInvokeCmd)
}
