package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
)

// debugValidateCmd represents the debug validate command
var debugValidateCmd = &cobra.Command{
	Use:   "validate [event file]",
	Short: "Validate an event file against the agent event schema.",
	Long:  `Validate an event file against the agent event schema.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read event file: %w", err)
		}

		// Convert YAML to JSON, as gojsonschema only works with JSON.
		jsonData, err := yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("failed to parse event file: %w", err)
		}

		// Get the path to the current source file, and then find the schema file relative to that.
		_, b, _, _ := runtime.Caller(0)
		basepath := filepath.Dir(b)
		schemaPath := filepath.Join(basepath, "..", "schema", "agent_event.json")

		schemaLoader := gojsonschema.NewReferenceLoader(fmt.Sprintf("file://%s", schemaPath))
		documentLoader := gojsonschema.NewBytesLoader(jsonData)

		result, err := gojsonschema.Validate(schemaLoader, documentLoader)
		if err != nil {
			return fmt.Errorf("failed to validate event: %w", err)
		}

		if !result.Valid() {
			var errStrings []string
			for _, e := range result.Errors() {
				errStrings = append(errStrings, e.String())
			}
			return fmt.Errorf("validation failed:\n%s", strings.Join(errStrings, "\n"))
		}

		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugValidateCmd)
}
