package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ansa-dev/ansa/internal/handler"
	"github.com/spf13/cobra"
)

// debugSpamcheckCmd represents the debug spamcheck command
var debugSpamcheckCmd = &cobra.Command{
	Use:   "spamcheck [phone number]",
	Short: "Run the spam check for a phone number.",
	Long:  `Run the spam check for a phone number against the configured reputation service.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := buildReputationClient(cmd.Context())
		if err != nil {
			return err
		}

		// The spam check never touches the store or the notifier.
		h := handler.New(handlerConfig(), nil, nil, rep)
		result := h.CheckSpam(cmd.Context(), args[0])

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugSpamcheckCmd)
}
