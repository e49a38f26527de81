package cmd

import (
	"github.com/spf13/cobra"
)

// debugCmd represents the debug command
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug commands for exercising the handler locally.",
	Long:  `A parent command to group the local debugging commands.`,
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
