package cmd

import (
	"github.com/spf13/cobra"
)

// recordsCmd represents the records command
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect stored call records.",
	Long:  `A parent command to group operations on stored call records.`,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}
