package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var lambdaStart = lambda.Start

// lambdaCmd represents the lambda command
var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run the action handler as an AWS Lambda function.",
	Long: `Run the action handler as an AWS Lambda function.

The agent runtime invokes the function synchronously with one action event
per call; the handler always returns a structured response, even when a
downstream dependency fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := buildHandler(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		lambdaStart(h.Handle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}
