package cmd

import (
	"fmt"
	"strconv"

	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// recordsListCmd represents the records list command
var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored call records.",
	Long: `List stored call records.

With --phone, only that caller's history is shown, most recent call first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")

		store, err := datastoreNewStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to create a new datastore: %w", err)
		}
		defer store.Close()

		var records []*kv.CallRecord
		if phone != "" {
			records, err = store.ListCallRecordsByPhone(cmd.Context(), phone)
		} else {
			records, err = store.ListCallRecords(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list call records: %w", err)
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Call ID", "Timestamp", "Caller", "Phone", "Reason", "Status", "Spam", "Notified"})

		for _, r := range records {
			table.Append([]string{
				r.CallID,
				r.Timestamp,
				r.CallerName,
				r.CallerPhone,
				r.Reason,
				string(r.CallStatus),
				strconv.FormatBool(r.IsSpam),
				strconv.FormatBool(r.NotificationSent),
			})
		}

		table.Render()

		return nil
	},
}

func init() {
	recordsCmd.AddCommand(recordsListCmd)
	recordsListCmd.Flags().String("phone", "", "Only list records for this phone number")
}
