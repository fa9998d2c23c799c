package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var queueClear bool

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the offline sync queue",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		if queueClear {
			if err := vault.ClearSyncQueue(ctx); err != nil {
				fatal("Failed to clear queue", err)
			}
			fmt.Println("Queue cleared")
			return
		}

		items, err := vault.PendingSync(ctx)
		if err != nil {
			fatal("Failed to read queue", err)
		}
		for _, item := range items {
			fmt.Printf("%s  %-6s %-6s %s\n",
				item.Timestamp.Format("2006-01-02 15:04:05"),
				item.Operation, item.EntityType, item.EntityID)
		}
		if len(items) == 0 {
			fmt.Println("Queue is empty")
		}
	},
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.Flags().BoolVar(&queueClear, "clear", false, "Drop all queued mutations")
}
