package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Manage the trash",
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trashed notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		trashed, err := vault.Trashed(ctx)
		if err != nil {
			fatal("Failed to list trash", err)
		}
		for _, n := range trashed {
			when := ""
			if n.TrashedAt != nil {
				when = n.TrashedAt.Format("2006-01-02")
			}
			fmt.Printf("%s  %s  (trashed %s)\n", n.ID, n.Title, when)
		}
	},
}

var trashPutCmd = &cobra.Command{
	Use:   "put <id>",
	Short: "Move a note to the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		if _, err := vault.MoveToTrash(ctx, args[0]); err != nil {
			fatal("Failed to trash note", err)
		}
	},
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a note from the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		if _, err := vault.RestoreFromTrash(ctx, args[0]); err != nil {
			fatal("Failed to restore note", err)
		}
	},
}

var trashEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Permanently delete everything in the trash",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		deleted, err := vault.EmptyTrash(ctx)
		if err != nil {
			fatal("Failed to empty trash", err)
		}
		fmt.Printf("Deleted %d note(s)\n", len(deleted))
	},
}

func init() {
	rootCmd.AddCommand(trashCmd)
	trashCmd.AddCommand(trashListCmd, trashPutCmd, trashRestoreCmd, trashEmptyCmd)
}
