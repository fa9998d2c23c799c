package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage labels",
}

var labelAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a label",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		label, err := vault.CreateLabel(ctx, args[0])
		if err != nil {
			fatal("Failed to create label", err)
		}
		fmt.Println(label.ID)
	},
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List labels",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		labels, err := vault.Labels(ctx)
		if err != nil {
			fatal("Failed to list labels", err)
		}
		for _, l := range labels {
			fmt.Printf("%s  %s\n", l.ID, l.Name)
		}
	},
}

var labelRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a label and detach it from all notes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		if err := vault.DeleteLabel(ctx, args[0]); err != nil {
			fatal("Failed to delete label", err)
		}
	},
}

var labelTagCmd = &cobra.Command{
	Use:   "tag <label-id> <note-id>...",
	Short: "Attach a label to one or more notes",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		res := vault.BulkAddLabel(ctx, args[1:], args[0])
		for id, err := range res.Failed {
			fmt.Printf("failed %s: %v\n", id, err)
		}
		fmt.Printf("Tagged %d note(s)\n", len(res.Succeeded))
	},
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelAddCmd, labelListCmd, labelRmCmd, labelTagCmd)
}
