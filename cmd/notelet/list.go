package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notelet/notelet"
)

var (
	listJSON     bool
	listArchived bool
	listLabel    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		var (
			found []notelet.Note
			err   error
		)
		switch {
		case listLabel != "":
			found, err = vault.ByLabel(ctx, listLabel)
		case listArchived:
			found, err = vault.Archived(ctx)
		default:
			found, err = vault.Active(ctx)
		}
		if err != nil {
			fatal("Failed to list notes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(found); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, n := range found {
			marker := " "
			if n.Pinned {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, n.ID, n.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Show archived notes instead of the board")
	listCmd.Flags().StringVar(&listLabel, "label", "", "Filter notes by label id")
}
