package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notelet/notelet"
	"github.com/notelet/notelet/pkg/core"
)

var (
	addColor  string
	addText   string
	addPinned bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		draft := notelet.Note{
			Title:  args[0],
			Color:  core.Color(addColor),
			Pinned: addPinned,
		}
		if addText != "" {
			b := core.NewTextBlock(0)
			b.SetText(addText)
			draft.Blocks = core.BlockList{b}
		}

		note, err := vault.Create(ctx, draft)
		if err != nil {
			fatal("Failed to create note", err)
		}

		fmt.Println(note.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addColor, "color", "", "Note color (default, red, orange, ...)")
	addCmd.Flags().StringVar(&addText, "text", "", "Content of the first text block")
	addCmd.Flags().BoolVar(&addPinned, "pin", false, "Pin the note")
}
