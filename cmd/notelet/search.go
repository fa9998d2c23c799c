package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes by title, content and labels",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, true)
		defer vault.Close()

		results, err := vault.Search(ctx, strings.Join(args, " "))
		if err != nil {
			fatal("Search failed", err)
		}

		if searchJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(results); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, r := range results {
			fmt.Printf("%3d  %s  %s\n", r.Score, r.NoteID, r.Title)
			if r.Snippet != "" {
				fmt.Printf("     %s\n", r.Snippet)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
