package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notelet/notelet"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notelet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notelet version %s\n", notelet.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
