package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notelet/notelet/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a notelet vault",
	Long:  `Create the vault structure at --vault (collection directories for fs, the database file for sqlite).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		vault := openVault(ctx, false)
		defer vault.Close()

		// A trash retention in notelet.yaml is persisted into the vault
		// settings so it applies to library consumers too.
		cfg, err := platform.LoadConfig(vaultPath)
		if err != nil {
			fatal("Failed to read vault config", err)
		}
		if cfg.TrashRetentionDays > 0 {
			settings, err := vault.Settings(ctx)
			if err != nil {
				fatal("Failed to load settings", err)
			}
			settings.TrashRetentionDays = cfg.TrashRetentionDays
			if _, err := vault.SaveSettings(ctx, settings); err != nil {
				fatal("Failed to save settings", err)
			}
		}

		fmt.Println("Initialized notelet vault at", vaultPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
