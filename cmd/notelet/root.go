package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/notelet/notelet"
	"github.com/notelet/notelet/internal/platform"
)

var (
	verbose   bool
	vaultPath string
	adapter   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notelet",
	Short: "A local-first note vault with blocks, labels, trash and search",
	Long: `Notelet keeps your notes as trees of text, checklist and toggle blocks
in a local vault (directory or SQLite file), with soft-delete, labels and
ranked full-text search.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", ".", "Vault location (directory or database file)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory (default from notelet.yaml, else fs)")
}

// openVault wires a vault from the persistent flags and the optional
// notelet.yaml next to it. Flag values win over file values.
func openVault(ctx context.Context, mustExist bool) *notelet.Vault {
	cfg, err := platform.LoadConfig(vaultPath)
	if err != nil {
		fatal("Failed to read vault config", err)
	}

	opts := cfg.Options()
	opts = append(opts, notelet.WithLogger(slog.Default()), notelet.WithMustExist(mustExist))
	if adapter != "" {
		opts = append(opts, notelet.WithAdapter(adapter))
	}

	vault, err := notelet.Open(ctx, vaultPath, opts...)
	if err != nil {
		fatal("Failed to open vault", err)
	}
	return vault
}
