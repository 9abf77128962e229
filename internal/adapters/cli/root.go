package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "homestead",
		Short: "Homestead CLI - Build and manage your homestead",
		Long: `Homestead CLI places, upgrades and demolishes buildings in your persisted world.
Every command loads the world from the database, applies one change and saves it.
While homestead-daemon is running, build and storage edits are sent to it; other
commands that change the world are refused.

Examples:
  homestead catalog list --category housing
  homestead build place house_small --x 4 --z 2 --rotate 1
  homestead build upgrade house_small-a3f8e2b1
  homestead world tick --seconds 30
  homestead storage take wood_shed-0c1d2e3f --item plank --quantity 5
  homestead ledger transactions --limit 20`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/homestead)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewStorageCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewWorldCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
