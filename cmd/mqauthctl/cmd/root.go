// Package cmd implements the mqauthctl CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LittleBoy18/rocketmq/pkg/store"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// Global flags
	dbPath string

	// Shared store instance
	metaStore *store.Store
)

var rootCmd = &cobra.Command{
	Use:   "mqauthctl",
	Short: "Broker authorization metadata CLI",
	Long: `mqauthctl manages the broker's access-control metadata.

It provides commands to create users, grant or deny ACL policies,
and evaluate hypothetical requests through the authorization pipeline.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		path := dbPath
		if path == "" {
			path = defaultDBPath()
		}

		var err error
		metaStore, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if metaStore != nil {
			metaStore.Close()
		}
	},
}

// defaultDBPath follows the XDG spec.
func defaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mqauthctl", "auth.db")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: ~/.local/share/mqauthctl/auth.db)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
