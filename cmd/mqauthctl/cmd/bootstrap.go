package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LittleBoy18/rocketmq/pkg/store"
)

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	bootstrapCmd.Flags().String("seed", "", "Path to a YAML seed file with users and ACLs (required)")
	bootstrapCmd.MarkFlagRequired("seed")
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seed users and ACLs from a YAML file",
	Long: `Seed the metadata store from a YAML file.

Existing users are left untouched; seeded ACLs replace any stored policies
for their subject, so running bootstrap twice with the same file is
idempotent.

Example seed file:

  users:
    - username: admin
      password: secret
      type: super
  acls:
    - subject: User:producer
      policies:
        - type: custom
          entries:
            - resource: Topic:orders
              pattern: PREFIXED
              actions: [Pub]
              decision: allow`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("seed")
		seed, err := store.LoadSeed(path)
		if err != nil {
			return err
		}
		if err := metaStore.ApplySeed(cmd.Context(), seed); err != nil {
			return err
		}
		fmt.Printf("Seeded %d users and %d acls from %s\n", len(seed.Users), len(seed.Acls), path)
		return nil
	},
}
