package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userEnableCmd)
	userCmd.AddCommand(userDisableCmd)

	userCreateCmd.Flags().StringP("password", "p", "", "Password for the new user")
	userCreateCmd.Flags().Bool("super", false, "Create a superuser (bypasses ACL evaluation)")
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Commands to create, list, enable, disable and delete broker user accounts.`,
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		super, _ := cmd.Flags().GetBool("super")

		user := authz.NewUser(args[0], password)
		if super {
			user = authz.NewSuperUser(args[0], password)
		}
		if err := metaStore.CreateUser(cmd.Context(), user); err != nil {
			return err
		}
		fmt.Printf("Created %s user %s\n", user.Type, user.Username)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List users",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}
		users, err := metaStore.ListUsers(cmd.Context(), filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tSTATUS\tTYPE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, u.Status, u.Type)
		}
		return w.Flush()
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := metaStore.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

var userEnableCmd = &cobra.Command{
	Use:   "enable <username>",
	Short: "Enable a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setUserStatus(cmd, args[0], authz.StatusEnable)
	},
}

var userDisableCmd = &cobra.Command{
	Use:   "disable <username>",
	Short: "Disable a user",
	Long:  `Disable a user. Disabled users fail authorization before any policy evaluation.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setUserStatus(cmd, args[0], authz.StatusDisable)
	},
}

func setUserStatus(cmd *cobra.Command, username string, status authz.UserStatus) error {
	user, err := metaStore.GetUser(cmd.Context(), username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", username)
	}
	user.Status = status
	if err := metaStore.UpdateUser(cmd.Context(), user); err != nil {
		return err
	}
	fmt.Printf("User %s is now %sd\n", username, status)
	return nil
}
