package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

var (
	allowFmt = color.New(color.FgGreen, color.Bold).SprintFunc()
	denyFmt  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("subject", "", "Subject key, e.g. User:alice (required)")
	checkCmd.Flags().String("resource", "", "Resource key, e.g. Topic:orders (required)")
	checkCmd.Flags().String("action", "", "Requested action, e.g. Pub (required)")
	checkCmd.Flags().String("ip", "127.0.0.1", "Source IP of the hypothetical request")
	checkCmd.MarkFlagRequired("subject")
	checkCmd.MarkFlagRequired("resource")
	checkCmd.MarkFlagRequired("action")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a hypothetical request",
	Long: `Evaluate a hypothetical request through the full authorization
pipeline (user validity, then ACL resolution) and print the decision.

The evaluation is recorded in the store's decision log like any other.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectKey, _ := cmd.Flags().GetString("subject")
		resourceKey, _ := cmd.Flags().GetString("resource")
		actionName, _ := cmd.Flags().GetString("action")
		sourceIP, _ := cmd.Flags().GetString("ip")

		subject, err := authz.ParseSubject(subjectKey)
		if err != nil {
			return err
		}
		resource, err := authz.ParseResource(resourceKey)
		if err != nil {
			return err
		}
		action, err := authz.ParseAction(actionName)
		if err != nil {
			return err
		}

		authorizer := authz.NewAuthorizer(authz.DefaultConfig(), metaStore, metaStore,
			authz.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			authz.WithAuditLogger(authz.NewStoreAuditLogger(metaStore)),
		)

		request := authz.NewAuthorizationContext(subject, resource, action, sourceIP)
		err = authorizer.Handle(cmd.Context(), request)
		if err == nil {
			fmt.Printf("%s %s may %s %s from %s\n",
				allowFmt("ALLOWED"), subject.SubjectKey(), action, resource.Key(), sourceIP)
			return nil
		}

		var authzErr *authz.AuthzError
		if errors.As(err, &authzErr) {
			fmt.Printf("%s %s\n", denyFmt("DENIED"), authzErr.Message)
			return nil
		}
		return err
	},
}
