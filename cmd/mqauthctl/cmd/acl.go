package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

func init() {
	rootCmd.AddCommand(aclCmd)
	aclCmd.AddCommand(aclGrantCmd)
	aclCmd.AddCommand(aclDenyCmd)
	aclCmd.AddCommand(aclListCmd)
	aclCmd.AddCommand(aclDeleteCmd)

	for _, c := range []*cobra.Command{aclGrantCmd, aclDenyCmd} {
		c.Flags().String("resource", "", "Resource key, e.g. Topic:orders or Group:* (required)")
		c.Flags().String("pattern", "", "Matching pattern override: LITERAL (default) or PREFIXED")
		c.Flags().StringSlice("actions", nil, "Actions covered, e.g. Pub,Sub or All (required)")
		c.Flags().StringSlice("source-ips", nil, "Source addresses the entry applies to (default: any)")
		c.MarkFlagRequired("resource")
		c.MarkFlagRequired("actions")
	}

	aclListCmd.Flags().String("resource", "", "Only show entries for this resource key")
	aclDeleteCmd.Flags().String("resource", "", "Only delete entries for this resource key")
}

var aclCmd = &cobra.Command{
	Use:   "acl",
	Short: "Manage ACL policies",
	Long:  `Commands to grant, deny, list and delete access-control entries for a subject.`,
}

var aclGrantCmd = &cobra.Command{
	Use:   "grant <subject>",
	Short: "Add an ALLOW entry to a subject's policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addEntry(cmd, args[0], authz.DecisionAllow)
	},
}

var aclDenyCmd = &cobra.Command{
	Use:   "deny <subject>",
	Short: "Add a DENY entry to a subject's policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addEntry(cmd, args[0], authz.DecisionDeny)
	},
}

func addEntry(cmd *cobra.Command, subjectKey string, decision authz.Decision) error {
	subject, err := authz.ParseSubject(subjectKey)
	if err != nil {
		return err
	}
	entry, err := entryFromFlags(cmd, decision)
	if err != nil {
		return err
	}

	acl := authz.NewAcl(subject, authz.NewPolicy(authz.PolicyCustom, entry))
	if err := metaStore.CreateAcl(cmd.Context(), acl); err != nil {
		return err
	}
	fmt.Printf("%s: %s %s for %s\n", subject.SubjectKey(), decision, entry.Resource.Key(), joinActions(entry.Actions))
	return nil
}

func entryFromFlags(cmd *cobra.Command, decision authz.Decision) (authz.PolicyEntry, error) {
	resourceKey, _ := cmd.Flags().GetString("resource")
	pattern, _ := cmd.Flags().GetString("pattern")
	actionNames, _ := cmd.Flags().GetStringSlice("actions")
	sourceIPs, _ := cmd.Flags().GetStringSlice("source-ips")

	resource, err := authz.ParseResource(resourceKey)
	if err != nil {
		return authz.PolicyEntry{}, err
	}
	if pattern != "" {
		p, err := authz.ParseResourcePattern(pattern)
		if err != nil {
			return authz.PolicyEntry{}, err
		}
		if resource, err = authz.NewResource(resource.Type, resource.Name, p); err != nil {
			return authz.PolicyEntry{}, err
		}
	}

	var actions []authz.Action
	for _, name := range actionNames {
		action, err := authz.ParseAction(name)
		if err != nil {
			return authz.PolicyEntry{}, err
		}
		actions = append(actions, action)
	}

	return authz.NewPolicyEntry(resource, actions, sourceIPs, decision), nil
}

var aclListCmd = &cobra.Command{
	Use:   "list [subject]",
	Short: "List ACL entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var subject authz.Subject
		if len(args) > 0 {
			var err error
			if subject, err = authz.ParseSubject(args[0]); err != nil {
				return err
			}
		}
		resourceFilter, err := resourceFilterFromFlags(cmd)
		if err != nil {
			return err
		}

		acls, err := metaStore.ListAcl(cmd.Context(), subject, resourceFilter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SUBJECT\tPOLICY\tRESOURCE\tPATTERN\tACTIONS\tSOURCE IPS\tDECISION")
		for _, acl := range acls {
			for _, policy := range acl.Policies {
				for _, e := range policy.Entries {
					sources := "any"
					if len(e.SourceIPs) > 0 {
						sources = strings.Join(e.SourceIPs, ",")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						acl.Subject.SubjectKey(), policy.Type, e.Resource.Key(),
						e.Resource.Pattern, joinActions(e.Actions), sources, e.Decision)
				}
			}
		}
		return w.Flush()
	},
}

var aclDeleteCmd = &cobra.Command{
	Use:   "delete <subject>",
	Short: "Delete a subject's ACL entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := authz.ParseSubject(args[0])
		if err != nil {
			return err
		}
		resourceFilter, err := resourceFilterFromFlags(cmd)
		if err != nil {
			return err
		}

		if err := metaStore.DeleteAcl(cmd.Context(), subject, resourceFilter); err != nil {
			return err
		}
		if resourceFilter != nil {
			fmt.Printf("Deleted %s entries for %s\n", resourceFilter.Key(), subject.SubjectKey())
		} else {
			fmt.Printf("Deleted all entries for %s\n", subject.SubjectKey())
		}
		return nil
	},
}

func resourceFilterFromFlags(cmd *cobra.Command) (*authz.Resource, error) {
	key, _ := cmd.Flags().GetString("resource")
	if key == "" {
		return nil, nil
	}
	resource, err := authz.ParseResource(key)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func joinActions(actions []authz.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, ",")
}
