package authz

import (
	"fmt"
	"strings"
)

// Decision is the outcome of evaluating a policy entry.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

// ParseDecision converts a string (case-insensitive) to a Decision.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(s) {
	case "allow":
		return DecisionAllow, nil
	case "deny":
		return DecisionDeny, nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// PolicyType separates operator-managed policies from built-in defaults.
type PolicyType string

const (
	PolicyCustom  PolicyType = "custom"
	PolicyDefault PolicyType = "default"
)

// ParsePolicyType converts a string (case-insensitive) to a PolicyType.
func ParsePolicyType(s string) (PolicyType, error) {
	switch strings.ToLower(s) {
	case "custom":
		return PolicyCustom, nil
	case "default":
		return PolicyDefault, nil
	}
	return "", fmt.Errorf("unknown policy type %q", s)
}

// ResourceType is the category of protected broker object.
// ResourceAny is a wildcard that covers every category.
type ResourceType string

const (
	ResourceAny     ResourceType = "Any"
	ResourceTopic   ResourceType = "Topic"
	ResourceGroup   ResourceType = "Group"
	ResourceCluster ResourceType = "Cluster"
)

// ParseResourceType converts a string (case-insensitive) to a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(s) {
	case "any":
		return ResourceAny, nil
	case "topic":
		return ResourceTopic, nil
	case "group":
		return ResourceGroup, nil
	case "cluster":
		return ResourceCluster, nil
	}
	return "", fmt.Errorf("unknown resource type %q", s)
}

// ResourcePattern is the matching mode of a policy entry's resource.
type ResourcePattern string

const (
	// PatternLiteral matches the resource name exactly.
	PatternLiteral ResourcePattern = "LITERAL"
	// PatternPrefixed matches any resource whose name starts with the entry name.
	PatternPrefixed ResourcePattern = "PREFIXED"
	// PatternAny matches every resource name of the entry's type.
	PatternAny ResourcePattern = "ANY"
)

// ParseResourcePattern converts a string (case-insensitive) to a ResourcePattern.
func ParseResourcePattern(s string) (ResourcePattern, error) {
	switch strings.ToUpper(s) {
	case "LITERAL":
		return PatternLiteral, nil
	case "PREFIXED":
		return PatternPrefixed, nil
	case "ANY":
		return PatternAny, nil
	}
	return "", fmt.Errorf("unknown resource pattern %q", s)
}

// Action is a broker operation subject to access control.
// ActionAll is a wildcard that covers every action.
type Action string

const (
	ActionAll    Action = "All"
	ActionPub    Action = "Pub"
	ActionSub    Action = "Sub"
	ActionCreate Action = "Create"
	ActionUpdate Action = "Update"
	ActionDelete Action = "Delete"
	ActionGet    Action = "Get"
	ActionList   Action = "List"
)

// ParseAction converts a string (case-insensitive) to an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range []Action{ActionAll, ActionPub, ActionSub, ActionCreate, ActionUpdate, ActionDelete, ActionGet, ActionList} {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// UserStatus is the administrative state of a user account.
type UserStatus string

const (
	StatusEnable  UserStatus = "enable"
	StatusDisable UserStatus = "disable"
)

// UserType distinguishes normal users from superusers. Superusers bypass
// resource-level policy entirely.
type UserType string

const (
	UserNormal UserType = "normal"
	UserSuper  UserType = "super"
)

// User is the authentication metadata record for one account. The decision
// engine only reads Status and Type; credential verification happens in the
// authentication layer.
type User struct {
	Username string     `json:"username"`
	Password string     `json:"password,omitempty"`
	Status   UserStatus `json:"status"`
	Type     UserType   `json:"type"`
}

// NewUser returns an enabled, normal user.
func NewUser(username, password string) *User {
	return &User{
		Username: username,
		Password: password,
		Status:   StatusEnable,
		Type:     UserNormal,
	}
}

// NewSuperUser returns an enabled superuser.
func NewSuperUser(username, password string) *User {
	u := NewUser(username, password)
	u.Type = UserSuper
	return u
}
