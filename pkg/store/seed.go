// This file contains the YAML bootstrap loader used to seed users and ACLs,
// typically at first deployment.
package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

// Seed is the YAML document seeding users and ACLs.
type Seed struct {
	Users []SeedUser `yaml:"users"`
	Acls  []SeedAcl  `yaml:"acls"`
}

// SeedUser declares one user account.
type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Type     string `yaml:"type"`   // normal (default) or super
	Status   string `yaml:"status"` // enable (default) or disable
}

// SeedAcl declares the full policy set for one subject.
type SeedAcl struct {
	Subject  string       `yaml:"subject"` // e.g. User:alice
	Policies []SeedPolicy `yaml:"policies"`
}

// SeedPolicy declares one policy of a given type.
type SeedPolicy struct {
	Type    string      `yaml:"type"` // custom (default) or default
	Entries []SeedEntry `yaml:"entries"`
}

// SeedEntry declares one policy entry. Resource is a "Type:name" key; a name
// of "*" selects the ANY pattern, and Pattern may override to PREFIXED.
type SeedEntry struct {
	Resource  string   `yaml:"resource"`
	Pattern   string   `yaml:"pattern"`
	Actions   []string `yaml:"actions"`
	SourceIPs []string `yaml:"sourceIps"`
	Decision  string   `yaml:"decision"`
}

// LoadSeed reads and validates a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return &seed, nil
}

// ApplySeed loads the seed into the store. Users that already exist are left
// untouched; ACLs replace any stored policies for their subject, so applying
// the same seed twice is idempotent.
func (s *Store) ApplySeed(ctx context.Context, seed *Seed) error {
	for _, su := range seed.Users {
		user, err := seedUser(su)
		if err != nil {
			return err
		}
		existing, err := s.GetUser(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.CreateUser(ctx, user); err != nil {
			return err
		}
	}

	for _, sa := range seed.Acls {
		acl, err := seedAcl(sa)
		if err != nil {
			return err
		}
		if err := s.UpdateAcl(ctx, acl); err != nil {
			return err
		}
	}
	return nil
}

func seedUser(su SeedUser) (*authz.User, error) {
	if su.Username == "" {
		return nil, fmt.Errorf("seed user with empty username")
	}
	user := authz.NewUser(su.Username, su.Password)
	if su.Type != "" {
		switch authz.UserType(su.Type) {
		case authz.UserNormal, authz.UserSuper:
			user.Type = authz.UserType(su.Type)
		default:
			return nil, fmt.Errorf("seed user %s: unknown type %q", su.Username, su.Type)
		}
	}
	if su.Status != "" {
		switch authz.UserStatus(su.Status) {
		case authz.StatusEnable, authz.StatusDisable:
			user.Status = authz.UserStatus(su.Status)
		default:
			return nil, fmt.Errorf("seed user %s: unknown status %q", su.Username, su.Status)
		}
	}
	return user, nil
}

func seedAcl(sa SeedAcl) (*authz.Acl, error) {
	subject, err := authz.ParseSubject(sa.Subject)
	if err != nil {
		return nil, fmt.Errorf("seed acl: %w", err)
	}

	var policies []authz.Policy
	for _, sp := range sa.Policies {
		policyType := authz.PolicyCustom
		if sp.Type != "" {
			policyType, err = authz.ParsePolicyType(sp.Type)
			if err != nil {
				return nil, fmt.Errorf("seed acl %s: %w", sa.Subject, err)
			}
		}

		var entries []authz.PolicyEntry
		for _, se := range sp.Entries {
			entry, err := seedEntry(se)
			if err != nil {
				return nil, fmt.Errorf("seed acl %s: %w", sa.Subject, err)
			}
			entries = append(entries, entry)
		}
		policies = append(policies, authz.NewPolicy(policyType, entries...))
	}
	return authz.NewAcl(subject, policies...), nil
}

func seedEntry(se SeedEntry) (authz.PolicyEntry, error) {
	resource, err := authz.ParseResource(se.Resource)
	if err != nil {
		return authz.PolicyEntry{}, err
	}
	if se.Pattern != "" {
		pattern, err := authz.ParseResourcePattern(se.Pattern)
		if err != nil {
			return authz.PolicyEntry{}, err
		}
		resource.Pattern = pattern
		if resource, err = authz.NewResource(resource.Type, resource.Name, resource.Pattern); err != nil {
			return authz.PolicyEntry{}, err
		}
	}

	var actions []authz.Action
	for _, a := range se.Actions {
		action, err := authz.ParseAction(a)
		if err != nil {
			return authz.PolicyEntry{}, err
		}
		actions = append(actions, action)
	}
	if len(actions) == 0 {
		return authz.PolicyEntry{}, fmt.Errorf("entry for %s has no actions", se.Resource)
	}

	decision, err := authz.ParseDecision(se.Decision)
	if err != nil {
		return authz.PolicyEntry{}, err
	}
	return authz.NewPolicyEntry(resource, actions, se.SourceIPs, decision), nil
}
