package authz

import (
	"fmt"
	"strings"
)

// Resource identifies a protected broker object together with the matching
// mode used when the resource appears in a policy entry.
//
// Invariant: Name is empty iff Pattern is ANY. LITERAL and PREFIXED entries
// require a non-empty name; this is enforced when entries are created, never
// at match time.
type Resource struct {
	Type    ResourceType    `json:"type"`
	Name    string          `json:"name,omitempty"`
	Pattern ResourcePattern `json:"pattern"`
}

// NewResource builds a validated resource specifier.
func NewResource(t ResourceType, name string, pattern ResourcePattern) (Resource, error) {
	r := Resource{Type: t, Name: name, Pattern: pattern}
	if err := r.Validate(); err != nil {
		return Resource{}, err
	}
	return r, nil
}

// TopicResource returns the literal resource for a concrete topic. Request
// resources are always literal.
func TopicResource(name string) Resource {
	return Resource{Type: ResourceTopic, Name: name, Pattern: PatternLiteral}
}

// GroupResource returns the literal resource for a concrete consumer group.
func GroupResource(name string) Resource {
	return Resource{Type: ResourceGroup, Name: name, Pattern: PatternLiteral}
}

// ClusterResource returns the literal resource for a named cluster.
func ClusterResource(name string) Resource {
	return Resource{Type: ResourceCluster, Name: name, Pattern: PatternLiteral}
}

// AnyResource returns the wildcard specifier matching every name of the
// given type.
func AnyResource(t ResourceType) Resource {
	return Resource{Type: t, Pattern: PatternAny}
}

// Validate checks the name/pattern invariant.
func (r Resource) Validate() error {
	switch r.Pattern {
	case PatternLiteral, PatternPrefixed:
		if r.Name == "" {
			return fmt.Errorf("%s resource requires a non-empty name", r.Pattern)
		}
	case PatternAny:
		if r.Name != "" {
			return fmt.Errorf("ANY resource must not carry a name, got %q", r.Name)
		}
	default:
		return fmt.Errorf("unknown resource pattern %q", r.Pattern)
	}
	switch r.Type {
	case ResourceAny, ResourceTopic, ResourceGroup, ResourceCluster:
	default:
		return fmt.Errorf("unknown resource type %q", r.Type)
	}
	return nil
}

// Key returns the display identifier, e.g. "Topic:t1". Wildcard names render
// as "*".
func (r Resource) Key() string {
	name := r.Name
	if r.Pattern == PatternAny {
		name = "*"
	}
	return string(r.Type) + ":" + name
}

func (r Resource) String() string { return r.Key() }

// ParseResource parses a "Type:name" key such as "Topic:t1" into a literal
// resource. A name of "*" yields the ANY pattern for that type.
func ParseResource(key string) (Resource, error) {
	typePart, name, ok := strings.Cut(key, ":")
	if !ok || name == "" {
		return Resource{}, fmt.Errorf("invalid resource key %q, want Type:name", key)
	}
	t, err := ParseResourceType(typePart)
	if err != nil {
		return Resource{}, err
	}
	if name == "*" {
		return AnyResource(t), nil
	}
	return Resource{Type: t, Name: name, Pattern: PatternLiteral}, nil
}
