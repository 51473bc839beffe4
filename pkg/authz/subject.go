package authz

import (
	"fmt"
	"strings"
)

// SubjectType is the kind of identity an ACL is attached to.
type SubjectType string

const (
	SubjectTypeUser SubjectType = "User"
	SubjectTypeRole SubjectType = "Role"
)

// Subject identifies the principal an ACL belongs to. Subjects are keyed by
// a stable "kind:name" identifier such as "User:alice" or "Role:ops".
type Subject interface {
	SubjectType() SubjectType
	SubjectName() string
	// SubjectKey returns the stable textual identifier, e.g. "User:alice".
	SubjectKey() string
}

// subjectRef is the comparable value implementation of both subject kinds.
type subjectRef struct {
	kind SubjectType
	name string
}

func (s subjectRef) SubjectType() SubjectType { return s.kind }
func (s subjectRef) SubjectName() string      { return s.name }
func (s subjectRef) SubjectKey() string       { return string(s.kind) + ":" + s.name }
func (s subjectRef) String() string           { return s.SubjectKey() }

// UserSubject returns the subject for a named user.
func UserSubject(name string) Subject {
	return subjectRef{kind: SubjectTypeUser, name: name}
}

// RoleSubject returns the subject for a named role.
func RoleSubject(name string) Subject {
	return subjectRef{kind: SubjectTypeRole, name: name}
}

// ParseSubject parses a "kind:name" key such as "User:alice".
func ParseSubject(key string) (Subject, error) {
	kind, name, ok := strings.Cut(key, ":")
	if !ok || name == "" {
		return nil, fmt.Errorf("invalid subject key %q, want kind:name", key)
	}
	switch SubjectType(kind) {
	case SubjectTypeUser:
		return UserSubject(name), nil
	case SubjectTypeRole:
		return RoleSubject(name), nil
	}
	return nil, fmt.Errorf("unknown subject kind %q", kind)
}
