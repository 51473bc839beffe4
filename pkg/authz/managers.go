package authz

import "context"

// AuthenticationMetadataManager supplies user records to the user-validity
// stage. Implementations are typically backed by I/O; calls honor ctx for
// cooperative cancellation.
type AuthenticationMetadataManager interface {
	// GetUser returns the user record for a username, or (nil, nil) if no
	// such user exists.
	GetUser(ctx context.Context, username string) (*User, error)
}

// AuthorizationMetadataManager persists ACL bindings. The decision path only
// reads; create/update/delete are administrative operations.
type AuthorizationMetadataManager interface {
	// ListAcl returns the ACL records matching the filters. A nil
	// subjectFilter matches every subject; a nil resourceFilter matches
	// every resource.
	ListAcl(ctx context.Context, subjectFilter Subject, resourceFilter *Resource) ([]*Acl, error)

	// CreateAcl stores a new ACL record, merging with any existing record
	// for the same subject and policy type.
	CreateAcl(ctx context.Context, acl *Acl) error

	// UpdateAcl replaces the stored policies for the ACL's subject.
	UpdateAcl(ctx context.Context, acl *Acl) error

	// DeleteAcl removes ACL data for a subject. A nil resourceFilter
	// removes the whole record; otherwise only entries for the matching
	// resource are removed.
	DeleteAcl(ctx context.Context, subject Subject, resourceFilter *Resource) error
}
