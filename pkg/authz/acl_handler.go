package authz

import "context"

// AclHandler evaluates the subject's ACL entries against the request. It
// reads a point-in-time snapshot from the metadata manager and performs no
// mutation, so it is idempotent and safe for unbounded concurrent use.
type AclHandler struct {
	authz AuthorizationMetadataManager
}

// NewAclHandler builds the ACL evaluation stage.
func NewAclHandler(authz AuthorizationMetadataManager) *AclHandler {
	return &AclHandler{authz: authz}
}

// Handle loads every ACL belonging to the subject, flattens all entries
// across policies and records, and resolves them. A subject may accumulate
// multiple ACL records over time; the boundaries are irrelevant here.
func (h *AclHandler) Handle(ctx context.Context, request AuthorizationContext) (Verdict, error) {
	acls, err := h.authz.ListAcl(ctx, request.Subject, nil)
	if err != nil {
		return Delegate, err
	}

	var entries []PolicyEntry
	for _, acl := range acls {
		entries = append(entries, acl.Entries()...)
	}

	decision, matched := resolveEntries(entries, request)
	if !matched {
		return Delegate, errNoPermission(request, reasonNoMatchedPolicies)
	}
	if decision == DecisionDeny {
		return Delegate, errNoPermission(request, reasonDecisionDeny)
	}
	return Delegate, nil
}
