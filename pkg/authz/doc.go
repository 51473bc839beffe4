// Package authz is the authorization decision core of the broker's
// access-control layer. Given an authenticated subject, a target resource,
// an action and a source address, it decides ALLOW or DENY by resolving the
// subject's access-control entries with a specificity-ranked, deny-aware
// precedence algorithm.
//
// # Precedence
//
// Matching entries are ranked by an ordered specificity tuple: resource type
// (a concrete type beats the Any wildcard), then pattern (LITERAL beats
// PREFIXED beats ANY), then prefix length (longer beats shorter). A more
// specific entry always overrides a less specific one regardless of its
// decision; only among entries tied at the most specific level does deny
// override allow. Entry insertion order never influences the outcome.
//
// # Pipeline
//
// Evaluation runs through a short-circuiting pipeline: the user-validity
// stage (existence, enabled status, superuser bypass) followed by the ACL
// evaluation stage. Stages conform to one Handler interface and are composed
// by a Pipeline runner that owns iteration.
//
// # Usage
//
//	cfg := authz.DefaultConfig()
//	authorizer := authz.NewAuthorizer(cfg, authnManager, authzManager,
//		authz.WithLogger(logger),
//		authz.WithAuditLogger(authz.NewStoreAuditLogger(st)),
//	)
//
//	err := authorizer.Handle(ctx, authz.NewAuthorizationContext(
//		authz.UserSubject("alice"),
//		authz.TopicResource("orders"),
//		authz.ActionPub,
//		"10.0.0.7",
//	))
//	if err != nil {
//		// err is an *AuthzError; surface it as permission denied.
//	}
//
// # Thread safety
//
// The Authorizer is stateless and safe for unbounded concurrent use. Each
// evaluation reads a point-in-time view of the subject's ACLs and user
// record from the injected metadata managers; cancellation is cooperative
// through ctx.
package authz
