package authz

import "context"

// UserHandler validates the requesting user before any policy evaluation:
// the user must exist and be enabled, and superusers bypass the ACL stage
// entirely.
type UserHandler struct {
	authn AuthenticationMetadataManager
}

// NewUserHandler builds the user-validity stage.
func NewUserHandler(authn AuthenticationMetadataManager) *UserHandler {
	return &UserHandler{authn: authn}
}

// Handle checks the subject's user record. Role subjects carry no user
// record and delegate straight to policy evaluation.
func (h *UserHandler) Handle(ctx context.Context, request AuthorizationContext) (Verdict, error) {
	if request.Subject.SubjectType() != SubjectTypeUser {
		return Delegate, nil
	}

	name := request.Subject.SubjectName()
	user, err := h.authn.GetUser(ctx, name)
	if err != nil {
		return Delegate, err
	}
	if user == nil {
		return Delegate, ErrUserNotFound(name)
	}
	if user.Status == StatusDisable {
		return Delegate, ErrUserDisabled(name)
	}
	if user.Type == UserSuper {
		return Terminate, nil
	}
	return Delegate, nil
}
