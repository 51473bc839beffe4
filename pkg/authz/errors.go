package authz

import (
	"errors"
	"fmt"
)

// Authorization error codes. All are terminal, non-retryable, user-facing
// authorization failures.
const (
	ErrCodeUserNotFound = "authz.user_not_found" // Subject has no user record
	ErrCodeUserDisabled = "authz.user_disabled"  // User is administratively disabled
	ErrCodeNoPermission = "authz.no_permission"  // No matched policies, or decision is deny
	ErrCodeInternal     = "authz.internal"       // Unexpected collaborator failure
)

// Reason suffixes for NoPermission messages. The two causes must stay
// textually distinguishable.
const (
	reasonNoMatchedPolicies = "no matched policies."
	reasonDecisionDeny      = "the decision is deny."
)

// AuthzError represents an authorization failure with a structured code.
type AuthzError struct {
	Code    string // One of the ErrCode* constants
	Message string // Human-readable error description
	cause   error  // Wrapped collaborator error for ErrCodeInternal
}

// Error implements the error interface.
func (e *AuthzError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the wrapped cause.
func (e *AuthzError) Unwrap() error {
	return e.cause
}

// ErrUserNotFound creates the error for a subject with no user record.
func ErrUserNotFound(username string) *AuthzError {
	return &AuthzError{
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("User:%s not found.", username),
	}
}

// ErrUserDisabled creates the error for an administratively disabled user.
func ErrUserDisabled(username string) *AuthzError {
	return &AuthzError{
		Code:    ErrCodeUserDisabled,
		Message: fmt.Sprintf("User:%s is disabled.", username),
	}
}

// errNoPermission creates the error for a failed policy resolution. The
// message states the subject, the resource, the source address and the
// reason the request was refused.
func errNoPermission(request AuthorizationContext, reason string) *AuthzError {
	return &AuthzError{
		Code: ErrCodeNoPermission,
		Message: fmt.Sprintf("%s has no permission to access %s from %s, %s",
			request.Subject.SubjectKey(), request.Resource.Key(), request.SourceIP, reason),
	}
}

// ErrInternal wraps an unexpected collaborator failure into a generic
// authorization failure so collaborator-specific error types never leak to
// callers.
func ErrInternal(err error) *AuthzError {
	return &AuthzError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf("authorization failed: %v", err),
		cause:   err,
	}
}

// ErrorCode extracts the authz error code from an error. Returns empty
// string if the error is not an AuthzError.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var authzErr *AuthzError
	if errors.As(err, &authzErr) {
		return authzErr.Code
	}
	return ""
}

// IsAuthzError returns true if the error is or wraps an AuthzError.
func IsAuthzError(err error) bool {
	if err == nil {
		return false
	}
	var authzErr *AuthzError
	return errors.As(err, &authzErr)
}
