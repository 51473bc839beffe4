package authz

import (
	"context"
	"log/slog"
	"time"
)

// Authorizer is the single entry point for authorization decisions. It owns
// the canonical pipeline (user validity, then ACL evaluation), applies the
// config-level gates, wraps collaborator failures and logs every decision.
//
// The Authorizer holds no locks and no mutable state; it is safe for
// unbounded concurrent use. Cancellation is cooperative through ctx and
// reaches the metadata managers, which are the only suspension points.
type Authorizer struct {
	config    Config
	whitelist map[Action]struct{}
	pipeline  *Pipeline
	logger    *slog.Logger
	audit     AuditLogger
}

// Option configures the Authorizer.
type Option func(*Authorizer)

// WithLogger sets the structured logger for decision logging.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authorizer) {
		a.logger = l
	}
}

// WithAuditLogger sets the audit sink for decision records.
func WithAuditLogger(audit AuditLogger) Option {
	return func(a *Authorizer) {
		a.audit = audit
	}
}

// NewAuthorizer builds the authorizer with explicitly injected metadata
// managers. There are no process-wide registries; callers own the managers'
// lifecycles.
func NewAuthorizer(cfg Config, authn AuthenticationMetadataManager, authzMgr AuthorizationMetadataManager, opts ...Option) *Authorizer {
	a := &Authorizer{
		config:    cfg,
		whitelist: make(map[Action]struct{}, len(cfg.Whitelist)),
		pipeline: NewPipeline(
			NewUserHandler(authn),
			NewAclHandler(authzMgr),
		),
		logger: slog.Default(),
		audit:  NopAuditLogger{},
	}
	for _, action := range cfg.Whitelist {
		a.whitelist[action] = struct{}{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle evaluates one authorization request. A nil return means the request
// is allowed. A non-nil return is always an *AuthzError: pipeline failures
// pass through unchanged, anything unexpected from a collaborator is wrapped
// into the generic internal code so collaborator error types never leak.
func (a *Authorizer) Handle(ctx context.Context, request AuthorizationContext) error {
	start := time.Now()
	ctx, requestID := EnsureRequestID(ctx)

	err := a.evaluate(ctx, request)
	a.logDecision(ctx, requestID, request, err, time.Since(start))
	return err
}

func (a *Authorizer) evaluate(ctx context.Context, request AuthorizationContext) error {
	if !a.config.Enabled {
		return nil
	}
	if _, ok := a.whitelist[request.Action]; ok {
		return nil
	}
	if err := a.pipeline.Handle(ctx, request); err != nil {
		if IsAuthzError(err) {
			return err
		}
		return ErrInternal(err)
	}
	return nil
}

func (a *Authorizer) logDecision(ctx context.Context, requestID string, request AuthorizationContext, err error, elapsed time.Duration) {
	rec := DecisionRecord{
		Timestamp:  time.Now().UTC(),
		RequestID:  requestID,
		Subject:    request.Subject.SubjectKey(),
		Resource:   request.Resource.Key(),
		Action:     string(request.Action),
		SourceIP:   request.SourceIP,
		Decision:   string(DecisionAllow),
		Reason:     "access permitted",
		DurationUS: elapsed.Microseconds(),
	}
	if err != nil {
		rec.Decision = string(DecisionDeny)
		rec.Code = ErrorCode(err)
		rec.Reason = err.Error()
	}

	a.logger.Info("authorization decision",
		"request_id", rec.RequestID,
		"subject", rec.Subject,
		"resource", rec.Resource,
		"action", rec.Action,
		"source_ip", rec.SourceIP,
		"decision", rec.Decision,
		"reason", rec.Reason,
		"duration_us", rec.DurationUS,
	)

	if auditErr := a.audit.LogDecision(ctx, rec); auditErr != nil {
		a.logger.Error("audit sink failed", "error", auditErr)
	}
}
