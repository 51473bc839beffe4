package authz

import (
	"context"
	"log/slog"
	"time"
)

// DecisionRecord captures one authorization decision for audit. Every
// evaluation produces exactly one record.
type DecisionRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	Subject    string    `json:"subject"`
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	SourceIP   string    `json:"source_ip"`
	Decision   string    `json:"decision"` // "allow" or "deny"
	Code       string    `json:"code,omitempty"`
	Reason     string    `json:"reason"`
	DurationUS int64     `json:"duration_us"`
}

// AuditLogger records authorization decisions for compliance and forensics.
type AuditLogger interface {
	LogDecision(ctx context.Context, rec DecisionRecord) error
}

// SlogAuditLogger writes authorization decisions to structured logging,
// suitable for JSON log aggregation.
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewSlogAuditLogger creates an audit logger that writes to slog.
func NewSlogAuditLogger(logger *slog.Logger) *SlogAuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAuditLogger{logger: logger}
}

// LogDecision writes an authorization decision to structured logging.
func (l *SlogAuditLogger) LogDecision(ctx context.Context, rec DecisionRecord) error {
	level := slog.LevelInfo
	if rec.Decision == string(DecisionDeny) {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "authorization decision",
		slog.String("event", "authorization_decision"),
		slog.Time("timestamp", rec.Timestamp),
		slog.String("request_id", rec.RequestID),
		slog.String("subject", rec.Subject),
		slog.String("resource", rec.Resource),
		slog.String("action", rec.Action),
		slog.String("source_ip", rec.SourceIP),
		slog.String("decision", rec.Decision),
		slog.String("code", rec.Code),
		slog.String("reason", rec.Reason),
		slog.Int64("duration_us", rec.DurationUS),
	)
	return nil
}

// DecisionStore is the storage interface the StoreAuditLogger writes to.
// pkg/store implements it.
type DecisionStore interface {
	InsertDecision(ctx context.Context, rec DecisionRecord) error
}

// StoreAuditLogger writes authorization decisions to the metadata store's
// decision log.
type StoreAuditLogger struct {
	store DecisionStore
}

// NewStoreAuditLogger creates an audit logger that writes to the store.
func NewStoreAuditLogger(store DecisionStore) *StoreAuditLogger {
	return &StoreAuditLogger{store: store}
}

// LogDecision persists an authorization decision.
func (l *StoreAuditLogger) LogDecision(ctx context.Context, rec DecisionRecord) error {
	return l.store.InsertDecision(ctx, rec)
}

// MultiAuditLogger writes to multiple audit loggers.
type MultiAuditLogger struct {
	loggers []AuditLogger
}

// NewMultiAuditLogger creates an audit logger that fans out to every
// destination, returning the first error encountered.
func NewMultiAuditLogger(loggers ...AuditLogger) *MultiAuditLogger {
	return &MultiAuditLogger{loggers: loggers}
}

// LogDecision writes to all configured loggers.
func (l *MultiAuditLogger) LogDecision(ctx context.Context, rec DecisionRecord) error {
	var firstErr error
	for _, logger := range l.loggers {
		if err := logger.LogDecision(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NopAuditLogger discards all decision records. Use for testing.
type NopAuditLogger struct{}

// LogDecision does nothing.
func (NopAuditLogger) LogDecision(ctx context.Context, rec DecisionRecord) error {
	return nil
}
