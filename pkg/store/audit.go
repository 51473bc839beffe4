// This file contains methods for the decision audit log.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

// InsertDecision appends an authorization decision to the decision log.
// Implements authz.DecisionStore.
func (s *Store) InsertDecision(ctx context.Context, rec authz.DecisionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decision_log (timestamp, request_id, subject, resource, action, source_ip, decision, code, reason, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Unix(), rec.RequestID, rec.Subject, rec.Resource, rec.Action,
		rec.SourceIP, rec.Decision, rec.Code, rec.Reason, rec.DurationUS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}
	return nil
}

// ListDecisions returns the most recent decision records, newest first.
func (s *Store) ListDecisions(ctx context.Context, limit int) ([]authz.DecisionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, request_id, subject, resource, action, source_ip, decision, code, reason, duration_us
		FROM decision_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	var recs []authz.DecisionRecord
	for rows.Next() {
		var rec authz.DecisionRecord
		var ts int64
		if err := rows.Scan(&ts, &rec.RequestID, &rec.Subject, &rec.Resource, &rec.Action,
			&rec.SourceIP, &rec.Decision, &rec.Code, &rec.Reason, &rec.DurationUS); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0).UTC()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
