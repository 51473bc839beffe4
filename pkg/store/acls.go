// This file contains methods for authorization metadata (ACL records). A
// subject's ACL is stored as one row per policy type with the entries
// serialized as a single JSON document, so a concurrent evaluation observes
// either the old or the new policy, never a partially-written one.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

// CreateAcl stores an ACL record, merging with any existing policies for the
// same subject. An incoming entry replaces a stored entry that targets the
// same resource specifier; other entries are appended. Implements part of
// authz.AuthorizationMetadataManager.
func (s *Store) CreateAcl(ctx context.Context, acl *authz.Acl) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	key := acl.Subject.SubjectKey()
	for _, policy := range acl.Policies {
		existing, err := readEntries(ctx, tx, key, policy.Type)
		if err != nil {
			return err
		}
		merged := mergeEntries(existing, policy.Entries)
		if err := writeEntries(ctx, tx, key, policy.Type, merged); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit acl: %w", err)
	}
	return nil
}

// UpdateAcl replaces every stored policy for the ACL's subject.
func (s *Store) UpdateAcl(ctx context.Context, acl *authz.Acl) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	key := acl.Subject.SubjectKey()
	if _, err := tx.ExecContext(ctx, `DELETE FROM acls WHERE subject_key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear acl for %s: %w", key, err)
	}
	for _, policy := range acl.Policies {
		if len(policy.Entries) == 0 {
			continue
		}
		if err := writeEntries(ctx, tx, key, policy.Type, policy.Entries); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit acl: %w", err)
	}
	return nil
}

// DeleteAcl removes ACL data for a subject. A nil resourceFilter removes the
// whole record; otherwise only entries targeting the matching resource are
// removed, dropping rows that become empty.
func (s *Store) DeleteAcl(ctx context.Context, subject authz.Subject, resourceFilter *authz.Resource) error {
	key := subject.SubjectKey()
	if resourceFilter == nil {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM acls WHERE subject_key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete acl for %s: %w", key, err)
		}
		return nil
	}

	acl, err := s.GetAcl(ctx, subject)
	if err != nil {
		return err
	}
	if acl == nil {
		return nil
	}

	for i := range acl.Policies {
		var kept []authz.PolicyEntry
		for _, e := range acl.Policies[i].Entries {
			if !resourceMatchesFilter(e.Resource, *resourceFilter) {
				kept = append(kept, e)
			}
		}
		acl.Policies[i].Entries = kept
	}
	return s.UpdateAcl(ctx, acl)
}

// GetAcl returns the full ACL record for a subject, or (nil, nil) if the
// subject has no stored policies.
func (s *Store) GetAcl(ctx context.Context, subject authz.Subject) (*authz.Acl, error) {
	acls, err := s.ListAcl(ctx, subject, nil)
	if err != nil {
		return nil, err
	}
	if len(acls) == 0 {
		return nil, nil
	}
	return acls[0], nil
}

// ListAcl returns the ACL records matching the filters, one per subject. A
// nil subjectFilter matches every subject; a nil resourceFilter matches
// every resource. Implements part of authz.AuthorizationMetadataManager.
func (s *Store) ListAcl(ctx context.Context, subjectFilter authz.Subject, resourceFilter *authz.Resource) ([]*authz.Acl, error) {
	query := `SELECT subject_key, policy_type, entries FROM acls ORDER BY subject_key, policy_type`
	args := []any{}
	if subjectFilter != nil {
		query = `SELECT subject_key, policy_type, entries FROM acls WHERE subject_key = ? ORDER BY policy_type`
		args = append(args, subjectFilter.SubjectKey())
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list acls: %w", err)
	}
	defer rows.Close()

	var acls []*authz.Acl
	bySubject := make(map[string]*authz.Acl)
	for rows.Next() {
		var key, policyType, doc string
		if err := rows.Scan(&key, &policyType, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan acl: %w", err)
		}

		var entries []authz.PolicyEntry
		if err := json.Unmarshal([]byte(doc), &entries); err != nil {
			return nil, fmt.Errorf("failed to decode acl entries for %s: %w", key, err)
		}
		if resourceFilter != nil {
			var kept []authz.PolicyEntry
			for _, e := range entries {
				if resourceMatchesFilter(e.Resource, *resourceFilter) {
					kept = append(kept, e)
				}
			}
			entries = kept
		}
		if len(entries) == 0 {
			continue
		}

		acl, ok := bySubject[key]
		if !ok {
			subject, err := authz.ParseSubject(key)
			if err != nil {
				return nil, fmt.Errorf("failed to parse stored subject %q: %w", key, err)
			}
			acl = authz.NewAcl(subject)
			bySubject[key] = acl
			acls = append(acls, acl)
		}
		acl.Policies = append(acl.Policies, authz.NewPolicy(authz.PolicyType(policyType), entries...))
	}
	return acls, rows.Err()
}

// resourceMatchesFilter reports whether an entry's resource specifier is
// selected by an administrative resource filter. A filter with the Any type
// selects every type; a wildcard-name filter selects every name of its type.
func resourceMatchesFilter(entry, filter authz.Resource) bool {
	if filter.Type != authz.ResourceAny && entry.Type != filter.Type {
		return false
	}
	if filter.Pattern == authz.PatternAny {
		return true
	}
	return entry.Name == filter.Name
}

// mergeEntries overlays incoming entries on existing ones, keyed by resource
// specifier.
func mergeEntries(existing, incoming []authz.PolicyEntry) []authz.PolicyEntry {
	merged := make([]authz.PolicyEntry, 0, len(existing)+len(incoming))
	replaced := make(map[authz.Resource]authz.PolicyEntry, len(incoming))
	for _, e := range incoming {
		replaced[e.Resource] = e
	}
	seen := make(map[authz.Resource]bool, len(existing))
	for _, e := range existing {
		if r, ok := replaced[e.Resource]; ok {
			if !seen[e.Resource] {
				merged = append(merged, r)
				seen[e.Resource] = true
			}
			continue
		}
		merged = append(merged, e)
	}
	for _, e := range incoming {
		if !seen[e.Resource] {
			merged = append(merged, e)
			seen[e.Resource] = true
		}
	}
	return merged
}

func readEntries(ctx context.Context, tx *sql.Tx, key string, policyType authz.PolicyType) ([]authz.PolicyEntry, error) {
	var doc string
	err := tx.QueryRowContext(ctx,
		`SELECT entries FROM acls WHERE subject_key = ? AND policy_type = ?`,
		key, string(policyType),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read acl entries for %s: %w", key, err)
	}
	var entries []authz.PolicyEntry
	if err := json.Unmarshal([]byte(doc), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode acl entries for %s: %w", key, err)
	}
	return entries, nil
}

func writeEntries(ctx context.Context, tx *sql.Tx, key string, policyType authz.PolicyType, entries []authz.PolicyEntry) error {
	doc, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode acl entries for %s: %w", key, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO acls (subject_key, policy_type, entries) VALUES (?, ?, ?)
		ON CONFLICT(subject_key, policy_type)
		DO UPDATE SET entries = excluded.entries, updated_at = strftime('%s', 'now')`,
		key, string(policyType), string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to write acl entries for %s: %w", key, err)
	}
	return nil
}
