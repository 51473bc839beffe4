// This file contains methods for authentication metadata (user records).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

// CreateUser stores a new user record. Returns an error if the username is
// already taken.
func (s *Store) CreateUser(ctx context.Context, user *authz.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password, status, type) VALUES (?, ?, ?, ?)`,
		user.Username, user.Password, string(user.Status), string(user.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}
	return nil
}

// GetUser returns the user record for a username, or (nil, nil) if no such
// user exists. Implements authz.AuthenticationMetadataManager.
func (s *Store) GetUser(ctx context.Context, username string) (*authz.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT username, password, status, type FROM users WHERE username = ?`,
		username,
	)

	var user authz.User
	err := row.Scan(&user.Username, &user.Password, &user.Status, &user.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return &user, nil
}

// UpdateUser replaces the stored record for the user's username.
func (s *Store) UpdateUser(ctx context.Context, user *authz.User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password = ?, status = ?, type = ?, updated_at = strftime('%s', 'now') WHERE username = ?`,
		user.Password, string(user.Status), string(user.Type), user.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.Username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %s not found", user.Username)
	}
	return nil
}

// DeleteUser removes a user record.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}
	return nil
}

// ListUsers returns users whose username contains the filter substring. An
// empty filter returns every user, ordered by username.
func (s *Store) ListUsers(ctx context.Context, filter string) ([]*authz.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password, status, type FROM users WHERE username LIKE ? ORDER BY username`,
		"%"+filter+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*authz.User
	for rows.Next() {
		var user authz.User
		if err := rows.Scan(&user.Username, &user.Password, &user.Status, &user.Type); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
