package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

func TestUserLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, authz.NewUser("alice", "secret")))

	user, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "secret", user.Password)
	assert.Equal(t, authz.StatusEnable, user.Status)
	assert.Equal(t, authz.UserNormal, user.Type)

	user.Status = authz.StatusDisable
	user.Password = "rotated"
	require.NoError(t, s.UpdateUser(ctx, user))

	user, err = s.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, authz.StatusDisable, user.Status)
	assert.Equal(t, "rotated", user.Password)

	require.NoError(t, s.DeleteUser(ctx, "alice"))
	user, err = s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetUserAbsentReturnsNil(t *testing.T) {
	s := setupTestStore(t)

	user, err := s.GetUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCreateUserDuplicateFails(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, authz.NewUser("alice", "a")))
	err := s.CreateUser(ctx, authz.NewUser("alice", "b"))
	assert.Error(t, err)

	// The original record survives the failed insert.
	user, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a", user.Password)
}

func TestUpdateUserAbsentFails(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdateUser(context.Background(), authz.NewUser("ghost", ""))
	assert.ErrorContains(t, err, "not found")
}

func TestCreateSuperUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, authz.NewSuperUser("root", "hunter2")))

	user, err := s.GetUser(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, authz.UserSuper, user.Type)
}

func TestListUsersFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"producer-a", "producer-b", "consumer-a"} {
		require.NoError(t, s.CreateUser(ctx, authz.NewUser(name, "")))
	}

	users, err := s.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, users, 3)
	// Ordered by username.
	assert.Equal(t, "consumer-a", users[0].Username)

	users, err = s.ListUsers(ctx, "producer")
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = s.ListUsers(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, users)
}
