package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LittleBoy18/rocketmq/pkg/authz"
)

func allowEntry(t *testing.T, resource authz.Resource, actions ...authz.Action) authz.PolicyEntry {
	t.Helper()
	return authz.NewPolicyEntry(resource, actions, nil, authz.DecisionAllow)
}

func TestAclCreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	acl := authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
	))
	require.NoError(t, s.CreateAcl(ctx, acl))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.SubjectKey(), got.Subject.SubjectKey())
	require.Len(t, got.Policies, 1)
	require.Len(t, got.Policies[0].Entries, 1)
	assert.Equal(t, authz.TopicResource("orders"), got.Policies[0].Entries[0].Resource)
	assert.Equal(t, authz.DecisionAllow, got.Policies[0].Entries[0].Decision)
}

func TestAclEntriesSurviveRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	prefixed, err := authz.NewResource(authz.ResourceTopic, "orders-", authz.PatternPrefixed)
	require.NoError(t, err)
	entry := authz.NewPolicyEntry(prefixed,
		[]authz.Action{authz.ActionPub, authz.ActionSub},
		[]string{"10.0.0.1", "10.0.0.2"},
		authz.DecisionDeny,
	)
	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom, entry))))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	entries := got.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestAclCreateMergesByResource(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
		allowEntry(t, authz.GroupResource("billing"), authz.ActionSub),
	))))

	// A second create for the same resource replaces that entry and appends
	// the unseen one.
	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		authz.NewPolicyEntry(authz.TopicResource("orders"), []authz.Action{authz.ActionPub}, nil, authz.DecisionDeny),
		allowEntry(t, authz.TopicResource("audit"), authz.ActionPub),
	))))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	entries := got.Entries()
	require.Len(t, entries, 3)

	byResource := make(map[authz.Resource]authz.Decision)
	for _, e := range entries {
		byResource[e.Resource] = e.Decision
	}
	assert.Equal(t, authz.DecisionDeny, byResource[authz.TopicResource("orders")])
	assert.Equal(t, authz.DecisionAllow, byResource[authz.GroupResource("billing")])
	assert.Equal(t, authz.DecisionAllow, byResource[authz.TopicResource("audit")])
}

func TestAclUpdateReplacesAllPolicies(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice,
		authz.NewPolicy(authz.PolicyCustom, allowEntry(t, authz.TopicResource("orders"), authz.ActionPub)),
		authz.NewPolicy(authz.PolicyDefault, allowEntry(t, authz.AnyResource(authz.ResourceTopic), authz.ActionGet)),
	)))

	require.NoError(t, s.UpdateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("payments"), authz.ActionSub),
	))))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Policies, 1)
	assert.Equal(t, authz.PolicyCustom, got.Policies[0].Type)
	entries := got.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, authz.TopicResource("payments"), entries[0].Resource)
}

func TestAclDeleteWholeRecord(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
	))))
	require.NoError(t, s.DeleteAcl(ctx, alice, nil))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAclDeleteByResource(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
		allowEntry(t, authz.GroupResource("billing"), authz.ActionSub),
	))))

	filter := authz.TopicResource("orders")
	require.NoError(t, s.DeleteAcl(ctx, alice, &filter))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	entries := got.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, authz.GroupResource("billing"), entries[0].Resource)
}

func TestAclDeleteByResourceDropsEmptyRecord(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
	))))

	filter := authz.TopicResource("orders")
	require.NoError(t, s.DeleteAcl(ctx, alice, &filter))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAclDeleteAbsentSubjectIsNoop(t *testing.T) {
	s := setupTestStore(t)

	filter := authz.TopicResource("orders")
	require.NoError(t, s.DeleteAcl(context.Background(), authz.UserSubject("ghost"), &filter))
}

func TestListAclSubjectFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(authz.UserSubject("alice"), authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
	))))
	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(authz.UserSubject("bob"), authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("payments"), authz.ActionSub),
	))))

	acls, err := s.ListAcl(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, acls, 2)

	acls, err = s.ListAcl(ctx, authz.UserSubject("alice"), nil)
	require.NoError(t, err)
	require.Len(t, acls, 1)
	assert.Equal(t, "User:alice", acls[0].Subject.SubjectKey())

	acls, err = s.ListAcl(ctx, authz.UserSubject("ghost"), nil)
	require.NoError(t, err)
	assert.Empty(t, acls)
}

func TestListAclResourceFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice, authz.NewPolicy(authz.PolicyCustom,
		allowEntry(t, authz.TopicResource("orders"), authz.ActionPub),
		allowEntry(t, authz.GroupResource("billing"), authz.ActionSub),
	))))

	// Literal filter selects the single matching entry.
	filter := authz.TopicResource("orders")
	acls, err := s.ListAcl(ctx, alice, &filter)
	require.NoError(t, err)
	require.Len(t, acls, 1)
	entries := acls[0].Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, authz.TopicResource("orders"), entries[0].Resource)

	// A wildcard-name filter selects every entry of its type.
	wildcard := authz.AnyResource(authz.ResourceTopic)
	acls, err = s.ListAcl(ctx, alice, &wildcard)
	require.NoError(t, err)
	require.Len(t, acls, 1)
	require.Len(t, acls[0].Entries(), 1)

	// A filter matching nothing drops the record entirely.
	filter = authz.ClusterResource("prod")
	acls, err = s.ListAcl(ctx, alice, &filter)
	require.NoError(t, err)
	assert.Empty(t, acls)
}

func TestListAclPreservesPolicyTypes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := authz.UserSubject("alice")

	require.NoError(t, s.CreateAcl(ctx, authz.NewAcl(alice,
		authz.NewPolicy(authz.PolicyCustom, allowEntry(t, authz.TopicResource("orders"), authz.ActionPub)),
		authz.NewPolicy(authz.PolicyDefault, allowEntry(t, authz.AnyResource(authz.ResourceTopic), authz.ActionGet)),
	)))

	got, err := s.GetAcl(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Policies, 2)

	types := []authz.PolicyType{got.Policies[0].Type, got.Policies[1].Type}
	assert.Contains(t, types, authz.PolicyCustom)
	assert.Contains(t, types, authz.PolicyDefault)
}
