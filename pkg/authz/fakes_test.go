package authz

import (
	"context"
	"sync"
)

// fakeAuthn is an in-memory AuthenticationMetadataManager that counts
// lookups.
type fakeAuthn struct {
	mu    sync.Mutex
	users map[string]*User
	calls int
	err   error
}

func newFakeAuthn(users ...*User) *fakeAuthn {
	f := &fakeAuthn{users: make(map[string]*User)}
	for _, u := range users {
		f.users[u.Username] = u
	}
	return f
}

func (f *fakeAuthn) GetUser(ctx context.Context, username string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

// fakeAclStore is an in-memory AuthorizationMetadataManager that counts
// ListAcl invocations, so tests can observe whether the ACL stage ran.
type fakeAclStore struct {
	mu    sync.Mutex
	acls  []*Acl
	calls int
	err   error
}

func newFakeAclStore(acls ...*Acl) *fakeAclStore {
	return &fakeAclStore{acls: acls}
}

func (f *fakeAclStore) ListAcl(ctx context.Context, subjectFilter Subject, resourceFilter *Resource) ([]*Acl, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if subjectFilter == nil {
		return f.acls, nil
	}
	var out []*Acl
	for _, acl := range f.acls {
		if acl.Subject.SubjectKey() == subjectFilter.SubjectKey() {
			out = append(out, acl)
		}
	}
	return out, nil
}

func (f *fakeAclStore) CreateAcl(ctx context.Context, acl *Acl) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acls = append(f.acls, acl)
	return nil
}

func (f *fakeAclStore) UpdateAcl(ctx context.Context, acl *Acl) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.acls {
		if existing.Subject.SubjectKey() == acl.Subject.SubjectKey() {
			f.acls[i] = acl
			return nil
		}
	}
	f.acls = append(f.acls, acl)
	return nil
}

func (f *fakeAclStore) DeleteAcl(ctx context.Context, subject Subject, resourceFilter *Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*Acl
	for _, acl := range f.acls {
		if acl.Subject.SubjectKey() != subject.SubjectKey() {
			kept = append(kept, acl)
		}
	}
	f.acls = kept
	return nil
}

// recordingAudit captures decision records for assertions.
type recordingAudit struct {
	mu   sync.Mutex
	recs []DecisionRecord
}

func (r *recordingAudit) LogDecision(ctx context.Context, rec DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	return nil
}

func (r *recordingAudit) records() []DecisionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DecisionRecord(nil), r.recs...)
}

// subEntry builds a single-action Sub entry, the common case in these tests.
func subEntry(resource Resource, decision Decision) PolicyEntry {
	return NewPolicyEntry(resource, []Action{ActionSub}, nil, decision)
}

// mustResource builds a validated resource or fails the test setup by
// panicking; only used with known-good literals.
func mustResource(t ResourceType, name string, pattern ResourcePattern) Resource {
	r, err := NewResource(t, name, pattern)
	if err != nil {
		panic(err)
	}
	return r
}
