package authz

// PolicyEntry is a single access rule: a resource specifier, the actions it
// covers, an optional source IP restriction, and the resulting decision.
type PolicyEntry struct {
	Resource Resource `json:"resource"`
	Actions  []Action `json:"actions"`
	// SourceIPs restricts the entry to requests from these addresses.
	// Empty means any source.
	SourceIPs []string `json:"sourceIps,omitempty"`
	Decision  Decision `json:"decision"`
}

// NewPolicyEntry builds an entry. The resource must already be validated.
func NewPolicyEntry(resource Resource, actions []Action, sourceIPs []string, decision Decision) PolicyEntry {
	return PolicyEntry{
		Resource:  resource,
		Actions:   actions,
		SourceIPs: sourceIPs,
		Decision:  decision,
	}
}

// coversAction reports whether the entry applies to the requested action,
// either exactly or through the All wildcard.
func (e PolicyEntry) coversAction(a Action) bool {
	for _, ea := range e.Actions {
		if ea == a || ea == ActionAll {
			return true
		}
	}
	return false
}

// coversSourceIP reports whether the entry applies to the requesting source
// address. An entry without source restrictions covers every address.
func (e PolicyEntry) coversSourceIP(ip string) bool {
	if len(e.SourceIPs) == 0 {
		return true
	}
	for _, s := range e.SourceIPs {
		if s == ip {
			return true
		}
	}
	return false
}

// Policy is an ordered rule set of one policy type. Entry order is preserved
// for display only; it never influences the resolved decision.
type Policy struct {
	Type    PolicyType    `json:"type"`
	Entries []PolicyEntry `json:"entries"`
}

// NewPolicy builds a policy of the given type.
func NewPolicy(t PolicyType, entries ...PolicyEntry) Policy {
	return Policy{Type: t, Entries: entries}
}

// Acl binds a subject to its policies. It is the unit of storage and of
// create/update/delete in the authorization metadata manager.
type Acl struct {
	Subject  Subject
	Policies []Policy
}

// NewAcl builds an ACL record for a subject.
func NewAcl(subject Subject, policies ...Policy) *Acl {
	return &Acl{Subject: subject, Policies: policies}
}

// Entries flattens every entry from every policy. Policy-type boundaries are
// irrelevant to resolution.
func (a *Acl) Entries() []PolicyEntry {
	var entries []PolicyEntry
	for _, p := range a.Policies {
		entries = append(entries, p.Entries...)
	}
	return entries
}
