package authz

import "strings"

// matchScore ranks how specifically a matching entry's resource identifies
// the requested resource. Scores compare lexicographically, most significant
// field first: a concrete resource type beats the Any wildcard, then a more
// specific pattern beats a less specific one, then a longer prefix beats a
// shorter one. Only after this ranking does decision polarity matter.
type matchScore struct {
	typeExact   int // 1 when the entry names a concrete resource type
	patternRank int // LITERAL=2, PREFIXED=1, ANY=0
	prefixLen   int // entry name length for PREFIXED, 0 otherwise
}

// compare returns -1, 0 or 1 ordering s against o.
func (s matchScore) compare(o matchScore) int {
	for _, d := range []int{
		s.typeExact - o.typeExact,
		s.patternRank - o.patternRank,
		s.prefixLen - o.prefixLen,
	} {
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
	}
	return 0
}

// matchResource reports whether a policy entry's resource specifier covers
// the requested resource, and with what specificity. The request resource is
// always literal, naming the concrete object being accessed.
func matchResource(entry, request Resource) (matchScore, bool) {
	if entry.Type != ResourceAny && entry.Type != request.Type {
		return matchScore{}, false
	}

	score := matchScore{}
	if entry.Type != ResourceAny {
		score.typeExact = 1
	}

	switch entry.Pattern {
	case PatternLiteral:
		if entry.Name != request.Name {
			return matchScore{}, false
		}
		score.patternRank = 2
	case PatternPrefixed:
		if !strings.HasPrefix(request.Name, entry.Name) {
			return matchScore{}, false
		}
		score.patternRank = 1
		score.prefixLen = len(entry.Name)
	case PatternAny:
		// Matches every name of the type.
	default:
		return matchScore{}, false
	}

	return score, true
}
