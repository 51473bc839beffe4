package authz

// resolveEntries applies the precedence algorithm to the candidate entries:
//
//  1. Keep entries covering the requested action and source IP whose
//     resource matches the request, with their specificity score.
//  2. No survivor means no match.
//  3. Among the survivors tied at the highest score, deny overrides allow.
//
// Specificity strictly dominates decision polarity: a more specific rule
// always overrides a less specific one regardless of decision. Entry order
// never influences the outcome.
func resolveEntries(entries []PolicyEntry, request AuthorizationContext) (Decision, bool) {
	type scoredEntry struct {
		score    matchScore
		decision Decision
	}

	var matched []scoredEntry
	for _, e := range entries {
		if !e.coversAction(request.Action) || !e.coversSourceIP(request.SourceIP) {
			continue
		}
		score, ok := matchResource(e.Resource, request.Resource)
		if !ok {
			continue
		}
		matched = append(matched, scoredEntry{score: score, decision: e.Decision})
	}

	if len(matched) == 0 {
		return "", false
	}

	best := matched[0].score
	for _, m := range matched[1:] {
		if m.score.compare(best) > 0 {
			best = m.score
		}
	}

	for _, m := range matched {
		if m.score.compare(best) == 0 && m.decision == DecisionDeny {
			return DecisionDeny, true
		}
	}
	return DecisionAllow, true
}
