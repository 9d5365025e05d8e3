package spdx

// Satisfies reports whether the candidate expression meets the requirement
// expression.
//
// Both sides are expanded into disjunctive normal form — a set of AND-clauses,
// each clause a set of leaf terms — and the check passes iff every AND-clause
// of the requirement is contained in at least one AND-clause of the candidate.
//
// NOASSERTION never satisfies any requirement and is never satisfied by
// anything except itself.
func Satisfies(candidate, requirement string, opts ...Option) bool {
	c := Parse(candidate, opts...)
	r := Parse(requirement, opts...)

	if allUnknown(c) || allUnknown(r) {
		return allUnknown(c) && allUnknown(r)
	}

	candClauses := dnf(c)
	for _, reqClause := range dnf(r) {
		if containsUnknownTerm(reqClause) {
			// A required term with no valid assertion can never be met.
			return false
		}
		if !someSuperset(candClauses, reqClause) {
			return false
		}
	}
	return true
}

// unknownTerm is the in-clause marker for an Unknown leaf. It compares equal
// to nothing a real leaf can render to (leaf ids never contain spaces).
const unknownTerm = "\x00noassertion"

// dnf expands an expression into its OR-of-ANDs form. Each inner slice is one
// AND-clause of leaf terms.
func dnf(e Expression) [][]string {
	switch v := e.(type) {
	case Leaf:
		return [][]string{{render(v, false)}}
	case Binary:
		left, right := dnf(v.Left), dnf(v.Right)
		if v.Op == Or {
			return append(left, right...)
		}
		// AND distributes: every left clause pairs with every right clause.
		product := make([][]string, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				product = append(product, unionClause(l, r))
			}
		}
		return product
	default:
		return [][]string{{unknownTerm}}
	}
}

func unionClause(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	for _, term := range b {
		if !containsTerm(out, term) {
			out = append(out, term)
		}
	}
	return out
}

func containsTerm(clause []string, term string) bool {
	for _, t := range clause {
		if t == term {
			return true
		}
	}
	return false
}

func containsUnknownTerm(clause []string) bool {
	return containsTerm(clause, unknownTerm)
}

// someSuperset reports whether any candidate clause contains every term of
// the required clause. Unknown terms in a candidate clause never count as a
// match for anything.
func someSuperset(candClauses [][]string, reqClause []string) bool {
nextClause:
	for _, cand := range candClauses {
		for _, term := range reqClause {
			if !containsTerm(cand, term) {
				continue nextClause
			}
		}
		return true
	}
	return false
}
