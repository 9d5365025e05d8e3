package aggregate

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/clearlydefined/reconciler/internal/merge"
	"github.com/clearlydefined/reconciler/internal/model"
)

// Summaries holds the per-tool, per-version partial definitions produced for
// one component: tool name -> tool version -> summary.
type Summaries map[string]map[string]*model.Definition

// Aggregate folds the summaries selected by the policy into one definition.
//
// The policy's groups are flattened lowest-precedence first (groups reversed,
// alternates within each group reversed) and folded in that order with
// override semantics, so the highest-precedence record is applied last and
// wins every scalar field it actually sets — while absence never erases a
// lower-precedence value, license statements AND-combine, and lists union.
//
// Returns nil (with no error) when no selector resolves to any data: callers
// must be able to distinguish "nothing known" from "known empty". The inputs
// are not mutated.
func Aggregate(policy *Policy, summaries Summaries) (*model.Definition, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	var result *model.Definition
	for _, selector := range flatten(policy) {
		record := resolve(selector, summaries)
		if record == nil {
			continue
		}
		if result == nil {
			// First write: fold into a clone so later merges do not
			// mutate the caller's summary.
			result = record.Clone()
			continue
		}
		result = merge.Definitions(result, record.Clone(), true)
	}
	return result, nil
}

// flatten orders the policy's selectors lowest precedence first: the group
// list is walked backwards, and within each group the alternates are walked
// backwards too, so that folding with later-overwrites semantics lets the
// preferred alternate of the highest group win.
func flatten(policy *Policy) []string {
	var selectors []string
	for gi := len(policy.Precedence) - 1; gi >= 0; gi-- {
		group := policy.Precedence[gi]
		for ai := len(group) - 1; ai >= 0; ai-- {
			selectors = append(selectors, group[ai])
		}
	}
	return selectors
}

// resolve looks a selector up in the summaries. A pinned "tool--version"
// selector resolves to that exact version or nothing; a bare tool name
// resolves to the tool's highest present version.
func resolve(selector string, summaries Summaries) *model.Definition {
	tool, version := splitSelector(selector)
	versions := summaries[tool]
	if len(versions) == 0 {
		return nil
	}
	if version != "" {
		return versions[version]
	}

	best := ""
	for v := range versions {
		if best == "" || compareVersions(v, best) > 0 {
			best = v
		}
	}
	return versions[best]
}

// compareVersions orders tool versions semver-aware when both sides parse as
// (possibly truncated) semantic versions, falling back to lexicographic
// comparison otherwise. Returns <0, 0 or >0 like strings.Compare.
func compareVersions(a, b string) int {
	ca, cb := canonicalVersion(a), canonicalVersion(b)
	if semver.IsValid(ca) && semver.IsValid(cb) {
		return semver.Compare(ca, cb)
	}
	return strings.Compare(a, b)
}

func canonicalVersion(v string) string {
	return "v" + strings.TrimPrefix(v, "v")
}
