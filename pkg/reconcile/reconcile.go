// Package reconcile is the engine's public surface: license-expression
// operations, the structural merge, and precedence-driven aggregation, for
// consumption by harvesting and service layers.
package reconcile

import (
	"github.com/clearlydefined/reconciler/internal/aggregate"
	"github.com/clearlydefined/reconciler/internal/merge"
	"github.com/clearlydefined/reconciler/internal/model"
	"github.com/clearlydefined/reconciler/internal/spdx"
)

// Re-exported engine types.
type (
	Definition = model.Definition
	Described  = model.Described
	Licensed   = model.Licensed
	FileEntry  = model.FileEntry
	Policy     = aggregate.Policy
	Summaries  = aggregate.Summaries
	Expression = spdx.Expression
)

// NoAssertion is the sentinel emitted when no valid license assertion could
// be established.
const NoAssertion = spdx.NoAssertion

// ParseExpression parses license-expression text into an expression tree.
// Unparseable input yields the Unknown expression, never an error.
func ParseExpression(text string) Expression {
	return spdx.Parse(text)
}

// StringifyExpression renders an expression tree as canonical text.
func StringifyExpression(e Expression) string {
	return spdx.Stringify(e)
}

// NormalizeExpression canonicalizes expression text. Empty input returns ""
// (absent); non-empty unparseable input returns NOASSERTION.
func NormalizeExpression(text string) string {
	return spdx.Normalize(text)
}

// Satisfies reports whether the candidate expression meets the requirement.
func Satisfies(candidate, requirement string) bool {
	return spdx.Satisfies(candidate, requirement)
}

// MergeDefinitions merges proposed into base per the field policies and
// returns the result. A nil base returns proposed; otherwise base is mutated
// in place.
func MergeDefinitions(base, proposed *Definition, override bool) *Definition {
	return merge.Definitions(base, proposed, override)
}

// DefaultPolicy returns the built-in precedence policy.
func DefaultPolicy() *Policy {
	return aggregate.DefaultPolicy()
}

// Aggregate folds the per-tool summaries selected by the policy into one
// reconciled definition, or nil when no summary matches.
func Aggregate(policy *Policy, summaries Summaries) (*Definition, error) {
	return aggregate.Aggregate(policy, summaries)
}
