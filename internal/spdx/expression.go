// Package spdx implements the license-expression algebra: parsing expression
// text into an abstract syntax tree, canonical serialization, conjunctive
// joining, and the "does A satisfy B" containment check.
//
// Every operation in this package is a total function: malformed or
// unrecognized input degrades to the NOASSERTION sentinel, never to an error
// or a panic, so downstream merges stay total as well.
package spdx

import "strings"

// NoAssertion is the reserved output literal emitted whenever no valid
// license assertion could be established. It is never treated as a real
// license term.
const NoAssertion = "NOASSERTION"

// Conjunction is the operator of a Binary expression node.
type Conjunction int

const (
	And Conjunction = iota
	Or
)

// Expression is a node in a parsed license-expression tree.
// The three implementations are Leaf, Binary and Unknown; Stringify and the
// satisfaction check switch exhaustively over them.
type Expression interface {
	isExpression()
}

// Leaf is a single license identifier, optionally "or-later" (+) and/or
// qualified by an exception clause (WITH <exception-id>).
type Leaf struct {
	ID        string // Canonically-cased identifier (e.g. "Apache-2.0")
	Plus      bool   // "or later" marker, e.g. GPL-2.0+
	Exception string // Canonically-cased exception id, or "" for none
}

// Binary combines two sub-expressions with AND or OR.
type Binary struct {
	Left  Expression
	Right Expression
	Op    Conjunction
}

// Unknown means no valid assertion could be parsed at this position.
// It serializes to the NOASSERTION literal.
type Unknown struct{}

func (Leaf) isExpression()    {}
func (Binary) isExpression()  {}
func (Unknown) isExpression() {}

// Stringify renders an expression tree as canonical text.
//
// AND binds tighter than OR, so an operand whose own top-level conjunction is
// OR is parenthesized whenever it appears inside another binary node; AND
// operands never need parentheses. A tree consisting solely of Unknown leaves
// renders as NOASSERTION.
func Stringify(e Expression) string {
	if e == nil || allUnknown(e) {
		return NoAssertion
	}
	return render(e, false)
}

func render(e Expression, nested bool) string {
	switch v := e.(type) {
	case Leaf:
		var b strings.Builder
		b.WriteString(v.ID)
		if v.Plus {
			b.WriteString("+")
		}
		if v.Exception != "" {
			b.WriteString(" WITH ")
			b.WriteString(v.Exception)
		}
		return b.String()
	case Binary:
		op := " AND "
		if v.Op == Or {
			op = " OR "
		}
		s := render(v.Left, true) + op + render(v.Right, true)
		if nested && v.Op == Or {
			return "(" + s + ")"
		}
		return s
	default:
		return NoAssertion
	}
}

// allUnknown reports whether every leaf position in the tree is Unknown.
func allUnknown(e Expression) bool {
	switch v := e.(type) {
	case Binary:
		return allUnknown(v.Left) && allUnknown(v.Right)
	case Leaf:
		return false
	default:
		return true
	}
}

// Normalize parses expression text and re-serializes it canonically.
//
// Empty or whitespace-only input returns "" (the absent marker), which is
// distinct from NOASSERTION: NOASSERTION is returned for non-empty input that
// could not be parsed or recognized.
func Normalize(text string, opts ...Option) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return Stringify(Parse(text, opts...))
}

// Conjuncts returns the top-level AND operands of an expression, each
// rendered as it would appear inside a conjunction (OR operands keep their
// parentheses). A non-AND expression is its own single conjunct.
func Conjuncts(e Expression) []string {
	if bin, ok := e.(Binary); ok && bin.Op == And {
		return append(Conjuncts(bin.Left), Conjuncts(bin.Right)...)
	}
	return []string{render(e, true)}
}

// Join combines several independent license statements about the same scope
// conjunctively: the distinct, non-empty strings are deduplicated (first
// occurrence order preserved) and joined with " AND ". An empty set joins to
// "" (absent).
func Join(exprs []string) string {
	seen := map[string]bool{}
	var parts []string
	for _, e := range exprs {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		parts = append(parts, e)
	}
	return strings.Join(parts, " AND ")
}
