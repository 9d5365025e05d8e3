// Package aggregate selects and folds per-tool summaries into one reconciled
// definition, driven by a precedence-ordered policy.
package aggregate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy is an ordered list of precedence groups, highest-precedence first.
// Each group lists mutually-exclusive tool alternates ordered by preference:
// only the first alternate present in the input contributes. A selector is a
// bare tool name, or "tool--version" to pin an exact version.
type Policy struct {
	Precedence [][]string `yaml:"precedence" json:"precedence"`
}

// DefaultPolicy is the precedence used when no policy file is supplied:
// human curation beats ScanCode, which beats licensee, which beats the
// package manifest summary.
func DefaultPolicy() *Policy {
	return &Policy{Precedence: [][]string{
		{"curation"},
		{"scancode"},
		{"licensee"},
		{"clearlydefined"},
	}}
}

// LoadPolicy reads a policy document from a YAML (or JSON — valid JSON is
// valid YAML) file and validates it.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read policy file %q: %w", path, err)
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cannot parse policy file %q: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy in %q: %w", path, err)
	}
	return &p, nil
}

// Validate rejects policies with no precedence groups and policies where the
// same tool appears in two different groups. The reference behavior for a
// duplicated tool is undefined, so it is treated as a configuration error
// rather than resolved silently.
func (p *Policy) Validate() error {
	if p == nil || len(p.Precedence) == 0 {
		return fmt.Errorf("policy has no precedence groups")
	}
	groupOf := map[string]int{}
	for gi, group := range p.Precedence {
		if len(group) == 0 {
			return fmt.Errorf("precedence group %d is empty", gi)
		}
		for _, selector := range group {
			tool, _ := splitSelector(selector)
			if tool == "" {
				return fmt.Errorf("precedence group %d has an empty selector", gi)
			}
			if prev, seen := groupOf[tool]; seen && prev != gi {
				return fmt.Errorf("tool %q appears in precedence groups %d and %d", tool, prev, gi)
			}
			groupOf[tool] = gi
		}
	}
	return nil
}

// splitSelector splits "tool--version" into its parts. Version is "" for a
// bare tool name, which selects the tool's highest available version.
func splitSelector(selector string) (tool, version string) {
	tool, version, _ = strings.Cut(selector, "--")
	return tool, version
}
