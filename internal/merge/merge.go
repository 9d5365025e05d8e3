// Package merge implements the structural combination of two partial
// definitions according to per-field policies: scalars keep the base value
// unless override is set, hash maps overwrite key-wise, observation lists
// union with order preserved, license expressions AND-combine, and file
// entries union by path with a recursive merge on collision.
package merge

import (
	"github.com/clearlydefined/reconciler/internal/model"
	"github.com/clearlydefined/reconciler/internal/spdx"
)

// Definitions merges proposed into base and returns the merged record.
//
// A nil base returns proposed unchanged — that is how a first write is
// distinguished from a combine. Otherwise base is mutated in place and
// returned; callers that need the original base afterwards should pass
// base.Clone(). The function never panics on missing sub-objects: absent
// pieces on either side are simply skipped.
//
// With override false (combining sub-facets of one tool's own output, or
// folding side-channel data into a summary) existing base scalars win. With
// override true (precedence folding) proposed scalars win, but absence on the
// proposed side never erases a base value. License fields and list fields
// combine the same way in both modes.
func Definitions(base, proposed *model.Definition, override bool) *model.Definition {
	if proposed == nil {
		return base
	}
	if base == nil {
		return proposed
	}

	// Coordinates are the component's identity: fill when absent, never
	// rewrite a value already present.
	if base.Coordinates == "" {
		base.Coordinates = proposed.Coordinates
	}

	base.Described = mergeDescribed(base.Described, proposed.Described, override)
	base.Licensed = mergeLicensed(base.Licensed, proposed.Licensed, override)
	base.Files = mergeFiles(base.Files, proposed.Files, override)
	return base
}

func mergeDescribed(base, proposed *model.Described, override bool) *model.Described {
	if proposed == nil {
		return base
	}
	if base == nil {
		return proposed
	}

	setScalar(&base.ReleaseDate, proposed.ReleaseDate, override)
	setScalar(&base.ProjectWebsite, proposed.ProjectWebsite, override)
	setScalar(&base.IssueTracker, proposed.IssueTracker, override)
	if proposed.SourceLocation != nil && (base.SourceLocation == nil || override) {
		base.SourceLocation = proposed.SourceLocation
	}
	setInt(&base.Files, proposed.Files, override)

	base.Hashes = mergeHashes(base.Hashes, proposed.Hashes)
	base.Facets = mergeFacetPatterns(base.Facets, proposed.Facets)
	base.Tools = unionStrings(base.Tools, proposed.Tools)
	return base
}

func mergeLicensed(base, proposed *model.Licensed, override bool) *model.Licensed {
	if proposed == nil {
		return base
	}
	if base == nil {
		return proposed
	}

	base.Declared = combineLicenses(base.Declared, proposed.Declared)

	if proposed.Facets != nil {
		if base.Facets == nil {
			base.Facets = map[string]*model.FacetInfo{}
		}
		for name, info := range proposed.Facets {
			base.Facets[name] = mergeFacetInfo(base.Facets[name], info, override)
		}
	}
	return base
}

func mergeFacetInfo(base, proposed *model.FacetInfo, override bool) *model.FacetInfo {
	if proposed == nil {
		return base
	}
	if base == nil {
		return proposed
	}

	setInt(&base.Files, proposed.Files, override)

	if proposed.Attribution != nil {
		if base.Attribution == nil {
			base.Attribution = proposed.Attribution
		} else {
			base.Attribution.Parties = unionStrings(base.Attribution.Parties, proposed.Attribution.Parties)
			setInt(&base.Attribution.Unknown, proposed.Attribution.Unknown, override)
		}
	}
	if proposed.Discovered != nil {
		if base.Discovered == nil {
			base.Discovered = proposed.Discovered
		} else {
			base.Discovered.Expressions = unionStrings(base.Discovered.Expressions, proposed.Discovered.Expressions)
			setInt(&base.Discovered.Unknown, proposed.Discovered.Unknown, override)
		}
	}
	return base
}

// mergeFiles unions two file lists by path. Entries present on only one side
// are kept verbatim; entries with the same path are merged recursively.
// Duplicate paths already present within either input list are collapsed on
// the way through, restoring the path-uniqueness invariant.
func mergeFiles(base, proposed []*model.FileEntry, override bool) []*model.FileEntry {
	if len(proposed) == 0 {
		return base
	}

	byPath := make(map[string]*model.FileEntry, len(base))
	var out []*model.FileEntry
	add := func(entry *model.FileEntry) {
		if entry == nil {
			return
		}
		if existing, ok := byPath[entry.Path]; ok {
			mergeFileEntry(existing, entry, override)
			return
		}
		byPath[entry.Path] = entry
		out = append(out, entry)
	}
	for _, entry := range base {
		add(entry)
	}
	for _, entry := range proposed {
		add(entry)
	}
	return out
}

func mergeFileEntry(base, proposed *model.FileEntry, override bool) {
	base.License = combineLicenses(base.License, proposed.License)
	base.Attributions = unionStrings(base.Attributions, proposed.Attributions)
	base.Facets = unionStrings(base.Facets, proposed.Facets)
	base.Natures = unionStrings(base.Natures, proposed.Natures)
	base.Hashes = mergeHashes(base.Hashes, proposed.Hashes)
	setScalar(&base.Token, proposed.Token, override)
}

// combineLicenses applies the license-combination policy to two expression
// strings. If either side is absent the other is used. A side that
// normalizes to NOASSERTION loses outright: a real assertion always beats
// "no assertion". Two real assertions are both true statements about the
// same scope, so they AND-combine — at the conjunct level, so folding the
// same statement in twice never piles up duplicate terms.
func combineLicenses(base, proposed string) string {
	b := spdx.Normalize(base)
	p := spdx.Normalize(proposed)
	switch {
	case p == "" || b == p:
		return b
	case b == "":
		return p
	case b == spdx.NoAssertion:
		return p
	case p == spdx.NoAssertion:
		return b
	default:
		return spdx.Join(append(spdx.Conjuncts(spdx.Parse(b)), spdx.Conjuncts(spdx.Parse(p))...))
	}
}

// setScalar applies the scalar policy: keep base when set, unless override,
// and never let an absent proposed value erase a base value.
func setScalar(base *string, proposed string, override bool) {
	if proposed == "" {
		return
	}
	if *base == "" || override {
		*base = proposed
	}
}

func setInt(base *int, proposed int, override bool) {
	if proposed == 0 {
		return
	}
	if *base == 0 || override {
		*base = proposed
	}
}

// mergeHashes merges key-wise: proposed entries overwrite base entries for
// the same algorithm, keys unique to either side are kept.
func mergeHashes(base, proposed map[string]string) map[string]string {
	if len(proposed) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(proposed))
	}
	for k, v := range proposed {
		base[k] = v
	}
	return base
}

func mergeFacetPatterns(base, proposed map[string][]string) map[string][]string {
	if len(proposed) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string][]string, len(proposed))
	}
	for name, patterns := range proposed {
		base[name] = unionStrings(base[name], patterns)
	}
	return base
}

// unionStrings appends the proposed items not already present, preserving
// base order first and proposed arrival order after.
func unionStrings(base, proposed []string) []string {
	for _, s := range proposed {
		base = appendUniqueStr(base, s)
	}
	return base
}

func appendUniqueStr(slice []string, s string) []string {
	for _, v := range slice {
		if v == s {
			return slice
		}
	}
	return append(slice, s)
}
